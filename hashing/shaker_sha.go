package hashing

import (
	"fmt"
	"strconv"

	"github.com/hasbyte1/go-crypt-utils/unixcrypt"
)

// DefaultSHARounds is the SHA-crypt round count used when a setting carries
// no "rounds=" directive.
const DefaultSHARounds = unixcrypt.SHARoundsDefault

// SHAOptions configures a [SHAShaker].
type SHAOptions struct {
	// Rounds is the SHA-crypt round count written into the setting.
	// Zero omits the "rounds=" directive, in which case crypt(3) applies
	// DefaultSHARounds implicitly.
	// Valid range: 0 or [1000, 999999999]. Default: [DefaultSHARounds].
	Rounds int
}

// DefaultSHAOptions returns SHAOptions that write an explicit
// "rounds=5000" directive.
func DefaultSHAOptions() SHAOptions {
	return SHAOptions{Rounds: DefaultSHARounds}
}

// SHAShaker formats SHA-256-crypt ("$5$") and SHA-512-crypt ("$6$")
// settings.
type SHAShaker struct {
	format Format
	rounds int
}

// NewSHA256Shaker constructs a SHAShaker for SHA-256-crypt. Returns
// [ErrInvalidOption] if Rounds is neither zero nor within
// [1000, 999999999].
func NewSHA256Shaker(opts SHAOptions) (*SHAShaker, error) {
	return newSHAShaker(FormatSHA256, opts)
}

// NewSHA512Shaker constructs a SHAShaker for SHA-512-crypt. Options are
// validated as for [NewSHA256Shaker].
func NewSHA512Shaker(opts SHAOptions) (*SHAShaker, error) {
	return newSHAShaker(FormatSHA512, opts)
}

func newSHAShaker(f Format, opts SHAOptions) (*SHAShaker, error) {
	if opts.Rounds != 0 && (opts.Rounds < unixcrypt.SHARoundsMin || opts.Rounds > unixcrypt.SHARoundsMax) {
		return nil, fmt.Errorf("%w: %s rounds %d must be 0 or in [%d, %d]",
			ErrInvalidOption, f, opts.Rounds, unixcrypt.SHARoundsMin, unixcrypt.SHARoundsMax)
	}
	return &SHAShaker{format: f, rounds: opts.Rounds}, nil
}

// Format returns [FormatSHA256] or [FormatSHA512].
func (s *SHAShaker) Format() Format { return s.format }

// Rounds returns the configured round count; zero means implicit.
func (s *SHAShaker) Rounds() int { return s.rounds }

// Encode returns the prefix, the optional rounds directive and up to sixteen
// characters of rawSalt, followed by "$". An empty salt is allowed.
func (s *SHAShaker) Encode(rawSalt string) (string, error) {
	salt, err := checkSalt(s.format, rawSalt, 0, unixcrypt.SHASaltMaxLen)
	if err != nil {
		return "", err
	}
	setting := s.prefix()
	if s.rounds != 0 {
		setting += unixcrypt.RoundsPrefix + strconv.Itoa(s.rounds) + "$"
	}
	return setting + salt + "$", nil
}

// Generate returns a random sixteen-character salt.
func (s *SHAShaker) Generate() (string, error) { return randomSalt(unixcrypt.SHASaltMaxLen) }

func (s *SHAShaker) prefix() string {
	if s.format == FormatSHA256 {
		return unixcrypt.PrefixSHA256
	}
	return unixcrypt.PrefixSHA512
}
