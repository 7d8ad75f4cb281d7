package hashing

import (
	"fmt"

	"github.com/hasbyte1/go-crypt-utils/unixcrypt"
)

const (
	// DefaultExtDESRounds is the iteration count of the widely used "_J9.."
	// prefix.
	DefaultExtDESRounds = 725
	// MaxExtDESRounds is the largest count the four-character field holds.
	MaxExtDESRounds = 1<<24 - 1

	extDESSaltLen = 4
)

// StdDESShaker formats traditional DES salts: exactly two characters, no
// prefix and no parameters.
type StdDESShaker struct{}

// NewStdDESShaker returns a [StdDESShaker].
func NewStdDESShaker() *StdDESShaker { return &StdDESShaker{} }

// Format returns [FormatStdDES].
func (s *StdDESShaker) Format() Format { return FormatStdDES }

// Encode returns the first two characters of rawSalt.
func (s *StdDESShaker) Encode(rawSalt string) (string, error) {
	return checkSalt(FormatStdDES, rawSalt, unixcrypt.DESSaltLen, unixcrypt.DESSaltLen)
}

// Generate returns a random two-character salt.
func (s *StdDESShaker) Generate() (string, error) { return randomSalt(unixcrypt.DESSaltLen) }

// ExtDESOptions configures an [ExtDESShaker].
type ExtDESOptions struct {
	// Rounds is the DES iteration count.
	// Valid range: [1, MaxExtDESRounds]. Default: [DefaultExtDESRounds].
	Rounds int
}

// DefaultExtDESOptions returns ExtDESOptions with [DefaultExtDESRounds].
func DefaultExtDESOptions() ExtDESOptions {
	return ExtDESOptions{Rounds: DefaultExtDESRounds}
}

// ExtDESShaker formats BSDi extended DES settings: "_", the iteration count
// as four characters and a four-character salt.
type ExtDESShaker struct {
	rounds int
}

// NewExtDESShaker constructs an ExtDESShaker. Returns [ErrInvalidOption] if
// Rounds is outside [1, MaxExtDESRounds].
func NewExtDESShaker(opts ExtDESOptions) (*ExtDESShaker, error) {
	if opts.Rounds < 1 || opts.Rounds > MaxExtDESRounds {
		return nil, fmt.Errorf("%w: extended DES rounds %d must be in [1, %d]",
			ErrInvalidOption, opts.Rounds, MaxExtDESRounds)
	}
	return &ExtDESShaker{rounds: opts.Rounds}, nil
}

// Format returns [FormatExtDES].
func (s *ExtDESShaker) Format() Format { return FormatExtDES }

// Rounds returns the configured iteration count.
func (s *ExtDESShaker) Rounds() int { return s.rounds }

// Encode returns "_" + count + the first four characters of rawSalt.
func (s *ExtDESShaker) Encode(rawSalt string) (string, error) {
	salt, err := checkSalt(FormatExtDES, rawSalt, extDESSaltLen, extDESSaltLen)
	if err != nil {
		return "", err
	}
	return unixcrypt.PrefixExtDES + unixcrypt.EncodeInt(uint32(s.rounds), 4) + salt, nil
}

// Generate returns a random four-character salt.
func (s *ExtDESShaker) Generate() (string, error) { return randomSalt(extDESSaltLen) }
