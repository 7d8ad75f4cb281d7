package hashing

import (
	"fmt"

	"github.com/hasbyte1/go-crypt-utils/unixcrypt"
)

const (
	// DefaultBlowfishCost is the recommended work factor for bcrypt.
	// At cost 12, hashing takes approximately 250 ms on a modern server CPU,
	// which satisfies OWASP ASVS Level 1 (≥ 10) and Level 2 (≥ 12).
	//
	// Increase this value as hardware improves; aim to keep hashing time
	// between 100 ms and 500 ms for your deployment environment.
	DefaultBlowfishCost = 12
)

// BlowfishVariant is the bcrypt minor version written after "$".
type BlowfishVariant string

const (
	// Blowfish2A is the historical "$2a$" prefix and the default.
	Blowfish2A BlowfishVariant = "2a"
	// Blowfish2B is OpenBSD's "$2b$" prefix.
	Blowfish2B BlowfishVariant = "2b"
	// Blowfish2Y is crypt_blowfish's "$2y$" prefix.
	Blowfish2Y BlowfishVariant = "2y"
	// Blowfish2X marks hashes from the buggy pre-2011 crypt_blowfish. It is
	// accepted when verifying 7-bit passwords but cannot be configured for new
	// hashes.
	Blowfish2X BlowfishVariant = "2x"
)

// BlowfishOptions configures a [BlowfishShaker].
type BlowfishOptions struct {
	// Cost is the bcrypt work factor (logarithmic).
	// Valid range: [4, 31]. Default: [DefaultBlowfishCost] (12).
	Cost int

	// Variant selects the prefix. Empty means [Blowfish2A].
	Variant BlowfishVariant
}

// DefaultBlowfishOptions returns BlowfishOptions with [DefaultBlowfishCost]
// and the "$2a$" prefix.
func DefaultBlowfishOptions() BlowfishOptions {
	return BlowfishOptions{Cost: DefaultBlowfishCost, Variant: Blowfish2A}
}

// BlowfishShaker formats bcrypt settings: "$2a$", a two-digit cost, "$" and
// a 22-character salt.
//
// BlowfishShaker is immutable after construction and safe for concurrent use.
type BlowfishShaker struct {
	cost    int
	variant BlowfishVariant
}

// NewBlowfishShaker constructs a BlowfishShaker. Returns [ErrInvalidOption]
// if Cost is outside [4, 31] or Variant is not one of 2a, 2b or 2y.
func NewBlowfishShaker(opts BlowfishOptions) (*BlowfishShaker, error) {
	if opts.Cost < unixcrypt.BcryptMinCost || opts.Cost > unixcrypt.BcryptMaxCost {
		return nil, fmt.Errorf("%w: bcrypt cost %d must be in [%d, %d]",
			ErrInvalidOption, opts.Cost, unixcrypt.BcryptMinCost, unixcrypt.BcryptMaxCost)
	}
	switch opts.Variant {
	case "":
		opts.Variant = Blowfish2A
	case Blowfish2A, Blowfish2B, Blowfish2Y:
	default:
		return nil, fmt.Errorf("%w: bcrypt variant %q must be 2a, 2b or 2y", ErrInvalidOption, opts.Variant)
	}
	return &BlowfishShaker{cost: opts.Cost, variant: opts.Variant}, nil
}

// Format returns [FormatBlowfish].
func (s *BlowfishShaker) Format() Format { return FormatBlowfish }

// Cost returns the configured bcrypt work factor.
func (s *BlowfishShaker) Cost() int { return s.cost }

// Variant returns the configured prefix variant.
func (s *BlowfishShaker) Variant() BlowfishVariant { return s.variant }

// Encode returns "$2a$CC$" followed by the first 22 characters of rawSalt and
// "$". The 22nd character only carries two bits of salt; it is replaced by the
// spelling crypt(3) itself emits, so "usesomesillystringfors" becomes
// "usesomesillystringfore".
func (s *BlowfishShaker) Encode(rawSalt string) (string, error) {
	salt, err := checkSalt(FormatBlowfish, rawSalt, unixcrypt.BcryptSaltLen, unixcrypt.BcryptSaltLen)
	if err != nil {
		return "", err
	}
	salt, err = unixcrypt.NormalizeBcryptSalt(salt)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSalt, err)
	}
	return fmt.Sprintf("$%s$%02d$%s$", s.variant, s.cost, salt), nil
}

// Generate returns a random 22-character salt.
func (s *BlowfishShaker) Generate() (string, error) { return randomSalt(unixcrypt.BcryptSaltLen) }
