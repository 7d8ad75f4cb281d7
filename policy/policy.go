// Package policy loads the hashing policy (which crypt format new hashes use,
// and with which parameters) from a YAML file, a .env file or the
// environment, in the spirit of ENCRYPT_METHOD and SHA_CRYPT_ROUNDS in
// /etc/login.defs.
//
//	hashing:
//	  algorithm: blowfish   # std_des | ext_des | md5 | sha256 | sha512 | blowfish
//	  rounds: 0             # ext_des and sha*; 0 selects the format default
//	  cost: 12              # blowfish
//	  variant: 2b           # blowfish: 2a, 2b or 2y
package policy

import (
	"errors"
	"fmt"

	"github.com/hasbyte1/go-crypt-utils/hashing"
)

// ErrInvalidPolicy is returned when a policy does not describe a usable salt
// shaker. Parameters set for an algorithm that does not take them count as
// invalid.
var ErrInvalidPolicy = errors.New("policy: invalid hashing policy")

// DefaultAlgorithm is used when no algorithm is configured.
const DefaultAlgorithm = "sha512"

// Policy selects the format and parameters of new hashes.
type Policy struct {
	// Algorithm is a format name as returned by [hashing.Format.String].
	Algorithm string

	// Rounds applies to ext_des, sha256 and sha512. Zero selects
	// [hashing.DefaultExtDESRounds] or [hashing.DefaultSHARounds].
	Rounds int

	// Cost applies to blowfish. Zero selects [hashing.DefaultBlowfishCost].
	Cost int

	// Variant applies to blowfish. Empty selects "2a".
	Variant string
}

// Default returns the policy used when nothing is configured: SHA-512-crypt
// with an explicit 5000 rounds.
func Default() Policy {
	return Policy{Algorithm: DefaultAlgorithm}
}

// Validate reports whether p can produce a salt shaker.
func (p Policy) Validate() error {
	_, err := p.SaltShaker()
	return err
}

// SaltShaker returns the shaker p describes.
func (p Policy) SaltShaker() (hashing.SaltShaker, error) {
	algorithm := p.Algorithm
	if algorithm == "" {
		algorithm = DefaultAlgorithm
	}
	f, err := hashing.ParseFormat(algorithm)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	if err := p.checkApplicable(f); err != nil {
		return nil, err
	}

	var s hashing.SaltShaker
	switch f {
	case hashing.FormatStdDES:
		s = hashing.NewStdDESShaker()
	case hashing.FormatExtDES:
		opts := hashing.DefaultExtDESOptions()
		if p.Rounds != 0 {
			opts.Rounds = p.Rounds
		}
		s, err = hashing.NewExtDESShaker(opts)
	case hashing.FormatMD5:
		s = hashing.NewMD5Shaker()
	case hashing.FormatSHA256, hashing.FormatSHA512:
		opts := hashing.DefaultSHAOptions()
		if p.Rounds != 0 {
			opts.Rounds = p.Rounds
		}
		if f == hashing.FormatSHA256 {
			s, err = hashing.NewSHA256Shaker(opts)
		} else {
			s, err = hashing.NewSHA512Shaker(opts)
		}
	case hashing.FormatBlowfish:
		opts := hashing.DefaultBlowfishOptions()
		if p.Cost != 0 {
			opts.Cost = p.Cost
		}
		if p.Variant != "" {
			opts.Variant = hashing.BlowfishVariant(p.Variant)
		}
		s, err = hashing.NewBlowfishShaker(opts)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPolicy, err)
	}
	return s, nil
}

// checkApplicable rejects parameters that f does not take.
func (p Policy) checkApplicable(f hashing.Format) error {
	switch f {
	case hashing.FormatExtDES, hashing.FormatSHA256, hashing.FormatSHA512:
	default:
		if p.Rounds != 0 {
			return fmt.Errorf("%w: rounds do not apply to %s", ErrInvalidPolicy, f)
		}
	}
	if f != hashing.FormatBlowfish && (p.Cost != 0 || p.Variant != "") {
		return fmt.Errorf("%w: cost and variant apply only to blowfish, not %s", ErrInvalidPolicy, f)
	}
	return nil
}

// NewPassword returns a [hashing.Password] holding the shaker p describes.
func (p Policy) NewPassword(opts ...hashing.Option) (*hashing.Password, error) {
	s, err := p.SaltShaker()
	if err != nil {
		return nil, err
	}
	return hashing.NewPassword(s, opts...)
}
