package hashing

import "errors"

// Sentinel errors returned by hashing operations.
//
// Use [errors.Is] for comparisons:
//
//	_, err := p.HashWithSalt(password, salt)
//	if errors.Is(err, hashing.ErrInvalidSalt) {
//	    // salt has characters outside [./0-9A-Za-z] or is too short
//	}
var (
	// ErrInvalidSalt is returned by a [SaltShaker]'s Encode when the raw salt
	// violates the format's charset or length contract.
	ErrInvalidSalt = errors.New("hashing: invalid salt")

	// ErrEncoding is returned by [Password.Hash] and [Password.HashWithSalt]
	// when the held shaker cannot produce a setting from the salt. The
	// shaker's own error is wrapped as well.
	ErrEncoding = errors.New("hashing: cannot encode salt")

	// ErrHashComputation is returned when the crypt primitive fails, for
	// instance for a password containing a NUL byte.
	ErrHashComputation = errors.New("hashing: hash computation failed")

	// ErrUnrecognizedFormat is returned by [ParseHash] when a hash string
	// matches none of the supported formats.
	ErrUnrecognizedFormat = errors.New("hashing: unrecognised hash format")

	// ErrInvalidHash is returned by [ParseHash] when a hash has a recognised
	// prefix but does not follow that format's grammar.
	ErrInvalidHash = errors.New("hashing: invalid hash string")

	// ErrInvalidOption is returned when a constructor is called with a
	// parameter value that falls outside the allowed range (e.g., a bcrypt
	// cost below 4 or above 31).
	ErrInvalidOption = errors.New("hashing: invalid option value")

	// ErrNilSaltShaker is returned by [NewPassword] and
	// [Password.SetSaltShaker] when given a nil [SaltShaker].
	ErrNilSaltShaker = errors.New("hashing: salt shaker must not be nil")
)
