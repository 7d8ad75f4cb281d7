package unixcrypt

import "errors"

var (
	// ErrInvalidSetting is returned when the setting string does not satisfy
	// the grammar of the algorithm its prefix selects (bad salt characters,
	// out-of-range rounds or cost, truncated setting).
	ErrInvalidSetting = errors.New("unixcrypt: invalid setting")

	// ErrInvalidPassword is returned for passwords containing a NUL byte.
	// crypt(3) would silently truncate them at the NUL.
	ErrInvalidPassword = errors.New("unixcrypt: password must not contain NUL bytes")

	// ErrUnsupported is returned for a recognised but unimplemented algorithm
	// or variant, such as an unknown $id$ prefix or $2x$ with 8-bit input.
	ErrUnsupported = errors.New("unixcrypt: unsupported algorithm")
)
