package unixcrypt

import (
	"fmt"
	"strings"
)

// Setting prefixes understood by Crypt.
const (
	PrefixBlowfish = "$2"
	PrefixMD5      = "$1$"
	PrefixSHA256   = "$5$"
	PrefixSHA512   = "$6$"
	PrefixExtDES   = "_"
)

// Crypt hashes password with the algorithm and parameters encoded in setting.
//
// The result is byte-for-byte what crypt(3) produces for the same inputs on a
// system supporting the algorithm. It fails with [ErrInvalidSetting] when the
// setting is malformed, [ErrUnsupported] for unknown $id$ prefixes and
// [ErrInvalidPassword] when password contains a NUL byte.
func Crypt(password, setting string) (string, error) {
	if strings.IndexByte(password, 0) >= 0 {
		return "", ErrInvalidPassword
	}

	switch {
	case strings.HasPrefix(setting, PrefixBlowfish):
		return blowfishCrypt(password, setting)
	case strings.HasPrefix(setting, PrefixMD5):
		return md5Crypt(password, setting)
	case strings.HasPrefix(setting, PrefixSHA256):
		return sha256Crypt(password, setting)
	case strings.HasPrefix(setting, PrefixSHA512):
		return sha512Crypt(password, setting)
	case strings.HasPrefix(setting, "$"):
		return "", fmt.Errorf("%w: setting prefix %q", ErrUnsupported, idOf(setting))
	case strings.HasPrefix(setting, PrefixExtDES):
		return extDESCrypt(password, setting)
	default:
		return stdDESCrypt(password, setting)
	}
}

// idOf returns the "$id$" head of a setting for error messages, never the salt.
func idOf(setting string) string {
	if i := strings.IndexByte(setting[1:], '$'); i >= 0 {
		return setting[:i+2]
	}
	if len(setting) > 4 {
		return setting[:4]
	}
	return setting
}
