package unixcrypt

import (
	"fmt"
	"strconv"
	"strings"

	gehirn "github.com/GehirnInc/crypt"
	"github.com/GehirnInc/crypt/md5_crypt"
	"github.com/GehirnInc/crypt/sha256_crypt"
	"github.com/GehirnInc/crypt/sha512_crypt"
)

const (
	// MD5SaltMaxLen is the longest salt MD5-crypt reads.
	MD5SaltMaxLen = 8
	// SHASaltMaxLen is the longest salt SHA-crypt reads.
	SHASaltMaxLen = 16

	// SHA-crypt rounds bounds and the count used when "rounds=" is absent.
	SHARoundsMin     = 1000
	SHARoundsMax     = 999999999
	SHARoundsDefault = 5000

	// Encoded digest lengths.
	MD5DigestLen    = 22
	SHA256DigestLen = 43
	SHA512DigestLen = 86

	// RoundsPrefix introduces an explicit SHA-crypt rounds directive.
	RoundsPrefix = "rounds="
)

func md5Crypt(password, setting string) (string, error) {
	salt := saltField(setting[len(PrefixMD5):], MD5SaltMaxLen)
	return generate(md5_crypt.New(), password, PrefixMD5+salt)
}

func sha256Crypt(password, setting string) (string, error) {
	return shaCrypt(sha256_crypt.New(), PrefixSHA256, password, setting)
}

func sha512Crypt(password, setting string) (string, error) {
	return shaCrypt(sha512_crypt.New(), PrefixSHA512, password, setting)
}

// shaCrypt rebuilds a canonical setting before handing it to the crypter:
// explicit rounds are range-checked instead of clamped, and the salt is cut at
// its terminating "$" so any digest that follows is ignored.
func shaCrypt(c gehirn.Crypter, prefix, password, setting string) (string, error) {
	rest := setting[len(prefix):]
	canonical := prefix

	if strings.HasPrefix(rest, RoundsPrefix) {
		end := strings.IndexByte(rest, '$')
		if end < 0 {
			return "", fmt.Errorf("%w: unterminated rounds directive", ErrInvalidSetting)
		}
		rounds, err := ParseRounds(rest[len(RoundsPrefix):end])
		if err != nil {
			return "", err
		}
		canonical += RoundsPrefix + strconv.Itoa(rounds) + "$"
		rest = rest[end+1:]
	}

	return generate(c, password, canonical+saltField(rest, SHASaltMaxLen))
}

// ParseRounds parses the decimal value of a SHA-crypt "rounds=" directive and
// checks it against [SHARoundsMin] and [SHARoundsMax].
func ParseRounds(s string) (int, error) {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("%w: rounds %q is not a decimal number", ErrInvalidSetting, s)
	}
	if n < SHARoundsMin || n > SHARoundsMax {
		return 0, fmt.Errorf("%w: rounds %d outside [%d, %d]", ErrInvalidSetting, n, SHARoundsMin, SHARoundsMax)
	}
	return int(n), nil
}

// saltField returns s up to its first "$", at most limit bytes long.
func saltField(s string, limit int) string {
	if i := strings.IndexByte(s, '$'); i >= 0 {
		s = s[:i]
	}
	if len(s) > limit {
		s = s[:limit]
	}
	return s
}

func generate(c gehirn.Crypter, password, setting string) (string, error) {
	out, err := c.Generate([]byte(password), []byte(setting))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidSetting, err)
	}
	return out, nil
}
