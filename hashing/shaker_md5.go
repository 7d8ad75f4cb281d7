package hashing

import "github.com/hasbyte1/go-crypt-utils/unixcrypt"

// MD5Shaker formats MD5-crypt settings: "$1$", zero to eight salt characters
// and a terminating "$".
type MD5Shaker struct{}

// NewMD5Shaker returns an [MD5Shaker].
func NewMD5Shaker() *MD5Shaker { return &MD5Shaker{} }

// Format returns [FormatMD5].
func (s *MD5Shaker) Format() Format { return FormatMD5 }

// Encode returns "$1$" + rawSalt (at most eight characters, possibly none) +
// "$".
func (s *MD5Shaker) Encode(rawSalt string) (string, error) {
	salt, err := checkSalt(FormatMD5, rawSalt, 0, unixcrypt.MD5SaltMaxLen)
	if err != nil {
		return "", err
	}
	return unixcrypt.PrefixMD5 + salt + "$", nil
}

// Generate returns a random eight-character salt.
func (s *MD5Shaker) Generate() (string, error) { return randomSalt(unixcrypt.MD5SaltMaxLen) }
