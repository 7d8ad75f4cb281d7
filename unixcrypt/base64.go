package unixcrypt

import "strings"

// Alphabet is the crypt(3) base-64 alphabet shared by salts and digests of
// every supported algorithm. Note that bcrypt uses the same characters in a
// different order (see [BcryptAlphabet]).
const Alphabet = "./0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// IsValid reports whether s is non-empty and made only of [Alphabet]
// characters.
func IsValid(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if strings.IndexByte(Alphabet, s[i]) < 0 {
			return false
		}
	}
	return true
}

// EncodeInt returns v as n characters, least significant six bits first.
// It is the encoding of the extended DES count and salt.
func EncodeInt(v uint32, n int) string {
	out := make([]byte, n)
	for i := range out {
		out[i] = Alphabet[v&0x3f]
		v >>= 6
	}
	return string(out)
}

// DecodeInt is the inverse of [EncodeInt]. It reports false when s contains a
// character outside [Alphabet] or is longer than five characters.
func DecodeInt(s string) (uint32, bool) {
	if len(s) > 5 {
		return 0, false
	}
	var v uint32
	for i := len(s) - 1; i >= 0; i-- {
		idx := strings.IndexByte(Alphabet, s[i])
		if idx < 0 {
			return 0, false
		}
		v = v<<6 | uint32(idx)
	}
	return v, true
}
