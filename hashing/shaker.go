package hashing

import (
	"crypto/rand"
	"fmt"

	"github.com/hasbyte1/go-crypt-utils/unixcrypt"
)

// SaltShaker generates and formats the salt of one crypt(3) format.
//
// Implementations must be safe for concurrent use by multiple goroutines.
type SaltShaker interface {
	// Encode formats rawSalt, together with the shaker's parameters, into a
	// complete setting string such as "$1$rasmusle$". Encode is a pure
	// function of its input: oversize salts are truncated to the format
	// maximum, undersize salts and characters outside [./0-9A-Za-z] are
	// rejected with [ErrInvalidSalt].
	Encode(rawSalt string) (string, error)

	// Generate returns a fresh raw salt of the format's maximum length drawn
	// from crypto/rand.
	Generate() (string, error)

	// Format returns the crypt format this shaker produces settings for.
	Format() Format
}

// checkSalt truncates raw to maxLen and validates what remains. An empty
// salt passes when minLen is zero.
func checkSalt(f Format, raw string, minLen, maxLen int) (string, error) {
	if len(raw) > maxLen {
		raw = raw[:maxLen]
	}
	if len(raw) < minLen {
		return "", fmt.Errorf("%w: %s salt needs at least %d characters, got %d",
			ErrInvalidSalt, f, minLen, len(raw))
	}
	if raw != "" && !unixcrypt.IsValid(raw) {
		return "", fmt.Errorf("%w: %s salt may only contain [./0-9A-Za-z]", ErrInvalidSalt, f)
	}
	return raw, nil
}

// randomSalt returns n characters of the crypt alphabet. The alphabet has 64
// entries, so masking each random byte keeps the distribution uniform.
func randomSalt(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("hashing: failed to generate salt: %w", err)
	}
	for i, b := range buf {
		buf[i] = unixcrypt.Alphabet[b&0x3f]
	}
	return string(buf), nil
}
