package unixcrypt

import (
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/blowfish"
)

// BcryptAlphabet is bcrypt's base-64 alphabet.
const BcryptAlphabet = "./ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

const (
	// BcryptMinCost and BcryptMaxCost bound the two-digit cost field.
	BcryptMinCost = 4
	BcryptMaxCost = 31
	// BcryptSaltLen is the encoded length of the 128-bit salt.
	BcryptSaltLen = 22
	// BcryptDigestLen is the encoded length of the 23 digest bytes.
	BcryptDigestLen = 31

	// "$2a$07$" followed by the salt.
	bcryptSettingLen = 7 + BcryptSaltLen
	bcryptMaxKeyLen  = 72
)

var (
	bcryptEncoding  = base64.NewEncoding(BcryptAlphabet).WithPadding(base64.NoPadding)
	bcryptMagicText = []byte("OrpheanBeholderScryDoubt")
)

// NormalizeBcryptSalt decodes a 22-character bcrypt salt and encodes it
// again. The last character carries four unused bits, so several spellings
// share one salt; crypt(3) always emits the one with those bits cleared.
func NormalizeBcryptSalt(salt string) (string, error) {
	if len(salt) != BcryptSaltLen {
		return "", fmt.Errorf("%w: bcrypt salt must be %d characters", ErrInvalidSetting, BcryptSaltLen)
	}
	raw, err := bcryptEncoding.DecodeString(salt)
	if err != nil {
		return "", fmt.Errorf("%w: bcrypt salt: %v", ErrInvalidSetting, err)
	}
	return bcryptEncoding.EncodeToString(raw), nil
}

func blowfishCrypt(password, setting string) (string, error) {
	if len(setting) < bcryptSettingLen || setting[3] != '$' || setting[6] != '$' {
		return "", fmt.Errorf("%w: bcrypt setting must look like $2a$NN$<22 chars>", ErrInvalidSetting)
	}

	switch setting[2] {
	case 'a', 'b', 'y':
	case 'x':
		// $2x$ reproduces a sign-extension bug that only shows for 8-bit
		// characters; for 7-bit input it equals $2a$.
		if hasHighBit(password) {
			return "", fmt.Errorf("%w: $2x$ with 8-bit characters", ErrUnsupported)
		}
	default:
		return "", fmt.Errorf("%w: bcrypt variant %q", ErrUnsupported, setting[:4])
	}

	cost, ok := parseCost(setting[4:6])
	if !ok {
		return "", fmt.Errorf("%w: bcrypt cost must be two digits in [%d, %d]",
			ErrInvalidSetting, BcryptMinCost, BcryptMaxCost)
	}

	salt, err := bcryptEncoding.DecodeString(setting[7:bcryptSettingLen])
	if err != nil {
		return "", fmt.Errorf("%w: bcrypt salt: %v", ErrInvalidSetting, err)
	}

	// The C implementations key with the terminating NUL included.
	key := make([]byte, 0, len(password)+1)
	key = append(key, password...)
	key = append(key, 0)
	if len(key) > bcryptMaxKeyLen {
		key = key[:bcryptMaxKeyLen]
	}

	c, err := blowfish.NewSaltedCipher(key, salt)
	if err != nil {
		return "", fmt.Errorf("unixcrypt: bcrypt key setup: %w", err)
	}
	for i, rounds := uint64(0), uint64(1)<<cost; i < rounds; i++ {
		blowfish.ExpandKey(key, c)
		blowfish.ExpandKey(salt, c)
	}

	text := make([]byte, len(bcryptMagicText))
	copy(text, bcryptMagicText)
	for i := 0; i < len(text); i += blowfish.BlockSize {
		for j := 0; j < 64; j++ {
			c.Encrypt(text[i:i+blowfish.BlockSize], text[i:i+blowfish.BlockSize])
		}
	}

	// Only 23 of the 24 encrypted bytes are encoded.
	return setting[:7] + bcryptEncoding.EncodeToString(salt) + bcryptEncoding.EncodeToString(text[:23]), nil
}

func parseCost(s string) (int, bool) {
	if len(s) != 2 || s[0] < '0' || s[0] > '9' || s[1] < '0' || s[1] > '9' {
		return 0, false
	}
	cost := int(s[0]-'0')*10 + int(s[1]-'0')
	return cost, cost >= BcryptMinCost && cost <= BcryptMaxCost
}

func hasHighBit(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return true
		}
	}
	return false
}
