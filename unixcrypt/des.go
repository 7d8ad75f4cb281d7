package unixcrypt

import (
	"encoding/binary"
	"fmt"

	"github.com/hasbyte1/go-crypt-utils/internal/des"
)

const (
	// DESSaltLen is the length of a traditional DES salt.
	DESSaltLen = 2
	// ExtDESSettingLen is the length of an extended DES setting: "_", four
	// count characters and four salt characters.
	ExtDESSettingLen = 9
	// DESDigestLen is the encoded length of a DES digest (64 bits plus two
	// padding bits).
	DESDigestLen = 11

	desIterations = 25
)

func stdDESCrypt(password, setting string) (string, error) {
	if len(setting) < DESSaltLen || !IsValid(setting[:DESSaltLen]) {
		return "", fmt.Errorf("%w: DES needs a two-character salt", ErrInvalidSetting)
	}
	salt, _ := DecodeInt(setting[:DESSaltLen])

	var key [8]byte
	for i := 0; i < len(key) && i < len(password); i++ {
		key[i] = password[i] << 1
	}

	c := des.NewCipher(binary.BigEndian.Uint64(key[:]))
	c.SetSalt(salt)
	return setting[:DESSaltLen] + encodeDESBlock(iterate(c, desIterations)), nil
}

func extDESCrypt(password, setting string) (string, error) {
	if len(setting) < ExtDESSettingLen || !IsValid(setting[1:ExtDESSettingLen]) {
		return "", fmt.Errorf("%w: extended DES needs \"_\" followed by 8 characters", ErrInvalidSetting)
	}
	count, _ := DecodeInt(setting[1:5])
	salt, _ := DecodeInt(setting[5:9])
	if count == 0 {
		return "", fmt.Errorf("%w: extended DES count must be positive", ErrInvalidSetting)
	}

	// The first eight characters seed the key; every further group of eight
	// is folded in by encrypting the key with itself and XORing the group.
	var key [8]byte
	n := min(len(key), len(password))
	for i := 0; i < n; i++ {
		key[i] = password[i] << 1
	}
	rest := password[n:]
	for len(rest) > 0 {
		k := binary.BigEndian.Uint64(key[:])
		binary.BigEndian.PutUint64(key[:], des.NewCipher(k).Encrypt(k))
		n = min(len(key), len(rest))
		for i := 0; i < n; i++ {
			key[i] ^= rest[i] << 1
		}
		rest = rest[n:]
	}

	c := des.NewCipher(binary.BigEndian.Uint64(key[:]))
	c.SetSalt(salt)
	return setting[:ExtDESSettingLen] + encodeDESBlock(iterate(c, int(count))), nil
}

func iterate(c *des.Cipher, count int) uint64 {
	return c.EncryptRepeated(0, count)
}

// encodeDESBlock writes the 64-bit block followed by two zero bits as eleven
// characters, most significant bits first.
func encodeDESBlock(v uint64) string {
	var out [DESDigestLen]byte
	for i := 0; i < DESDigestLen-1; i++ {
		out[i] = Alphabet[(v>>(58-6*uint(i)))&0x3f]
	}
	out[DESDigestLen-1] = Alphabet[(v<<2)&0x3f]
	return string(out[:])
}
