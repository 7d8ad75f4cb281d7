package hashing_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-crypt-utils/hashing"
)

// FuzzParseHash ensures that ParseHash never panics on arbitrary input and
// that every accepted hash rebuilds a shaker reproducing its setting.
//
// Run with: go test -fuzz=FuzzParseHash ./hashing/
func FuzzParseHash(f *testing.F) {
	for _, seed := range []string{
		vecStdDES, vecExtDES, vecMD5, vecSHA256, vecSHA512, vecBlowfish,
		vecMD5EmptySalt, vecSHA256EmptySalt, vecSHA512EmptySalt,
		"$6$saltstring$q2.778Y7vt0Ij2OIl01VlxEE6SEh8ZCtgFbyJX8fYkl5S7gx32QO24FVg.rs4DkoAs9t6R19x4z8g69teXFxA0",
		"$5$rounds=0005000$x$KqJWpanXZHKq2BOB43TSaYhEWsQ1Lr5QNyPCDH/Tp.6",
		"$2x$31$..........................................................",
		"incorrecthash", "", "$", "_", "$2a$",
	} {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, hash string) {
		parsed, err := hashing.ParseHash(hash)
		if err != nil {
			return
		}
		s, err := parsed.SaltShaker()
		require.NoError(t, err, "SaltShaker for accepted hash %q", hash)
		setting, err := s.Encode(parsed.Salt)
		require.NoError(t, err, "Encode(%q) for accepted hash %q", parsed.Salt, hash)
		require.Equal(t, parsed.Setting, setting, "hash %q", hash)
	})
}

// FuzzVerify ensures that Verify never panics on arbitrary passwords and hash
// strings. Hashes with expensive parameters are skipped to keep iterations
// fast.
func FuzzVerify(f *testing.F) {
	f.Add("rasmuslerdorf", vecMD5)
	f.Add("rasmuslerdorf", vecExtDES)
	f.Add("", vecStdDES)
	f.Add("pass\x00word", vecMD5)
	f.Add("räsmuslerdorf", "$2x$04$usesomesillystringfore2uDLvp1Ii2e./U9C8sBjqp8I90dH6hi")

	f.Fuzz(func(t *testing.T, password, hash string) {
		if parsed, err := hashing.ParseHash(hash); err == nil && (parsed.Rounds > 5000 || parsed.Cost > 6) {
			t.Skip()
		}
		_ = hashing.Verify(password, hash)
	})
}
