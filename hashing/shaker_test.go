package hashing_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hasbyte1/go-crypt-utils/hashing"
	"github.com/hasbyte1/go-crypt-utils/unixcrypt"
)

// testBlowfishCost is the minimum bcrypt work factor. Used in unit tests only
// so the test suite runs quickly.
const testBlowfishCost = 4

func newTestShakers(t *testing.T) []hashing.SaltShaker {
	t.Helper()
	ext, err := hashing.NewExtDESShaker(hashing.DefaultExtDESOptions())
	require.NoError(t, err)
	sha256, err := hashing.NewSHA256Shaker(hashing.DefaultSHAOptions())
	require.NoError(t, err)
	sha512, err := hashing.NewSHA512Shaker(hashing.SHAOptions{})
	require.NoError(t, err)
	bf, err := hashing.NewBlowfishShaker(hashing.BlowfishOptions{Cost: testBlowfishCost, Variant: hashing.Blowfish2B})
	require.NoError(t, err)
	return []hashing.SaltShaker{hashing.NewStdDESShaker(), ext, hashing.NewMD5Shaker(), sha256, sha512, bf}
}

// ──────────────────────────────────────────────────────────────────────────────
// Encode
// ──────────────────────────────────────────────────────────────────────────────

func TestShakers_Encode(t *testing.T) {
	ext1, _ := hashing.NewExtDESShaker(hashing.ExtDESOptions{Rounds: 1})
	sha256, _ := hashing.NewSHA256Shaker(hashing.DefaultSHAOptions())
	sha512Implicit, _ := hashing.NewSHA512Shaker(hashing.SHAOptions{})
	sha512Max, _ := hashing.NewSHA512Shaker(hashing.SHAOptions{Rounds: 999999999})
	bf07, _ := hashing.NewBlowfishShaker(hashing.BlowfishOptions{Cost: 7})
	bf2y, _ := hashing.NewBlowfishShaker(hashing.BlowfishOptions{Cost: 12, Variant: hashing.Blowfish2Y})
	extDefault, _ := hashing.NewExtDESShaker(hashing.DefaultExtDESOptions())

	cases := []struct {
		name   string
		shaker hashing.SaltShaker
		raw    string
		want   string
	}{
		{"std des", hashing.NewStdDESShaker(), "rl", "rl"},
		{"std des truncates", hashing.NewStdDESShaker(), "rasmuslerdorf", "ra"},
		{"ext des default rounds", extDefault, "rasm", "_J9..rasm"},
		{"ext des truncates", extDefault, "rasmuslerdorf", "_J9..rasm"},
		{"ext des one round", ext1, "salt", "_/...salt"},
		{"md5", hashing.NewMD5Shaker(), "rasmusle", "$1$rasmusle$"},
		{"md5 short", hashing.NewMD5Shaker(), "a", "$1$a$"},
		{"md5 empty", hashing.NewMD5Shaker(), "", "$1$$"},
		{"md5 truncates", hashing.NewMD5Shaker(), "rasmuslerdorf", "$1$rasmusle$"},
		{"sha256 explicit rounds", sha256, "usesomesillystringforsalt", "$5$rounds=5000$usesomesillystri$"},
		{"sha256 empty", sha256, "", "$5$rounds=5000$$"},
		{"sha512 implicit rounds", sha512Implicit, "saltstring", "$6$saltstring$"},
		{"sha512 implicit rounds empty", sha512Implicit, "", "$6$$"},
		{"sha512 max rounds", sha512Max, "salt", "$6$rounds=999999999$salt$"},
		{"blowfish canonical last char", bf07, "usesomesillystringforsalt", "$2a$07$usesomesillystringfore$"},
		{"blowfish 2y", bf2y, "abcdefghijklmnopqrstuu", "$2y$12$abcdefghijklmnopqrstuu$"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.shaker.Encode(tc.raw)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestShakers_Encode_InvalidSalt(t *testing.T) {
	for _, s := range newTestShakers(t) {
		for _, raw := range []string{"$$$$$$$$$$$$$$$$$$$$$$", " abcdefghijklmnopqrstuvwxyz", "päss-wörd-päss-wörd-päss"} {
			_, err := s.Encode(raw)
			assert.ErrorIs(t, err, hashing.ErrInvalidSalt, "%s Encode(%q)", s.Format(), raw)
		}
	}
}

// MD5-crypt and SHA-crypt accept an empty salt; the fixed-width formats need
// their full salt.
func TestShakers_Encode_TooShort(t *testing.T) {
	ext, _ := hashing.NewExtDESShaker(hashing.DefaultExtDESOptions())
	bf, _ := hashing.NewBlowfishShaker(hashing.DefaultBlowfishOptions())
	cases := []struct {
		shaker hashing.SaltShaker
		raw    string
	}{
		{hashing.NewStdDESShaker(), ""},
		{hashing.NewStdDESShaker(), "r"},
		{ext, ""},
		{ext, "ras"},
		{bf, ""},
		{bf, "usesomesillystringfor"},
	}
	for _, tc := range cases {
		_, err := tc.shaker.Encode(tc.raw)
		assert.ErrorIs(t, err, hashing.ErrInvalidSalt, "%s Encode(%q)", tc.shaker.Format(), tc.raw)
	}
}

// Characters past the format maximum are dropped before validation.
func TestShakers_Encode_IgnoresCharactersPastMaximum(t *testing.T) {
	got, err := hashing.NewMD5Shaker().Encode("rasmusle$!")
	require.NoError(t, err)
	assert.Equal(t, "$1$rasmusle$", got)
}

// ──────────────────────────────────────────────────────────────────────────────
// Generate
// ──────────────────────────────────────────────────────────────────────────────

func TestShakers_Generate(t *testing.T) {
	wantLen := map[hashing.Format]int{
		hashing.FormatStdDES:   2,
		hashing.FormatExtDES:   4,
		hashing.FormatMD5:      8,
		hashing.FormatSHA256:   16,
		hashing.FormatSHA512:   16,
		hashing.FormatBlowfish: 22,
	}
	for _, s := range newTestShakers(t) {
		salt, err := s.Generate()
		require.NoError(t, err, "%s Generate", s.Format())
		assert.Len(t, salt, wantLen[s.Format()], "%s salt length", s.Format())
		assert.True(t, unixcrypt.IsValid(salt), "%s: salt %q has characters outside the alphabet", s.Format(), salt)

		_, err = s.Encode(salt)
		assert.NoError(t, err, "%s: Encode(Generate())", s.Format())
	}
}

func TestShakers_Generate_Unique(t *testing.T) {
	s, _ := hashing.NewSHA512Shaker(hashing.DefaultSHAOptions())
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		salt, err := s.Generate()
		require.NoError(t, err)
		require.False(t, seen[salt], "duplicate salt %q after %d draws", salt, i)
		seen[salt] = true
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructors
// ──────────────────────────────────────────────────────────────────────────────

func TestNewExtDESShaker_InvalidRounds(t *testing.T) {
	for _, r := range []int{0, -1, hashing.MaxExtDESRounds + 1} {
		_, err := hashing.NewExtDESShaker(hashing.ExtDESOptions{Rounds: r})
		assert.ErrorIs(t, err, hashing.ErrInvalidOption, "rounds %d", r)
	}
	s, err := hashing.NewExtDESShaker(hashing.ExtDESOptions{Rounds: hashing.MaxExtDESRounds})
	require.NoError(t, err)
	got, _ := s.Encode("salt")
	assert.Equal(t, "_zzzzsalt", got)
}

func TestNewSHAShaker_Rounds(t *testing.T) {
	for _, r := range []int{0, 1000, 5000, 999999999} {
		s, err := hashing.NewSHA256Shaker(hashing.SHAOptions{Rounds: r})
		if assert.NoError(t, err, "rounds %d", r) {
			assert.Equal(t, r, s.Rounds())
		}
	}
	for _, r := range []int{-1, 1, 999, 1000000000} {
		_, err := hashing.NewSHA512Shaker(hashing.SHAOptions{Rounds: r})
		assert.ErrorIs(t, err, hashing.ErrInvalidOption, "rounds %d", r)
	}
}

func TestDefaultSHAOptions(t *testing.T) {
	assert.Equal(t, 5000, hashing.DefaultSHAOptions().Rounds)
}

func TestNewBlowfishShaker(t *testing.T) {
	s, err := hashing.NewBlowfishShaker(hashing.BlowfishOptions{Cost: 10})
	require.NoError(t, err)
	assert.Equal(t, hashing.Blowfish2A, s.Variant())
	assert.Equal(t, 10, s.Cost())

	bad := []hashing.BlowfishOptions{
		{Cost: 3},
		{Cost: 32},
		{Cost: 10, Variant: hashing.Blowfish2X},
		{Cost: 10, Variant: "2c"},
	}
	for _, opts := range bad {
		_, err := hashing.NewBlowfishShaker(opts)
		assert.ErrorIs(t, err, hashing.ErrInvalidOption, "%+v", opts)
	}
}

func TestDefaultBlowfishOptions(t *testing.T) {
	opts := hashing.DefaultBlowfishOptions()
	assert.Equal(t, hashing.DefaultBlowfishCost, opts.Cost)
	assert.Equal(t, hashing.Blowfish2A, opts.Variant)
}

// ──────────────────────────────────────────────────────────────────────────────
// Round trip
// ──────────────────────────────────────────────────────────────────────────────

// Re-encoding the salt found in a produced hash must give the same setting,
// both with the producing shaker and with the one rebuilt from the hash.
func TestShakers_EncodeIsIdempotentOverHashes(t *testing.T) {
	for _, s := range newTestShakers(t) {
		t.Run(s.Format().String(), func(t *testing.T) {
			p, err := hashing.NewPassword(s)
			require.NoError(t, err)
			hash, err := p.Hash("round-trip")
			require.NoError(t, err)

			parsed, err := hashing.ParseHash(hash)
			require.NoError(t, err, "ParseHash(%q)", hash)
			require.Equal(t, s.Format(), parsed.Format)

			again, err := s.Encode(parsed.Salt)
			require.NoError(t, err)
			assert.Equal(t, parsed.Setting, again)
			if s.Format() != hashing.FormatBlowfish {
				assert.True(t, strings.HasPrefix(hash, again), "hash %q does not start with setting %q", hash, again)
			}

			rebuilt, err := parsed.SaltShaker()
			require.NoError(t, err)
			fromHash, _ := rebuilt.Encode(parsed.Salt)
			assert.Equal(t, parsed.Setting, fromHash)
		})
	}
}
