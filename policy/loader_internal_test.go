package policy

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReload_KeepsPolicyOnInvalidContent(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "crypt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("hashing:\n  algorithm: md5\n"), 0o600))

	l, err := Load(Options{YAMLPath: path, Logger: NewJSONLogger(&buf, "debug")})
	require.NoError(t, err)

	var calls int
	l.mu.Lock()
	l.callbacks = append(l.callbacks, func(Policy) { calls++ })
	l.mu.Unlock()

	require.NoError(t, os.WriteFile(path, []byte("hashing:\n  algorithm: blowfish\n  cost: 99\n"), 0o600))
	l.reload()
	assert.Equal(t, "md5", l.Policy().Algorithm)
	assert.Zero(t, calls)
	assert.Contains(t, buf.String(), "invalid policy ignored")

	require.NoError(t, os.WriteFile(path, []byte("hashing:\n  algorithm: blowfish\n  cost: 10\n"), 0o600))
	l.reload()
	assert.Equal(t, Policy{Algorithm: "blowfish", Cost: 10}, l.Policy())
	assert.Equal(t, 1, calls)
}

func TestLoaderKey_FlatFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("HASHING_COST=7\n"), 0o600))

	l, err := Load(Options{EnvPath: path})
	require.NoError(t, err)
	assert.Equal(t, "hashing_cost", l.key(KeyCost))
	assert.Equal(t, 7, l.Policy().Cost)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]string{
		"debug":   "DEBUG",
		"Warning": "WARN",
		"error":   "ERROR",
		"":        "INFO",
		"verbose": "INFO",
	}
	for in, want := range cases {
		assert.Equal(t, want, parseLevel(in).String(), "level %q", in)
	}
}
