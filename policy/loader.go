package policy

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Configuration keys. In a .env file and in the environment the dots become
// underscores: HASHING_ALGORITHM, CRYPT_HASHING_ALGORITHM.
const (
	KeyAlgorithm = "hashing.algorithm"
	KeyRounds    = "hashing.rounds"
	KeyCost      = "hashing.cost"
	KeyVariant   = "hashing.variant"
	KeyLogLevel  = "logging.level"

	// DefaultEnvPrefix prefixes environment variable overrides.
	DefaultEnvPrefix = "CRYPT"
)

// Source names reported by [Loader.Source].
const (
	SourceYAML        = "yaml"
	SourceEnv         = "env"
	SourceEnvironment = "environment"
	SourceDefaults    = "defaults"
)

// Options configures [Load].
type Options struct {
	// YAMLPath is the path to the primary YAML config file.
	YAMLPath string

	// EnvPath is the path to the fallback .env file, used only when YAML is absent.
	EnvPath string

	// EnvPrefix prefixes environment overrides. Default: [DefaultEnvPrefix].
	EnvPrefix string

	// Logger receives reload diagnostics. When nil, a JSON logger on stderr
	// is built from logging.level if that key is configured; otherwise
	// nothing is logged.
	Logger *slog.Logger
}

// Loader holds the policy read from configuration and keeps it current when
// watching. All methods are safe for concurrent use.
type Loader struct {
	v      *viper.Viper
	source string
	logger *slog.Logger

	mu        sync.RWMutex
	policy    Policy
	callbacks []func(Policy)
	watchOnce sync.Once
}

// Load reads the policy from the YAML file, or from the .env file when the
// YAML file does not exist. With neither file the policy comes from the
// environment if any hashing variable is set, else from defaults.
// Environment variables override file values in every case. Returns
// [ErrInvalidPolicy] when the resulting policy is unusable.
func Load(opts Options) (*Loader, error) {
	v := viper.New()
	l := &Loader{v: v, source: SourceDefaults}

	prefix := opts.EnvPrefix
	if prefix == "" {
		prefix = DefaultEnvPrefix
	}
	v.SetEnvPrefix(prefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	switch {
	case fileExists(opts.YAMLPath):
		v.SetConfigFile(opts.YAMLPath)
		v.SetConfigType("yaml")
		l.source = SourceYAML
	case fileExists(opts.EnvPath):
		v.SetConfigFile(opts.EnvPath)
		v.SetConfigType("env")
		l.source = SourceEnv
	}
	if l.fromFile() {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("policy: failed to read %s file: %w", l.source, err)
		}
	} else if l.environmentSet() {
		l.source = SourceEnvironment
	}

	l.logger = opts.Logger
	if l.logger == nil {
		if level := v.GetString(l.key(KeyLogLevel)); level != "" {
			l.logger = NewJSONLogger(os.Stderr, level)
		} else {
			l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
		}
	}

	p := l.read()
	if err := p.Validate(); err != nil {
		return nil, err
	}
	l.policy = p
	l.logger.Info("policy: loaded", "source", l.source, "algorithm", p.Algorithm)
	return l, nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func (l *Loader) fromFile() bool {
	return l.source == SourceYAML || l.source == SourceEnv
}

func (l *Loader) environmentSet() bool {
	for _, k := range []string{KeyAlgorithm, KeyRounds, KeyCost, KeyVariant} {
		if l.v.IsSet(k) {
			return true
		}
	}
	return false
}

// key returns the nested key when it is set, else its flat .env spelling.
func (l *Loader) key(k string) string {
	if l.v.IsSet(k) {
		return k
	}
	return strings.ReplaceAll(k, ".", "_")
}

func (l *Loader) read() Policy {
	p := Policy{
		Algorithm: strings.ToLower(strings.TrimSpace(l.v.GetString(l.key(KeyAlgorithm)))),
		Rounds:    l.v.GetInt(l.key(KeyRounds)),
		Cost:      l.v.GetInt(l.key(KeyCost)),
		Variant:   strings.TrimSpace(l.v.GetString(l.key(KeyVariant))),
	}
	if p.Algorithm == "" {
		p.Algorithm = DefaultAlgorithm
	}
	return p
}

// Policy returns the current policy.
func (l *Loader) Policy() Policy {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.policy
}

// Source returns which source the policy was read from: "yaml", "env",
// "environment" or "defaults". Environment overrides on top of a file still
// report the file.
func (l *Loader) Source() string { return l.source }

// Watch calls fn with the new policy after every successful reload of the
// config file. Reloads producing an invalid policy are logged and ignored.
// Multiple callbacks run in registration order. Watch does nothing more than
// register fn when no file was read.
func (l *Loader) Watch(fn func(Policy)) {
	l.mu.Lock()
	l.callbacks = append(l.callbacks, fn)
	l.mu.Unlock()

	if !l.fromFile() {
		return
	}
	l.watchOnce.Do(func() {
		l.v.OnConfigChange(func(e fsnotify.Event) {
			l.logger.Debug("policy: config file changed", "file", e.Name, "op", e.Op.String())
			l.reload()
		})
		l.v.WatchConfig()
	})
}

// reload re-reads the config file and publishes the policy if it is valid.
func (l *Loader) reload() {
	l.mu.Lock()
	if err := l.v.ReadInConfig(); err != nil {
		l.mu.Unlock()
		l.logger.Warn("policy: reload failed, keeping previous policy", "error", err)
		return
	}
	p := l.read()
	if err := p.Validate(); err != nil {
		l.mu.Unlock()
		l.logger.Warn("policy: invalid policy ignored", "error", err)
		return
	}
	l.policy = p
	cbs := make([]func(Policy), len(l.callbacks))
	copy(cbs, l.callbacks)
	l.mu.Unlock()

	l.logger.Info("policy: reloaded", "algorithm", p.Algorithm)
	for _, fn := range cbs {
		fn(p)
	}
}
