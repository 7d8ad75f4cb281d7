package hashing

import (
	"crypto/subtle"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/hasbyte1/go-crypt-utils/unixcrypt"
)

// Crypter combines a password with a setting string the way crypt(3) does.
// The default implementation is [unixcrypt.Crypt].
type Crypter interface {
	Crypt(password, setting string) (string, error)
}

// CrypterFunc adapts a plain function to the [Crypter] interface.
type CrypterFunc func(password, setting string) (string, error)

// Crypt calls f(password, setting).
func (f CrypterFunc) Crypt(password, setting string) (string, error) { return f(password, setting) }

var (
	defaultCrypter Crypter = CrypterFunc(unixcrypt.Crypt)
	discardLogger          = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// Option configures a [Password].
type Option func(*passwordOptions)

type passwordOptions struct {
	crypter Crypter
	logger  *slog.Logger
}

// WithCrypter replaces the crypt primitive. Nil restores the default.
func WithCrypter(c Crypter) Option {
	return func(o *passwordOptions) { o.crypter = c }
}

// WithLogger sets the logger used for diagnostics. Passwords, salts and hashes
// are never logged.
func WithLogger(l *slog.Logger) Option {
	return func(o *passwordOptions) { o.logger = l }
}

// Password hashes passwords with the [SaltShaker] it holds.
//
// # Thread safety
//
// All Password methods are safe for concurrent use by multiple goroutines.
// A [sync.RWMutex] serialises [Password.SetSaltShaker] against readers;
// each hashing call reads the shaker exactly once.
type Password struct {
	mu      sync.RWMutex
	shaker  SaltShaker
	crypter Crypter
	logger  *slog.Logger
}

// NewPassword returns a Password holding shaker. Returns [ErrNilSaltShaker]
// if shaker is nil.
func NewPassword(shaker SaltShaker, opts ...Option) (*Password, error) {
	if shaker == nil {
		return nil, ErrNilSaltShaker
	}
	o := passwordOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.crypter == nil {
		o.crypter = defaultCrypter
	}
	if o.logger == nil {
		o.logger = discardLogger
	}
	return &Password{shaker: shaker, crypter: o.crypter, logger: o.logger}, nil
}

// SaltShaker returns the shaker set last.
func (p *Password) SaltShaker() SaltShaker {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.shaker
}

// SetSaltShaker replaces the held shaker. Returns [ErrNilSaltShaker] if s is
// nil, leaving the current shaker in place.
func (p *Password) SetSaltShaker(s SaltShaker) error {
	if s == nil {
		return ErrNilSaltShaker
	}
	p.mu.Lock()
	p.shaker = s
	p.mu.Unlock()
	return nil
}

// Hash hashes password with a fresh salt from the held shaker.
//
// A failing random source is returned as is. Encoding and crypt failures are
// reported as for [Password.HashWithSalt].
func (p *Password) Hash(password string) (string, error) {
	shaker := p.SaltShaker()
	salt, err := shaker.Generate()
	if err != nil {
		return "", err
	}
	return p.hashWith(shaker, password, salt)
}

// HashWithSalt hashes password with rawSalt formatted by the held shaker and
// returns the crypt(3) output unmodified.
//
// Returns an error matching both [ErrEncoding] and the shaker's error
// (usually [ErrInvalidSalt]) when rawSalt is rejected, and
// [ErrHashComputation] when the crypt primitive fails.
func (p *Password) HashWithSalt(password, rawSalt string) (string, error) {
	return p.hashWith(p.SaltShaker(), password, rawSalt)
}

func (p *Password) hashWith(shaker SaltShaker, password, rawSalt string) (string, error) {
	setting, err := shaker.Encode(rawSalt)
	if err != nil {
		p.logger.Debug("hashing: salt rejected", "format", shaker.Format().String(), "error", err)
		return "", fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	hash, err := p.crypter.Crypt(password, setting)
	if err != nil {
		p.logger.Warn("hashing: crypt failed", "format", shaker.Format().String(), "error", err)
		return "", fmt.Errorf("%w: %w", ErrHashComputation, err)
	}
	return hash, nil
}

// Verify reports whether password matches hash, using the instance's crypt
// primitive and logger. The held shaker plays no part; see the package-level
// [Verify].
func (p *Password) Verify(password, hash string) bool {
	return verify(p.crypter, p.logger, password, hash)
}

// NeedsRehash reports whether hash was produced with another format or other
// parameters (rounds, cost or bcrypt variant) than the held shaker would use.
// Callers should re-hash the password on next successful login when this
// returns true.
//
// An implicit SHA-crypt round count differs from an explicit "rounds=5000"
// directive, so such hashes are reported as needing a rehash under
// [DefaultSHAOptions].
func (p *Password) NeedsRehash(hash string) (bool, error) {
	parsed, err := ParseHash(hash)
	if err != nil {
		return false, err
	}
	shaker := p.SaltShaker()
	if parsed.Format != shaker.Format() {
		return true, nil
	}
	setting, err := shaker.Encode(parsed.Salt)
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrEncoding, err)
	}
	return setting != parsed.Setting, nil
}

// Verify reports whether password matches hash.
//
// The format, parameters and salt are recovered from hash itself, the
// password is hashed again with them, and the result is compared with hash in
// constant time. Verify never fails: a malformed or unsupported hash simply
// does not match.
func Verify(password, hash string) bool {
	return verify(defaultCrypter, discardLogger, password, hash)
}

func verify(c Crypter, logger *slog.Logger, password, hash string) bool {
	parsed, err := ParseHash(hash)
	if err != nil {
		logger.Debug("hashing: verify: unusable hash", "error", err)
		return false
	}
	shaker, err := parsed.SaltShaker()
	if err != nil {
		logger.Debug("hashing: verify: unusable hash", "format", parsed.Format.String(), "error", err)
		return false
	}

	p := &Password{shaker: shaker, crypter: c, logger: logger}
	computed, err := p.hashWith(shaker, password, parsed.Salt)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(computed), []byte(hash)) == 1
}
