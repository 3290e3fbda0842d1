package argon

import (
	"time"

	"github.com/sirupsen/logrus"
)

// DefaultSaltLength is the length of the random salt a Hasher generates.
const DefaultSaltLength = 32

// settings are shared by Hasher and Verifier.
type settings struct {
	secretKey         []byte
	additionalData    []byte
	salt              []byte
	passwordClearing  bool
	secretKeyClearing bool
	memoryLimit       uint64
	log               logrus.FieldLogger
	metrics           *Metrics
}

func (s *settings) options() options {
	return options{log: s.log, memoryLimit: s.memoryLimit}
}

// clearInputs wipes the caller's buffers according to the clearing flags.
func (s *settings) clearInputs(password []byte) {
	if s.passwordClearing {
		clear(password)
	}
	if s.secretKeyClearing && s.secretKey != nil {
		clear(s.secretKey)
		s.secretKey = nil
	}
}

// An Option configures a Hasher or a Verifier.
type Option func(*settings)

// WithSecretKey sets the secret key K. The slice is retained, not copied,
// so that secret key clearing can wipe the caller's buffer.
func WithSecretKey(key []byte) Option {
	return func(s *settings) { s.secretKey = key }
}

// WithAdditionalData sets the associated data X.
func WithAdditionalData(data []byte) Option {
	return func(s *settings) { s.additionalData = data }
}

// WithSalt makes a Hasher use a fixed salt instead of a random one.
// Verifiers ignore it.
func WithSalt(salt []byte) Option {
	return func(s *settings) { s.salt = salt }
}

// WithLogger sets the logger; the default is the logrus standard logger.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *settings) { s.log = log }
}

// WithMetrics records operations into m.
func WithMetrics(m *Metrics) Option {
	return func(s *settings) { s.metrics = m }
}

// WithMemoryLimit refuses parameters needing more than kib KiB of memory.
// Zero removes the limit.
func WithMemoryLimit(kib uint64) Option {
	return func(s *settings) { s.memoryLimit = kib * blockSize }
}

// WithPasswordClearing controls whether the password buffer is wiped
// after every call. It is on by default.
func WithPasswordClearing(on bool) Option {
	return func(s *settings) { s.passwordClearing = on }
}

// WithSecretKeyClearing controls whether the secret key buffer is wiped
// after every call. Once wiped, the key must be set again with SetSecretKey.
func WithSecretKeyClearing(on bool) Option {
	return func(s *settings) { s.secretKeyClearing = on }
}

// A Hasher produces encoded hashes with fixed parameters. It is not
// safe for concurrent use when secret key clearing is enabled.
type Hasher struct {
	settings
	params     Params
	saltLength uint32

	// optOutOfSecretKey allows hashing without a secret key.
	optOutOfSecretKey bool

	random func(n uint32) ([]byte, error)
}

// NewHasher returns a Hasher for cfg.
func NewHasher(cfg Config, opts ...Option) (*Hasher, error) {
	p, err := cfg.Params()
	if err != nil {
		return nil, err
	}
	if cfg.SaltLength < MinSaltLength {
		return nil, &ParamError{Field: "salt_length", Reason: "too short"}
	}
	h := &Hasher{
		settings: settings{
			passwordClearing:  cfg.PasswordClearing,
			secretKeyClearing: cfg.SecretKeyClearing,
			memoryLimit:       cfg.MemoryLimit * blockSize,
		},
		params:            p,
		saltLength:        cfg.SaltLength,
		optOutOfSecretKey: cfg.OptOutOfSecretKey,
		random:            RandomBytes,
	}
	for _, opt := range opts {
		opt(&h.settings)
	}
	return h, nil
}

// FastButInsecure returns a Hasher with the minimum cost parameters that
// hashes without a secret key unless one is given.
// It is meant for tests and benchmarks, never for real passwords.
func FastButInsecure(opts ...Option) *Hasher {
	cfg := DefaultConfig()
	cfg.OptOutOfSecretKey = true
	cfg.Iterations = 1
	cfg.MemorySize = 32
	cfg.Lanes = 1
	cfg.Threads = 1
	h, err := NewHasher(cfg, opts...)
	if err != nil {
		panic("argon: internal error: " + err.Error())
	}
	return h
}

// Params returns the parameters h hashes with.
func (h *Hasher) Params() Params { return h.params }

// SetSecretKey replaces the secret key, typically after it was cleared.
func (h *Hasher) SetSecretKey(key []byte) { h.secretKey = key }

// Hash hashes password and returns the encoded hash string.
func (h *Hasher) Hash(password []byte) (string, error) {
	raw, err := h.HashRaw(password)
	if err != nil {
		return "", err
	}
	return raw.String(), nil
}

// HashRaw hashes password and returns the parameters, salt and tag.
func (h *Hasher) HashRaw(password []byte) (*EncodedHash, error) {
	log := newLogger(h.log, "Hasher.HashRaw")
	start := time.Now()
	defer h.clearInputs(password)

	if len(h.secretKey) == 0 && !h.optOutOfSecretKey {
		err := &ParamError{Field: "secret_key", Reason: "not set and opt_out_of_secret_key is off"}
		h.metrics.observeError(err)
		return nil, err
	}

	salt := h.salt
	if salt == nil {
		var err error
		if salt, err = h.random(h.saltLength); err != nil {
			h.metrics.observeError(err)
			log.WithError(err).Error("cannot generate salt")
			return nil, err
		}
	}

	tag, err := deriveKey(h.params, password, salt, h.secretKey, h.additionalData, h.options())
	if err != nil {
		h.metrics.observeError(err)
		return nil, err
	}
	h.metrics.observeHash(h.params.Variant, start)
	log.WithField("elapsed", time.Since(start)).Debug("hashed password")
	return &EncodedHash{Params: h.params, Salt: salt, Tag: tag}, nil
}

// A Verifier checks passwords against encoded hashes. The secret key and
// additional data must match those the hash was created with.
type Verifier struct {
	settings
	threads uint32
}

// NewVerifier returns a Verifier using cfg's clearing, threads and
// memory limit settings. Without a configured limit, hashes needing more
// than DefaultVerifyMemoryLimit KiB are refused with ErrOutOfMemory;
// WithMemoryLimit(0) removes the cap.
func NewVerifier(cfg Config, opts ...Option) *Verifier {
	limit := cfg.MemoryLimit
	if limit == 0 {
		limit = DefaultVerifyMemoryLimit
	}
	v := &Verifier{
		settings: settings{
			passwordClearing:  cfg.PasswordClearing,
			secretKeyClearing: cfg.SecretKeyClearing,
			memoryLimit:       limit * blockSize,
		},
		threads: cfg.Threads,
	}
	for _, opt := range opts {
		opt(&v.settings)
	}
	return v
}

// SetSecretKey replaces the secret key, typically after it was cleared.
func (v *Verifier) SetSecretKey(key []byte) { v.secretKey = key }

// Verify reports whether password matches encoded. It returns an error
// only for malformed hashes or resource failures.
func (v *Verifier) Verify(encoded string, password []byte) (bool, error) {
	log := newLogger(v.log, "Verifier.Verify")
	defer v.clearInputs(password)

	h, err := DecodeHash(encoded)
	if err != nil {
		v.metrics.observeError(err)
		log.WithError(err).Debug("cannot decode hash")
		return false, err
	}
	if v.threads != 0 {
		h.Params.Threads = v.threads
	}
	ok, err := verify(h.Params, password, h.Salt, v.secretKey, v.additionalData, h.Tag, v.options())
	if err != nil {
		v.metrics.observeError(err)
		return false, err
	}
	v.metrics.observeVerify(ok)
	return ok, nil
}
