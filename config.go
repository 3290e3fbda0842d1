package argon

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config is the user-facing configuration of a Hasher or Verifier, as
// read from a file or the environment.
type Config struct {
	Variant    string `mapstructure:"variant"`
	Version    uint32 `mapstructure:"version"`
	Iterations uint32 `mapstructure:"iterations"`
	// MemorySize is the memory cost in KiB.
	MemorySize uint32 `mapstructure:"memory_size"`
	Lanes      uint32 `mapstructure:"lanes"`
	Threads    uint32 `mapstructure:"threads"`
	HashLength uint32 `mapstructure:"hash_length"`
	SaltLength uint32 `mapstructure:"salt_length"`

	PasswordClearing  bool `mapstructure:"password_clearing"`
	SecretKeyClearing bool `mapstructure:"secret_key_clearing"`

	// OptOutOfSecretKey lets a Hasher hash without a secret key.
	OptOutOfSecretKey bool `mapstructure:"opt_out_of_secret_key"`

	// MemoryLimit caps the memory cost accepted, in KiB. Zero means
	// no limit beyond the platform's.
	MemoryLimit uint64 `mapstructure:"memory_limit"`
}

// DefaultConfig mirrors DefaultParams, with a 32-byte random salt and
// password clearing enabled. A secret key is required unless
// OptOutOfSecretKey is set.
func DefaultConfig() Config {
	p := DefaultParams()
	return Config{
		Variant:          p.Variant.String(),
		Version:          uint32(p.Version),
		Iterations:       p.Iterations,
		MemorySize:       p.Memory,
		Lanes:            p.Lanes,
		Threads:          p.Threads,
		HashLength:       p.TagLength,
		SaltLength:       DefaultSaltLength,
		PasswordClearing: true,
	}
}

// EnvPrefix prefixes the environment variables read by LoadConfig,
// e.g. ARGON2_MEMORY_SIZE.
const EnvPrefix = "ARGON2"

// LoadConfig reads a configuration file (any format viper understands)
// and applies ARGON2_* environment overrides on top of DefaultConfig.
// An empty path reads the environment only.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("argon: reading config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("argon: decoding config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("variant", cfg.Variant)
	v.SetDefault("version", cfg.Version)
	v.SetDefault("iterations", cfg.Iterations)
	v.SetDefault("memory_size", cfg.MemorySize)
	v.SetDefault("lanes", cfg.Lanes)
	v.SetDefault("threads", cfg.Threads)
	v.SetDefault("hash_length", cfg.HashLength)
	v.SetDefault("salt_length", cfg.SaltLength)
	v.SetDefault("password_clearing", cfg.PasswordClearing)
	v.SetDefault("secret_key_clearing", cfg.SecretKeyClearing)
	v.SetDefault("opt_out_of_secret_key", cfg.OptOutOfSecretKey)
	v.SetDefault("memory_limit", cfg.MemoryLimit)
}

// Params converts and validates the cost parameters of c.
func (c Config) Params() (Params, error) {
	variant, err := ParseVariant(c.Variant)
	if err != nil {
		return Params{}, err
	}
	p := Params{
		Variant:    variant,
		Version:    Version(c.Version),
		Iterations: c.Iterations,
		Memory:     c.MemorySize,
		Lanes:      c.Lanes,
		Threads:    c.Threads,
		TagLength:  c.HashLength,
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	if c.MemoryLimit > 0 && uint64(c.MemorySize) > c.MemoryLimit {
		return Params{}, &ParamError{
			Field:  "memory_size",
			Reason: fmt.Sprintf("%d KiB exceeds the limit of %d KiB", c.MemorySize, c.MemoryLimit),
		}
	}
	return p, nil
}
