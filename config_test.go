package argon

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, DefaultParams(), p)
}

func TestLoadConfigFile(t *testing.T) {
	path := writeFile(t, "argon2.yaml", `
variant: argon2i
version: 16
iterations: 4
memory_size: 1024
lanes: 2
hash_length: 48
salt_length: 16
password_clearing: false
memory_limit: 2048
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "argon2i", cfg.Variant)
	assert.Equal(t, uint32(16), cfg.SaltLength)
	assert.False(t, cfg.PasswordClearing)
	assert.Equal(t, uint64(2048), cfg.MemoryLimit)
	assert.Equal(t, uint32(4), cfg.Threads, "unset keys keep their defaults")

	p, err := cfg.Params()
	require.NoError(t, err)
	assert.Equal(t, Params{
		Variant:    Argon2i,
		Version:    Version10,
		Iterations: 4,
		Memory:     1024,
		Lanes:      2,
		Threads:    4,
		TagLength:  48,
	}, p)
}

func TestLoadConfigJSON(t *testing.T) {
	path := writeFile(t, "argon2.json", `{"variant": "argon2d", "iterations": 2}`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "argon2d", cfg.Variant)
	assert.Equal(t, uint32(2), cfg.Iterations)
}

func TestLoadConfigEnvironment(t *testing.T) {
	path := writeFile(t, "argon2.yaml", "iterations: 4\nlanes: 2\n")
	t.Setenv("ARGON2_ITERATIONS", "9")
	t.Setenv("ARGON2_VARIANT", "argon2d")
	t.Setenv("ARGON2_SECRET_KEY_CLEARING", "true")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(9), cfg.Iterations, "environment overrides the file")
	assert.Equal(t, uint32(2), cfg.Lanes)
	assert.Equal(t, "argon2d", cfg.Variant)
	assert.True(t, cfg.SecretKeyClearing)
}

func TestLoadConfigOptOutOfSecretKey(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.False(t, cfg.OptOutOfSecretKey)

	t.Setenv("ARGON2_OPT_OUT_OF_SECRET_KEY", "true")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.True(t, cfg.OptOutOfSecretKey)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeFile(t, "argon2.yaml", "iterations: many\n")
	_, err = LoadConfig(path)
	assert.Error(t, err)
}

func TestConfigParamsErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Variant = "scrypt"
	_, err := cfg.Params()
	assert.ErrorIs(t, err, ErrInvalidParameter)

	cfg = DefaultConfig()
	cfg.HashLength = 2
	_, err = cfg.Params()
	var pe *ParamError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "tag_length", pe.Field)

	cfg = DefaultConfig()
	cfg.MemoryLimit = uint64(cfg.MemorySize) - 1
	_, err = cfg.Params()
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "memory_size", pe.Field)
}
