package argon

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomBytes(t *testing.T) {
	a, err := RandomBytes(32)
	require.NoError(t, err)
	b, err := RandomBytes(32)
	require.NoError(t, err)
	assert.Len(t, a, 32)
	assert.NotEqual(t, a, b)

	empty, err := RandomBytes(0)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRandomBase64(t *testing.T) {
	s, err := RandomBase64(16)
	require.NoError(t, err)
	assert.Len(t, s, 24)

	raw, err := base64.StdEncoding.DecodeString(s)
	require.NoError(t, err)
	assert.Len(t, raw, 16)
}
