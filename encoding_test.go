package argon

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const referenceEncoded = "$argon2id$v=19$m=65536,t=2,p=1$c29tZXNhbHQ$CTFhFdXPJO1aFaMaO6Mm5c8y7cJHAph8ArZWb2GRPPc"

func TestDecodeHash(t *testing.T) {
	h, err := DecodeHash(referenceEncoded)
	require.NoError(t, err)

	assert.Equal(t, Params{
		Variant:    Argon2id,
		Version:    Version13,
		Iterations: 2,
		Memory:     65536,
		Lanes:      1,
		Threads:    1,
		TagLength:  32,
	}, h.Params)
	assert.Equal(t, []byte("somesalt"), h.Salt)
	assert.Len(t, h.Tag, 32)
	assert.Equal(t, referenceEncoded, h.String())
}

func TestDecodeHashWithoutVersion(t *testing.T) {
	h, err := DecodeHash("$argon2i$m=65536,t=2,p=1$c29tZXNhbHQ$9sTbSlTio3Biev89thdrlKKiCaYsjjYVJxGAL3swxpQ")
	require.NoError(t, err)
	assert.Equal(t, Version10, h.Params.Version)
	assert.Equal(t, Argon2i, h.Params.Variant)

	// Re-encoding always writes the version.
	assert.Equal(t, "$argon2i$v=16$m=65536,t=2,p=1$c29tZXNhbHQ$9sTbSlTio3Biev89thdrlKKiCaYsjjYVJxGAL3swxpQ", h.String())
}

func TestEncodedHashRoundTrip(t *testing.T) {
	h := EncodedHash{
		Params: Params{Variant: Argon2d, Version: Version10, Iterations: 7, Memory: 4096, Lanes: 8, Threads: 8, TagLength: 5},
		Salt:   bytes.Repeat([]byte{0xfb}, 17),
		Tag:    []byte{0, 1, 2, 0xfe, 0xff},
	}
	got, err := DecodeHash(h.String())
	require.NoError(t, err)
	assert.Equal(t, h, *got)
}

func TestDecodeHashMalformed(t *testing.T) {
	const (
		salt = "c29tZXNhbHQ"
		tag  = "CTFhFdXPJO1aFaMaO6Mm5c8y7cJHAph8ArZWb2GRPPc"
	)
	tests := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"no leading dollar", "argon2id$v=19$m=65536,t=2,p=1$" + salt + "$" + tag},
		{"too few fields", "$argon2id$v=19$m=65536,t=2,p=1$" + salt},
		{"too many fields", "$argon2id$v=19$m=65536,t=2,p=1$" + salt + "$" + tag + "$"},
		{"unknown variant", "$argon2x$v=19$m=65536,t=2,p=1$" + salt + "$" + tag},
		{"upper case variant", "$Argon2id$v=19$m=65536,t=2,p=1$" + salt + "$" + tag},
		{"empty version field", "$argon2id$$m=65536,t=2,p=1$" + salt + "$" + tag},
		{"unsupported version", "$argon2id$v=18$m=65536,t=2,p=1$" + salt + "$" + tag},
		{"version leading zero", "$argon2id$v=019$m=65536,t=2,p=1$" + salt + "$" + tag},
		{"hex version", "$argon2id$v=0x13$m=65536,t=2,p=1$" + salt + "$" + tag},
		{"missing lanes", "$argon2id$v=19$m=65536,t=2$" + salt + "$" + tag},
		{"extra parameter", "$argon2id$v=19$m=65536,t=2,p=1,k=3$" + salt + "$" + tag},
		{"parameters out of order", "$argon2id$v=19$t=2,m=65536,p=1$" + salt + "$" + tag},
		{"memory leading zero", "$argon2id$v=19$m=065536,t=2,p=1$" + salt + "$" + tag},
		{"signed memory", "$argon2id$v=19$m=+65536,t=2,p=1$" + salt + "$" + tag},
		{"memory overflow", "$argon2id$v=19$m=4294967296,t=2,p=1$" + salt + "$" + tag},
		{"empty iterations", "$argon2id$v=19$m=65536,t=,p=1$" + salt + "$" + tag},
		{"zero iterations", "$argon2id$v=19$m=65536,t=0,p=1$" + salt + "$" + tag},
		{"zero lanes", "$argon2id$v=19$m=65536,t=2,p=0$" + salt + "$" + tag},
		{"memory below 8 blocks per lane", "$argon2id$v=19$m=8,t=2,p=2$" + salt + "$" + tag},
		{"padded salt", "$argon2id$v=19$m=65536,t=2,p=1$" + salt + "=$" + tag},
		{"non-canonical salt", "$argon2id$v=19$m=65536,t=2,p=1$c29tZXNhbHR$" + tag},
		{"url-safe alphabet", "$argon2id$v=19$m=65536,t=2,p=1$" + salt + "$_-_-_-_-"},
		{"short salt", "$argon2id$v=19$m=65536,t=2,p=1$c2FsdA$" + tag},
		{"short tag", "$argon2id$v=19$m=65536,t=2,p=1$" + salt + "$AAAA"},
		{"truncated tag", "$argon2id$v=19$m=65536,t=2,p=1$" + salt + "$" + tag[:len(tag)-1]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := DecodeHash(tt.encoded)
			assert.Nil(t, h)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMalformedEncoding)
		})
	}
}

func TestParseDecimal(t *testing.T) {
	for s, want := range map[string]uint32{"0": 0, "7": 7, "19": 19, "4294967295": 4294967295} {
		got, err := parseDecimal(s)
		require.NoError(t, err, s)
		assert.Equal(t, want, got, s)
	}
	for _, s := range []string{"", "00", "01", "-1", " 1", "1 ", "4294967296"} {
		_, err := parseDecimal(s)
		assert.Error(t, err, "%q", s)
	}
}
