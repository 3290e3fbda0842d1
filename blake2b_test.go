package argon

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/blake2b"
)

// prefixed returns LE32(n) || in.
func prefixed(n int, in []byte) []byte {
	b := binary.LittleEndian.AppendUint32(nil, uint32(n))
	return append(b, in...)
}

func TestBlake2bLongShort(t *testing.T) {
	in := []byte("the quick brown fox")
	for _, n := range []int{4, 16, 32, 63, 64} {
		out := make([]byte, n)
		blake2bLong(out, in)

		h, err := blake2b.New(n, nil)
		require.NoError(t, err)
		h.Write(prefixed(n, in))
		assert.Equal(t, h.Sum(nil), out, "length %d", n)
	}
}

func TestBlake2bLongChained(t *testing.T) {
	in := []byte("the quick brown fox")
	for _, n := range []int{65, 96, 97, 100, 128, 1024} {
		out := make([]byte, n)
		blake2bLong(out, in)

		// Rebuild H' from its definition.
		v := blake2b.Sum512(prefixed(n, in))
		want := append(make([]byte, 0, n), v[:32]...)
		for n-len(want) > 64 {
			v = blake2b.Sum512(v[:])
			want = append(want, v[:32]...)
		}
		h, err := blake2b.New(n-len(want), nil)
		require.NoError(t, err)
		h.Write(v[:])
		want = h.Sum(want)

		require.Len(t, want, n)
		assert.Equal(t, want, out, "length %d", n)
	}
}

func TestInitialHashLayout(t *testing.T) {
	p := Params{Variant: Argon2i, Version: Version13, Iterations: 3, Memory: 32, Lanes: 4, TagLength: 32}
	password, salt, secret, data := repeat(1, 32), repeat(2, 16), repeat(3, 8), repeat(4, 12)

	var in []byte
	for _, v := range []uint32{4, 32, 32, 3, 0x13, 1} {
		in = binary.LittleEndian.AppendUint32(in, v)
	}
	for _, b := range [][]byte{password, salt, secret, data} {
		in = binary.LittleEndian.AppendUint32(in, uint32(len(b)))
		in = append(in, b...)
	}
	want := blake2b.Sum512(in)

	assert.Equal(t, want, initialHash(&p, p.Memory, password, salt, secret, data))
}
