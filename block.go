package argon

import (
	"encoding/binary"
	"math/bits"
)

const (
	blockSize  = 1024
	blockWords = blockSize / 8

	// Each lane is split into this many segments per pass.
	// Lanes synchronize at every segment boundary.
	syncPoints = 4
)

// A block is one 1 KiB cell of the memory matrix.
type block [blockWords]uint64

func (b *block) xor(x *block) {
	for i := range b {
		b[i] ^= x[i]
	}
}

func (b *block) zero() {
	clear(b[:])
}

func (b *block) load(buf []byte) {
	for i := range b {
		b[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
}

func (b *block) store(buf []byte) {
	for i, v := range b {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
}

// The compression function treats a block as an 8x8 matrix of
// 16-byte registers. The permutation is applied first to each row
// (16 consecutive words) and then to each column (8 word pairs,
// strided by 16 words).
var rows, columns = permutationIndices()

func permutationIndices() (r, c [8][16]int) {
	for i := 0; i < 8; i++ {
		for j := 0; j < 16; j++ {
			r[i][j] = 16*i + j
		}
		for k := 0; k < 8; k++ {
			c[i][2*k] = 2*i + 16*k
			c[i][2*k+1] = 2*i + 16*k + 1
		}
	}
	return r, c
}

// compress computes G(x, y) and stores it in out.
// If accumulate is set the result is XORed into the existing contents
// of out instead of replacing them.
//
// out may alias x or y.
func compress(out, x, y *block, accumulate bool) {
	var r, q block
	for i := range r {
		r[i] = x[i] ^ y[i]
	}
	q = r
	for i := range rows {
		permute(&q, &rows[i])
	}
	for i := range columns {
		permute(&q, &columns[i])
	}
	if accumulate {
		for i := range q {
			out[i] ^= q[i] ^ r[i]
		}
	} else {
		for i := range q {
			out[i] = q[i] ^ r[i]
		}
	}
}

// permute applies one BLAKE2b round, with the multiplication-hardened
// BlaMka mixing function, to the 16 words of b selected by idx.
func permute(b *block, idx *[16]int) {
	var v [16]uint64
	for i, j := range idx {
		v[i] = b[j]
	}

	v[0], v[4], v[8], v[12] = mix(v[0], v[4], v[8], v[12])
	v[1], v[5], v[9], v[13] = mix(v[1], v[5], v[9], v[13])
	v[2], v[6], v[10], v[14] = mix(v[2], v[6], v[10], v[14])
	v[3], v[7], v[11], v[15] = mix(v[3], v[7], v[11], v[15])

	v[0], v[5], v[10], v[15] = mix(v[0], v[5], v[10], v[15])
	v[1], v[6], v[11], v[12] = mix(v[1], v[6], v[11], v[12])
	v[2], v[7], v[8], v[13] = mix(v[2], v[7], v[8], v[13])
	v[3], v[4], v[9], v[14] = mix(v[3], v[4], v[9], v[14])

	for i, j := range idx {
		b[j] = v[i]
	}
}

// mix is the BLAKE2b G function with each addition a+b replaced
// by a + b + 2*lo32(a)*lo32(b).
func mix(a, b, c, d uint64) (uint64, uint64, uint64, uint64) {
	a += b + 2*uint64(uint32(a))*uint64(uint32(b))
	d = bits.RotateLeft64(d^a, -32)
	c += d + 2*uint64(uint32(c))*uint64(uint32(d))
	b = bits.RotateLeft64(b^c, -24)

	a += b + 2*uint64(uint32(a))*uint64(uint32(b))
	d = bits.RotateLeft64(d^a, -16)
	c += d + 2*uint64(uint32(c))*uint64(uint32(d))
	b = bits.RotateLeft64(b^c, -63)
	return a, b, c, d
}
