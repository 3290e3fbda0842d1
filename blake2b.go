package argon

import (
	"hash"

	"github.com/dchest/blake2b"
)

// seedLength is the size of the input used to derive the first two
// blocks of every lane: the 64-byte H0 followed by the block number
// and the lane number.
const seedLength = blake2b.Size + 8

// initialHash computes H0, a BLAKE2b-512 digest of every input and
// parameter. memory is the caller's memory cost before rounding.
func initialHash(p *Params, memory uint32, password, salt, secret, data []byte) [blake2b.Size]byte {
	h := blake2b.New512()
	write32(h, p.Lanes)
	write32(h, p.TagLength)
	write32(h, memory)
	write32(h, p.Iterations)
	write32(h, uint32(p.Version))
	write32(h, uint32(p.Variant))
	writeBytes(h, password)
	writeBytes(h, salt)
	writeBytes(h, secret)
	writeBytes(h, data)

	var h0 [blake2b.Size]byte
	h.Sum(h0[:0])
	return h0
}

// blake2bLong is the variable-length hash H'. It fills out with a
// digest of in, chaining BLAKE2b-512 invocations for outputs longer
// than 64 bytes.
func blake2bLong(out, in []byte) {
	var h hash.Hash
	if len(out) < blake2b.Size {
		h = newBlake2b(len(out))
	} else {
		h = blake2b.New512()
	}
	write32(h, uint32(len(out)))
	h.Write(in)
	if len(out) <= blake2b.Size {
		h.Sum(out[:0])
		return
	}

	var v [blake2b.Size]byte
	defer clear(v[:])
	h.Sum(v[:0])
	copy(out, v[:32])
	out = out[32:]
	for len(out) > blake2b.Size {
		h.Reset()
		h.Write(v[:])
		h.Sum(v[:0])
		copy(out, v[:32])
		out = out[32:]
	}

	// The last digest is exactly as long as the remaining output.
	h = newBlake2b(len(out))
	h.Write(v[:])
	h.Sum(out[:0])
}

func newBlake2b(size int) hash.Hash {
	h, err := blake2b.New(&blake2b.Config{Size: uint8(size)})
	if err != nil {
		panic("argon: internal error: " + err.Error())
	}
	return h
}

func write32(h hash.Hash, v uint32) (n int, err error) {
	var b [4]byte
	b[0] = uint8(v)
	b[1] = uint8(v >> 8)
	b[2] = uint8(v >> 16)
	b[3] = uint8(v >> 24)
	return h.Write(b[:])
}

// writeBytes writes a length-prefixed byte string.
func writeBytes(h hash.Hash, b []byte) {
	write32(h, uint32(len(b)))
	h.Write(b)
}
