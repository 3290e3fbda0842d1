package argon

import (
	"crypto/subtle"
	"math"
)

// Key derives a keyLen-byte key from password and salt with Argon2id
// version 0x13.
//
// n is the number of iterations
// par is the degree of parallelism
// mem is the memory cost in KiB
// salt must be at least 8 bytes
func Key(password, salt []byte, n, par, mem, keyLen int) ([]byte, error) {
	p := Params{Variant: Argon2id, Version: Version13}
	for _, f := range []struct {
		name string
		v    int
		dst  *uint32
	}{
		{"iterations", n, &p.Iterations},
		{"lanes", par, &p.Lanes},
		{"memory", mem, &p.Memory},
		{"tag_length", keyLen, &p.TagLength},
	} {
		if f.v < 0 || uint64(f.v) > math.MaxUint32 {
			return nil, &ParamError{Field: f.name, Reason: "out of range"}
		}
		*f.dst = uint32(f.v)
	}
	p.Threads = p.Lanes
	return Hash(p, password, salt, nil, nil)
}

// Hash returns the raw tag for password under p. secret and data are
// optional and may be nil.
func Hash(p Params, password, salt, secret, data []byte) ([]byte, error) {
	return deriveKey(p, password, salt, secret, data, options{})
}

// Verify reports whether password hashes to tag under p.
// The tag length is taken from tag, overriding p.TagLength.
// A mismatch is not an error.
func Verify(p Params, password, salt, secret, data, tag []byte) (bool, error) {
	return verify(p, password, salt, secret, data, tag, options{})
}

func verify(p Params, password, salt, secret, data, tag []byte, o options) (bool, error) {
	if uint64(len(tag)) > math.MaxUint32 {
		return false, &ParamError{Field: "tag_length", Reason: "out of range"}
	}
	p.TagLength = uint32(len(tag))
	got, err := deriveKey(p, password, salt, secret, data, o)
	if err != nil {
		return false, err
	}
	defer clear(got)
	return subtle.ConstantTimeCompare(got, tag) == 1, nil
}

// HashEncoded hashes password and returns the encoded hash string.
func HashEncoded(p Params, password, salt []byte) (string, error) {
	tag, err := Hash(p, password, salt, nil, nil)
	if err != nil {
		return "", err
	}
	h := EncodedHash{Params: p, Salt: salt, Tag: tag}
	return h.String(), nil
}

// DefaultVerifyMemoryLimit is the largest memory cost, in KiB, that
// VerifyEncoded and a Verifier without a configured limit accept.
// Encoded hashes asking for more fail with ErrOutOfMemory before any
// allocation.
const DefaultVerifyMemoryLimit = 4 << 20

// VerifyEncoded reports whether password matches the encoded hash.
// It fails if encoded cannot be parsed or needs more than
// DefaultVerifyMemoryLimit KiB; a mismatch is reported as false.
func VerifyEncoded(encoded string, password []byte) (bool, error) {
	h, err := DecodeHash(encoded)
	if err != nil {
		return false, err
	}
	o := options{memoryLimit: DefaultVerifyMemoryLimit * blockSize}
	return verify(h.Params, password, h.Salt, nil, nil, h.Tag, o)
}

// CompareHashAndPassword returns nil if password matches the encoded
// hash and ErrVerificationMismatch if it does not.
func CompareHashAndPassword(encoded string, password []byte) error {
	ok, err := VerifyEncoded(encoded, password)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVerificationMismatch
	}
	return nil
}
