package argon

import (
	"encoding/binary"
	"math"

	"github.com/sirupsen/logrus"
)

// options carries the ambient settings of one invocation.
type options struct {
	log logrus.FieldLogger

	// memoryLimit caps the matrix size in bytes. Zero means the
	// platform limit only.
	memoryLimit uint64
}

// instance is the state of one invocation, from seeding to the tag.
// Nothing outlives the call that created it.
type instance struct {
	params        Params
	memory        *memory
	laneLength    uint32
	segmentLength uint32
	log           logrus.FieldLogger
}

/*

inputs:

 password  P
 salt      S
 secret    K (optional)
 data      X (optional)

*/

// deriveKey validates its inputs, fills the memory matrix and returns a
// tag of p.TagLength bytes. The matrix and every intermediate buffer are
// wiped before it returns, on success or failure.
func deriveKey(p Params, password, salt, secret, data []byte, o options) ([]byte, error) {
	log := newLogger(o.log, "deriveKey")
	if err := p.Validate(); err != nil {
		log.WithError(err).Debug("rejected parameters")
		return nil, err
	}
	if err := validateInputs(password, salt, secret, data); err != nil {
		log.WithError(err).Debug("rejected inputs")
		return nil, err
	}

	in := &instance{params: p, log: log}
	in.laneLength, in.segmentLength = p.geometry()
	log.WithFields(paramFields(&p)).WithFields(sizeFields(password, salt, secret, data)).
		WithField("lane_length", in.laneLength).Debug("deriving key")

	limit := o.memoryLimit
	if limit == 0 {
		limit = math.MaxUint64
	}
	mem, err := newMemory(p.Lanes, in.laneLength, limit)
	if err != nil {
		log.WithError(err).Warn("cannot allocate memory matrix")
		return nil, err
	}
	in.memory = mem
	defer mem.release()

	h0 := initialHash(&p, p.Memory, password, salt, secret, data)
	in.initialize(h0[:])
	clear(h0[:])

	if err := in.fill(); err != nil {
		return nil, err
	}

	out := make([]byte, p.TagLength)
	in.finalize(out)
	log.Debug("key derived")
	return out, nil
}

// initialize derives the first two blocks of every lane from H0.
func (in *instance) initialize(h0 []byte) {
	var seed [seedLength]byte
	var buf [blockSize]byte
	defer clear(seed[:])
	defer clear(buf[:])

	copy(seed[:], h0)
	for lane := uint32(0); lane < in.params.Lanes; lane++ {
		binary.LittleEndian.PutUint32(seed[68:], lane)
		for i := uint32(0); i < 2; i++ {
			binary.LittleEndian.PutUint32(seed[64:], i)
			blake2bLong(buf[:], seed[:])
			in.memory.at(lane, i).load(buf[:])
		}
	}
}

// finalize XORs the last block of every lane together and hashes the
// result into out.
func (in *instance) finalize(out []byte) {
	var acc block
	var buf [blockSize]byte
	defer acc.zero()
	defer clear(buf[:])

	last := in.laneLength - 1
	acc = *in.memory.at(0, last)
	for lane := uint32(1); lane < in.params.Lanes; lane++ {
		acc.xor(in.memory.at(lane, last))
	}
	acc.store(buf[:])
	blake2bLong(out, buf[:])
}
