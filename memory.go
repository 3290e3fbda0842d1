package argon

import (
	"fmt"
	"math"
	"runtime"
)

// memory is the block matrix of a single invocation: lanes rows of
// laneLength blocks each, stored contiguously lane after lane.
type memory struct {
	blocks     []block
	lanes      uint32
	laneLength uint32
}

// newMemory allocates a zeroed matrix. It returns ErrOutOfMemory when
// the matrix would exceed limit bytes, cannot be addressed on this
// platform, or the runtime refuses the allocation.
func newMemory(lanes, laneLength uint32, limit uint64) (m *memory, err error) {
	n := uint64(lanes) * uint64(laneLength)
	if n > math.MaxInt/blockSize {
		return nil, fmt.Errorf("%w: %d blocks are not addressable", ErrOutOfMemory, n)
	}
	if limit > 0 && n*blockSize > limit {
		return nil, fmt.Errorf("%w: %d KiB exceeds the limit of %d KiB", ErrOutOfMemory, n, limit/blockSize)
	}

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(runtime.Error); !ok {
				panic(r)
			}
			m, err = nil, fmt.Errorf("%w: %v", ErrOutOfMemory, r)
		}
	}()
	return &memory{
		blocks:     make([]block, n),
		lanes:      lanes,
		laneLength: laneLength,
	}, nil
}

// at returns the block at the given index of a lane.
// Indices outside the matrix are a programming error.
func (m *memory) at(lane, index uint32) *block {
	if lane >= m.lanes || index >= m.laneLength {
		panic(fmt.Sprintf("argon: internal error: block (%d, %d) outside %dx%d matrix", lane, index, m.lanes, m.laneLength))
	}
	return &m.blocks[int(lane)*int(m.laneLength)+int(index)]
}

// release wipes the matrix and drops the reference to it.
func (m *memory) release() {
	if m == nil {
		return
	}
	clear(m.blocks)
	runtime.KeepAlive(m.blocks)
	m.blocks = nil
}
