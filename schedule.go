package argon

import (
	"golang.org/x/sync/errgroup"
)

// fill runs every pass over the matrix. Within a slice the lanes are
// independent and are filled by up to Threads goroutines; the end of
// each slice is a barrier, since the next slice may reference any
// block written so far.
func (in *instance) fill() error {
	p := &in.params
	for pass := uint32(0); pass < p.Iterations; pass++ {
		for slice := uint32(0); slice < syncPoints; slice++ {
			var g errgroup.Group
			g.SetLimit(p.workers())
			for lane := uint32(0); lane < p.Lanes; lane++ {
				pos := position{pass: pass, lane: lane, slice: slice}
				g.Go(func() error {
					in.fillSegment(pos)
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
		}
		in.log.WithField("pass", pass).Debug("pass complete")
	}
	return nil
}

// dataIndependent reports whether reference addresses in the given
// slice come from the address generator rather than block contents.
func (in *instance) dataIndependent(pass, slice uint32) bool {
	switch in.params.Variant {
	case Argon2i:
		return true
	case Argon2id:
		return pass == 0 && slice < syncPoints/2
	}
	return false
}

// accumulate reports whether blocks of the given pass are XORed into
// their previous contents. Version 0x10 overwrites them instead.
func (in *instance) accumulate(pass uint32) bool {
	return pass > 0 && in.params.Version == Version13
}

// fillSegment computes the blocks of one lane in one slice.
// It writes only to that segment.
func (in *instance) fillSegment(pos position) {
	p := &in.params
	mem := in.memory

	var addr *addressGenerator
	independent := in.dataIndependent(pos.pass, pos.slice)
	if independent {
		addr = newAddressGenerator(pos, in.segmentLength*syncPoints*p.Lanes, p.Iterations, p.Variant)
		defer addr.wipe()
	}

	start := uint32(0)
	if pos.pass == 0 && pos.slice == 0 {
		// The first two blocks come from H0.
		start = 2
		if independent {
			addr.next()
		}
	}

	accumulate := in.accumulate(pos.pass)
	for i := start; i < in.segmentLength; i++ {
		pos.index = i
		cur := pos.slice*in.segmentLength + i
		prevIndex := cur - 1
		if cur == 0 {
			prevIndex = in.laneLength - 1
		}
		prev := mem.at(pos.lane, prevIndex)

		var rand uint64
		if independent {
			rand = addr.at(i)
		} else {
			rand = prev[0]
		}

		refLane, refIndex := referenceIndices(rand, pos, p.Lanes, in.segmentLength)
		compress(mem.at(pos.lane, cur), prev, mem.at(refLane, refIndex), accumulate)
	}
}
