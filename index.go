package argon

// position identifies the block being computed.
// index counts blocks from the start of the current segment.
type position struct {
	pass  uint32
	lane  uint32
	slice uint32
	index uint32
}

// referenceIndices maps a 64-bit pseudo-random value onto the block
// that is mixed into the block at pos. The high 32 bits pick the
// lane, the low 32 bits pick a block inside the reference area with
// a quadratic bias towards the most recently written blocks.
//
// Blocks that may still be written by another lane during the
// current slice are never selected.
func referenceIndices(rand uint64, pos position, lanes, segmentLength uint32) (refLane, refIndex uint32) {
	laneLength := segmentLength * syncPoints

	refLane = uint32(rand>>32) % lanes
	if pos.pass == 0 && pos.slice == 0 {
		refLane = pos.lane
	}
	sameLane := refLane == pos.lane

	// area is the number of candidate blocks, start the index of the
	// oldest one.
	var area, start uint32
	if pos.pass == 0 {
		area = pos.slice * segmentLength
		if sameLane {
			area += pos.index
		}
	} else {
		area = laneLength - segmentLength
		if sameLane {
			area += pos.index
		}
		start = ((pos.slice + 1) % syncPoints) * segmentLength
	}
	// The previous block is already an input of the compression, and
	// the last block of another lane's previous segment is excluded
	// while the first block of a segment is computed.
	if pos.index == 0 || sameLane {
		area--
	}

	x := rand & 0xffffffff
	x = x * x >> 32
	x = uint64(area) * x >> 32
	rel := uint64(area) - 1 - x

	refIndex = uint32((uint64(start) + rel) % uint64(laneLength))
	return refLane, refIndex
}

// addressGenerator produces the pseudo-random values for data-independent
// addressing. Its input block depends only on public parameters and a
// counter, so the memory access pattern reveals nothing about the password.
type addressGenerator struct {
	input   block
	address block
	zero    block
}

func newAddressGenerator(pos position, blocks, passes uint32, variant Variant) *addressGenerator {
	g := &addressGenerator{}
	g.input[0] = uint64(pos.pass)
	g.input[1] = uint64(pos.lane)
	g.input[2] = uint64(pos.slice)
	g.input[3] = uint64(blocks)
	g.input[4] = uint64(passes)
	g.input[5] = uint64(variant)
	return g
}

// next refills the address block with 128 fresh values.
func (g *addressGenerator) next() {
	g.input[6]++
	compress(&g.address, &g.zero, &g.input, false)
	compress(&g.address, &g.zero, &g.address, false)
}

// at returns the value for the given index within the segment,
// refilling the address block every 128 blocks.
func (g *addressGenerator) at(index uint32) uint64 {
	if index%blockWords == 0 {
		g.next()
	}
	return g.address[index%blockWords]
}

// wipe clears the counters and the current address block.
func (g *addressGenerator) wipe() {
	g.input.zero()
	g.address.zero()
}
