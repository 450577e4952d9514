package rodap

import (
	"encoding/binary"
	"math/rand/v2"
)

// pcgStream is the second PCG seed word. Fixed so a single int64 seed is enough.
const pcgStream = 0x9E3779B97F4A7C15

// PCG draws from math/rand/v2's PCG generator. It is faster than Legacy but its
// output has no relation to the original tool's.
type PCG struct {
	rand *rand.Rand
}

// NewPCG returns a PCG source seeded with seed.
func NewPCG(seed int64) *PCG {
	return &PCG{rand: rand.New(rand.NewPCG(uint64(seed), pcgStream))}
}

// Bytes fills p eight bytes per draw, little endian.
func (g *PCG) Bytes(p []byte) {
	var word [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(word[:], g.rand.Uint64())
		copy(p[i:], word[:])
	}
}

func (g *PCG) IntRange(lo, hi int) int {
	return lo + g.rand.IntN(hi-lo+1)
}
