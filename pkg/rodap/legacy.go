package rodap

// Legacy is the 48-bit linear congruential generator of java.util.Random.
// Seeding and draw order match it exactly, so a seed printed by the original
// tool produces byte-identical output here.
type Legacy struct {
	seed int64
}

const (
	lcgMultiplier = 0x5DEECE66D
	lcgAddend     = 0xB
	lcgMask       = (1 << 48) - 1
)

// NewLegacy returns a Legacy generator with the given seed.
func NewLegacy(seed int64) *Legacy {
	return &Legacy{seed: (seed ^ lcgMultiplier) & lcgMask}
}

func (r *Legacy) next(bits uint) int32 {
	r.seed = (r.seed*lcgMultiplier + lcgAddend) & lcgMask
	return int32(r.seed >> (48 - bits))
}

// Int32 returns the next 32 random bits as a signed integer.
func (r *Legacy) Int32() int32 {
	return r.next(32)
}

// Int32N returns a uniform value in [0, bound). It panics if bound <= 0.
func (r *Legacy) Int32N(bound int32) int32 {
	if bound <= 0 {
		panic("rodap: bound must be positive")
	}

	x := r.next(31)
	m := bound - 1
	if bound&m == 0 {
		return int32((int64(bound) * int64(x)) >> 31)
	}
	// Reject the tail that would bias the modulo. u-x+m overflows int32 on purpose.
	for u := x; ; u = r.next(31) {
		x = u % bound
		if u-x+m >= 0 {
			return x
		}
	}
}

// Bytes fills p four bytes per 32-bit draw, low byte first. A trailing partial
// draw is discarded.
func (r *Legacy) Bytes(p []byte) {
	for i := 0; i < len(p); {
		v := r.Int32()
		for n := min(len(p)-i, 4); n > 0; n-- {
			p[i] = byte(v)
			v >>= 8
			i++
		}
	}
}

func (r *Legacy) IntRange(lo, hi int) int {
	return lo + int(r.Int32N(int32(hi-lo+1)))
}
