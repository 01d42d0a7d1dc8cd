package drops

import (
	"math"
	"math/rand/v2"
	"time"
)

// Rand wraps a seeded source with the distribution helpers drops are built
// from. A nil *Rand is not valid; use NewRand.
type Rand struct {
	r *rand.Rand
}

// NewRand returns a deterministic generator for a non-zero seed, or one
// seeded from the clock when seed is zero.
func NewRand(seed uint64) *Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Rand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 returns a value in [0, 1).
func (r *Rand) Float64() float64 {
	return r.r.Float64()
}

// IntN returns a value in [0, n). n <= 0 yields 0.
func (r *Rand) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// Between returns a value in [lo, hi).
func (r *Rand) Between(lo, hi float64) float64 {
	return lo + r.r.Float64()*(hi-lo)
}

// Signed returns a value in [-1, 1).
func (r *Rand) Signed() float64 {
	return r.Between(-1, 1)
}

// Buffered returns a value in [n/buffer, n): never smaller than the given
// fraction of n.
func (r *Rand) Buffered(n, buffer float64) float64 {
	if buffer <= 1 {
		return r.Between(0, n)
	}
	return r.Between(n/buffer, n)
}

// CurvingBuffered is Buffered with the distribution skewed toward the low
// end. A curve below 1 favors small values; 1 is uniform.
func (r *Rand) CurvingBuffered(n, curve, buffer float64) float64 {
	lo := 0.0
	if buffer > 1 {
		lo = n / buffer
	}
	if curve <= 0 {
		curve = 1
	}
	return lo + (n-lo)*math.Pow(r.r.Float64(), 1/curve)
}
