package core

import "math/rand/v2"

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// IntN returns a value in [0, n). It returns 0 when n <= 0.
func (r *RNG) IntN(n int) int {
	if n <= 0 {
		return 0
	}
	return r.r.IntN(n)
}

// IntRange returns a value in [min, max]. Reversed bounds collapse to min.
func (r *RNG) IntRange(min, max int) int {
	if max <= min {
		return min
	}
	return min + r.r.IntN(max-min+1)
}

// Int64Range returns a value in [min, max].
func (r *RNG) Int64Range(min, max int64) int64 {
	if max <= min {
		return min
	}
	return min + r.r.Int64N(max-min+1)
}
