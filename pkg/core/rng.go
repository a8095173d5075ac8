// Package core holds small helpers shared by simulations.
package core

import "math/rand/v2"

// RNG draws cell states from a seeded PCG stream, so the same seed always
// produces the same random grid.
type RNG struct {
	seed int64
	r    *rand.Rand
}

// NewRNG returns a generator seeded with seed.
func NewRNG(seed int64) *RNG {
	return &RNG{seed: seed, r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Seed returns the seed the generator started from.
func (r *RNG) Seed() int64 { return r.seed }

// Chance reports true with probability p.
func (r *RNG) Chance(p float64) bool {
	if p <= 0 {
		return false
	}
	return r.r.Float64() < p
}
