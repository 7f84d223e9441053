// Package rng provides deterministic per-element random number seeding so
// that Poisson-disk sampling and hand-drawn perturbation produce
// bit-identical output whether they run sequentially or across a thread
// pool (execctx.Pool). Every RNG consumer derives its seed from the
// caller's global configured seed plus a stable element index, never from
// wall-clock time or goroutine-local state.
package rng

import "math/rand"

// Derive mixes a global seed with an element index using splitmix64,
// producing a well-distributed 64-bit sub-seed. splitmix64 is a fast,
// simple, and widely used seed-mixing function; it needs no dependency
// beyond basic arithmetic.
func Derive(globalSeed uint64, index int) uint64 {
	z := globalSeed + uint64(index)*0x9E3779B97F4A7C15
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	z = z ^ (z >> 31)
	return z
}

// New returns a *rand.Rand seeded deterministically from globalSeed and
// index. Two calls with the same arguments always produce the same
// sequence, independent of which goroutine calls it or when.
func New(globalSeed uint64, index int) *rand.Rand {
	sub := Derive(globalSeed, index)
	// rand.NewSource takes an int64; truncating a well-mixed uint64 to
	// int64 still yields a good seed.
	return rand.New(rand.NewSource(int64(sub)))
}
