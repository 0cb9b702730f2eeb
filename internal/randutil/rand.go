// Package randutil centralises how random sources are seeded so that every
// simulation is reproducible from a single int64 seed.
package randutil

import rand "math/rand/v2"

const goldenRatio64 = 0x9e3779b97f4a7c15

// New returns a *rand.Rand seeded deterministically from the provided int64.
// All randomness in the engine (the Random strategy, noise flips) flows
// through sources created here; there is no ambient global state.
func New(seed int64) *rand.Rand {
	return Split(seed, 0)
}

// Split derives an independent generator for the given stream number. Each
// match in a tournament gets its own stream so matches can run in any order,
// or in parallel, without perturbing each other's sequences.
func Split(seed int64, stream uint64) *rand.Rand {
	u := uint64(seed) + (stream+1)*goldenRatio64
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
