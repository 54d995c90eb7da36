// Package cluster - RNG utilities for the stochastic search.
//
// Determinism: same seed ⇒ identical partitions. No time-based sources.
//
// Concurrency:
//   - math/rand.Rand is NOT goroutine-safe. Each run owns its own stream.
//   - RunRestarts derives one independent stream per restart with deriveSeed.
package cluster

import "math/rand"

// defaultRNGSeed is used when Params.Seed == 0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ defaultRNGSeed; otherwise the seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultRNGSeed
	}

	return rand.New(rand.NewSource(seed))
}

// deriveSeed mixes a parent seed and a stream id into a new seed with a
// SplitMix64 finalizer, so restarts do not share correlated streams.
//
// Complexity: O(1).
func deriveSeed(parent int64, stream uint64) int64 {
	x := uint64(parent) ^ (stream + 0x9e3779b97f4a7c15)
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	x ^= x >> 31

	return int64(x)
}
