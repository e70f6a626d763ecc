// Package ring - deterministic randomness.
//
// One policy for the whole optimiser:
//   - seed == 0 selects a fixed default stream, so default runs reproduce.
//   - every (generation, species) task owns an independent stream derived
//     from the master seed, so a species' trajectory is identical whether it
//     is evolved by one worker or sixteen.
//   - *rand.Rand is never shared across goroutines.
package ring

import "math/rand"

// defaultSeed replaces a zero master seed. Arbitrary but stable.
const defaultSeed int64 = 1

// SplitMix64 finalizer constants (Vigna 2014). Strong bit diffusion: small
// input changes yield well-distributed output changes, which is what keeps
// neighbouring (generation, species) streams uncorrelated.
const (
	mixGamma uint64 = 0x9e3779b97f4a7c15
	mixMulA  uint64 = 0xbf58476d1ce4e5b9
	mixMulB  uint64 = 0x94d049bb133111eb
)

// mix64 applies one SplitMix64 avalanche round.
func mix64(x uint64) uint64 {
	x += mixGamma
	x = (x ^ (x >> 30)) * mixMulA
	x = (x ^ (x >> 27)) * mixMulB

	return x ^ (x >> 31)
}

// NewRand returns a deterministic generator for seed, applying the zero-seed
// policy.
//
// Complexity: O(1).
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// TaskSeed derives the seed of one per-generation, per-species task stream
// from the master seed. Generation and species index are folded in through
// separate avalanche rounds so that streams differ even when the raw tuples
// collide additively.
//
// Complexity: O(1).
func TaskSeed(master int64, generation, species int) int64 {
	var x uint64
	x = mix64(uint64(master))
	x = mix64(x ^ (uint64(generation) + 1))
	x = mix64(x ^ uint64(species)*mixGamma)

	return int64(x)
}

// shuffleInts performs an in-place Fisher-Yates shuffle of a using rng.
//
// Complexity: O(len(a)) time, O(1) extra space.
func shuffleInts(a []int, rng *rand.Rand) {
	var i, j int
	for i = len(a) - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// RandomRing builds one seeding ring over n stations: depot first, then a
// random sample of the remaining stations.
//
// The target length is drawn from U{3..maxInitialRingLen(n)}; the bounded
// upper end keeps initial rings short enough that early generations explore
// the ring-size axis from below rather than shrinking huge random tours.
//
// Contract: n >= 3. The result satisfies the Individual invariants.
//
// Complexity: O(n).
func RandomRing(n int, rng *rand.Rand) []int {
	k := 3 + rng.Intn(maxInitialRingLen(n)-3+1)

	// Candidate ids 2..n, shuffled; the ring takes the first k-1.
	rest := make([]int, n-1)
	var i int
	for i = 0; i < n-1; i++ {
		rest[i] = i + 2
	}
	shuffleInts(rest, rng)

	ring := make([]int, 0, k)
	ring = append(ring, Depot)
	ring = append(ring, rest[:k-1]...)

	return ring
}

// maxInitialRingLen bounds the seeding ring length: min(20, n/5), floored
// at 3 and capped at n.
func maxInitialRingLen(n int) int {
	m := n / 5
	if m > 20 {
		m = 20
	}
	if m < 3 {
		m = 3
	}
	if m > n {
		m = n
	}

	return m
}
