// Package ring - slice crossover.
package ring

import "math/rand"

// SliceCrossover produces a child ring from two parents:
//
//  1. Draw two cut indices c1 <= c2 within the shorter parent.
//  2. Copy parent A's slice [c1..c2] into the child.
//  3. Append, in order, every station of parent B not already used.
//  4. Prepend the depot if steps 1-3 left it out.
//
// The child is a valid Individual ring (distinct ids, depot present) of
// length at most max(|A|,|B|)+1; it is not a permutation of the full
// station set. The cost cache starts stale.
//
// Contract: both parents satisfy the Individual invariants over n stations.
//
// Complexity: O(|A| + |B|) time, O(n) space.
func SliceCrossover(a, b *Individual, n int, rng *rand.Rand) *Individual {
	m := len(a.Ring)
	if len(b.Ring) < m {
		m = len(b.Ring)
	}

	c1 := rng.Intn(m)
	c2 := rng.Intn(m)
	if c1 > c2 {
		c1, c2 = c2, c1
	}

	return sliceCrossoverAt(a, b, n, c1, c2)
}

// sliceCrossoverAt is the deterministic core of SliceCrossover with the cut
// points fixed; split out so the cut semantics are testable without RNG
// plumbing.
func sliceCrossoverAt(a, b *Individual, n, c1, c2 int) *Individual {
	var (
		used = make([]bool, n+1)
		ring = make([]int, 0, maxInt(len(a.Ring), len(b.Ring))+1)
		id   int
		i    int
	)

	// Step 2: the slice from A.
	for i = c1; i <= c2; i++ {
		id = a.Ring[i]
		ring = append(ring, id)
		used[id] = true
	}

	// Step 3: fill from B in order, skipping used ids.
	for _, id = range b.Ring {
		if !used[id] {
			ring = append(ring, id)
			used[id] = true
		}
	}

	// Step 4: restore the depot invariant.
	if !used[Depot] {
		ring = append(ring, 0)
		copy(ring[1:], ring)
		ring[0] = Depot
	}

	return NewIndividual(ring)
}

// maxInt returns the larger of a and b.
func maxInt(a, b int) int {
	if a > b {
		return a
	}

	return b
}
