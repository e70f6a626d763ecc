// Package ring - structural mutation operators.
//
// Five in-place perturbations of a ring. Each invalidates the cost cache
// when it modifies the ring, and each preserves the Individual invariants:
// distinctness and membership are never broken, the remove operator keeps
// the depot and refuses to shrink the ring below its floor.
//
// The bundle Mutate applies the five operators in a fixed order (add,
// remove, swap, inversion, scramble), each firing independently with its
// configured percentage.
package ring

import (
	"math/rand"

	"github.com/katalvlaran/ringstar/metric"
)

// AddNode inserts one station drawn uniformly from outside the ring at the
// position minimising the insertion delta
//
//	dist(ring[p], s) + dist(s, ring[p+1]) - dist(ring[p], ring[p+1])
//
// (best-insertion heuristic; the wrap edge ring[m-1] -> ring[0] is a
// candidate too). No-op when the ring already holds every station.
//
// Complexity: O(n + m).
func AddNode(ind *Individual, o *metric.Oracle, rng *rand.Rand) {
	var (
		n    = o.N()
		m    = len(ind.Ring)
		mask = ind.membership(n)
	)

	// Collect outside stations.
	outside := make([]int, 0, n-m)
	var s int
	for s = 1; s <= n; s++ {
		if !mask[s] {
			outside = append(outside, s)
		}
	}
	if len(outside) == 0 {
		return
	}
	s = outside[rng.Intn(len(outside))]

	// Best insertion position: after index p.
	var (
		bestPos   = 0
		bestDelta = CostSentinel
		p         int
		prev, nxt int
		delta     float64
	)
	for p = 0; p < m; p++ {
		prev = ind.Ring[p]
		nxt = ind.Ring[(p+1)%m]
		delta = o.Dist(prev, s) + o.Dist(s, nxt) - o.Dist(prev, nxt)
		if delta < bestDelta {
			bestDelta = delta
			bestPos = p
		}
	}

	ind.Ring = append(ind.Ring, 0)
	copy(ind.Ring[bestPos+2:], ind.Ring[bestPos+1:])
	ind.Ring[bestPos+1] = s
	ind.Invalidate()
}

// RemoveNode deletes one uniformly chosen non-depot station, refusing to
// shrink the ring below its floor of three. The depot is never a candidate.
//
// Complexity: O(m).
func RemoveNode(ind *Individual, rng *rand.Rand) {
	m := len(ind.Ring)
	if m <= removeFloor {
		return
	}

	// Uniform among non-depot positions.
	var (
		idx = rng.Intn(m - 1)
		i   int
		pos = -1
	)
	for i = 0; i < m; i++ {
		if ind.Ring[i] == Depot {
			continue
		}
		if idx == 0 {
			pos = i
			break
		}
		idx--
	}
	if pos < 0 {
		return
	}

	ind.Ring = append(ind.Ring[:pos], ind.Ring[pos+1:]...)
	ind.Invalidate()
}

// SwapNodes exchanges the stations at two distinct uniform positions.
// No-op below two stations.
//
// Complexity: O(1).
func SwapNodes(ind *Individual, rng *rand.Rand) {
	m := len(ind.Ring)
	if m < 2 {
		return
	}

	a := rng.Intn(m)
	b := rng.Intn(m - 1)
	if b >= a {
		b++
	}

	ind.Ring[a], ind.Ring[b] = ind.Ring[b], ind.Ring[a]
	ind.Invalidate()
}

// InvertSegment reverses ring[a..b] for two uniform positions a <= b.
// No-op below two stations.
//
// Complexity: O(b-a).
func InvertSegment(ind *Individual, rng *rand.Rand) {
	m := len(ind.Ring)
	if m < 2 {
		return
	}

	a := rng.Intn(m)
	b := rng.Intn(m)
	if a > b {
		a, b = b, a
	}

	for a < b {
		ind.Ring[a], ind.Ring[b] = ind.Ring[b], ind.Ring[a]
		a++
		b--
	}
	ind.Invalidate()
}

// ScrambleSegment applies a Fisher-Yates shuffle to ring[a..b] for two
// uniform positions a <= b. No-op below two stations.
//
// Complexity: O(b-a).
func ScrambleSegment(ind *Individual, rng *rand.Rand) {
	m := len(ind.Ring)
	if m < 2 {
		return
	}

	a := rng.Intn(m)
	b := rng.Intn(m)
	if a > b {
		a, b = b, a
	}

	shuffleInts(ind.Ring[a:b+1], rng)
	ind.Invalidate()
}

// Mutate applies the operator bundle in its fixed order. Each operator
// fires independently: a uniform draw from 1..100 at or below the operator
// percentage triggers it.
//
// Complexity: bounded by AddNode's O(n + m).
func Mutate(ind *Individual, p Params, o *metric.Oracle, rng *rand.Rand) {
	if rng.Intn(100)+1 <= p.AddPct {
		AddNode(ind, o, rng)
	}
	if rng.Intn(100)+1 <= p.RemovePct {
		RemoveNode(ind, rng)
	}
	if rng.Intn(100)+1 <= p.SwapPct {
		SwapNodes(ind, rng)
	}
	if rng.Intn(100)+1 <= p.InvPct {
		InvertSegment(ind, rng)
	}
	if rng.Intn(100)+1 <= p.ScrPct {
		ScrambleSegment(ind, rng)
	}
}
