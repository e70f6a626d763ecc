// Package ring - 2-opt local search on candidate rings.
//
// A 2-opt move at indices (i, j), 0 <= i < j < m, replaces the ring edges
// (r[i], r[i+1]) and (r[j], r[(j+1) mod m]) with (r[i], r[j]) and
// (r[i+1], r[(j+1) mod m]) by reversing r[i+1..j] in place. Its delta is
//
//	dist(r[i], r[j]) + dist(r[i+1], r[(j+1) mod m])
//	  - dist(r[i], r[i+1]) - dist(r[j], r[(j+1) mod m])
//
// and a move is applied iff delta < -DefaultEps. Only ring edge weights
// enter the decision, so the alpha factor cancels: 2-opt improves the total
// cost for every alpha, and it can never change ring membership, so the
// depot and distinctness invariants are preserved automatically.
//
// Two strategies:
//
//   - ExhaustiveTwoOpt: first-improvement with a restart of the outer scan
//     after every accepted move; terminates at a local optimum (no sweep
//     finds an improving move). Used once on a fraction of the freshly
//     seeded population.
//   - BoundedTwoOpt: at most maxSweeps full first-improvement sweeps, each
//     applying every improving move it encounters in scan order. Used on
//     every offspring to cap per-generation cost.
//
// Both set the cost cache stale on any modification.
//
// Complexity: O(m^2) candidate checks per sweep; O(m) per accepted move.
package ring

import "github.com/katalvlaran/ringstar/metric"

// ExhaustiveTwoOpt runs first-improvement 2-opt to a local fixed point and
// returns the number of applied moves. Rings of length <= 3 are left alone.
func ExhaustiveTwoOpt(ind *Individual, o *metric.Oracle) int {
	if len(ind.Ring) <= 3 {
		return 0
	}

	var applied int
	for twoOptFirstMove(ind.Ring, o) {
		applied++
	}
	if applied > 0 {
		ind.Invalidate()
	}

	return applied
}

// BoundedTwoOpt runs at most maxSweeps full first-improvement sweeps and
// returns the number of applied moves. A sweep that applies nothing ends
// the search early. Rings of length <= 3 are left alone.
func BoundedTwoOpt(ind *Individual, o *metric.Oracle, maxSweeps int) int {
	if len(ind.Ring) <= 3 || maxSweeps <= 0 {
		return 0
	}

	var (
		applied int
		sweep   int
		moved   int
	)
	for sweep = 0; sweep < maxSweeps; sweep++ {
		moved = twoOptSweep(ind.Ring, o)
		if moved == 0 {
			break
		}
		applied += moved
	}
	if applied > 0 {
		ind.Invalidate()
	}

	return applied
}

// twoOptFirstMove scans all candidate pairs in canonical order and applies
// the first improving move. Reports whether a move was applied.
func twoOptFirstMove(ring []int, o *metric.Oracle) bool {
	var (
		m          = len(ring)
		i, j       int
		a, b, c, d int
		delta      float64
	)
	for i = 0; i < m-1; i++ {
		// j == i+1 shares a vertex with edge (i, i+1); the move is the
		// identity there, so start at i+2.
		for j = i + 2; j < m; j++ {
			a = ring[i]
			b = ring[i+1]
			c = ring[j]
			d = ring[(j+1)%m]

			delta = o.Dist(a, c) + o.Dist(b, d) - o.Dist(a, b) - o.Dist(c, d)
			if delta < -DefaultEps {
				reverseSegment(ring, i+1, j)
				return true
			}
		}
	}

	return false
}

// twoOptSweep makes one full pass over all candidate pairs, applying every
// improving move as it is encountered (the scan continues on the modified
// ring). Returns the number of applied moves.
func twoOptSweep(ring []int, o *metric.Oracle) int {
	var (
		m          = len(ring)
		moves      int
		i, j       int
		a, b, c, d int
		delta      float64
	)
	for i = 0; i < m-1; i++ {
		for j = i + 2; j < m; j++ {
			a = ring[i]
			b = ring[i+1]
			c = ring[j]
			d = ring[(j+1)%m]

			delta = o.Dist(a, c) + o.Dist(b, d) - o.Dist(a, b) - o.Dist(c, d)
			if delta < -DefaultEps {
				reverseSegment(ring, i+1, j)
				moves++
			}
		}
	}

	return moves
}

// reverseSegment reverses ring[a..b] in place (inclusive bounds).
//
// Complexity: O(b-a) time, O(1) space.
func reverseSegment(ring []int, a, b int) {
	for a < b {
		ring[a], ring[b] = ring[b], ring[a]
		a++
		b--
	}
}

// HasImprovingMove reports whether any 2-opt move would still improve the
// ring. One full sweep without modification; used to check the fixed-point
// property of the exhaustive strategy.
//
// Complexity: O(m^2).
func HasImprovingMove(ind *Individual, o *metric.Oracle) bool {
	var (
		ring       = ind.Ring
		m          = len(ring)
		i, j       int
		a, b, c, d int
		delta      float64
	)
	if m <= 3 {
		return false
	}
	for i = 0; i < m-1; i++ {
		for j = i + 2; j < m; j++ {
			a = ring[i]
			b = ring[i+1]
			c = ring[j]
			d = ring[(j+1)%m]

			delta = o.Dist(a, c) + o.Dist(b, d) - o.Dist(a, b) - o.Dist(c, d)
			if delta < -DefaultEps {
				return true
			}
		}
	}

	return false
}
