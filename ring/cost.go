// Package ring - cost kernel.
//
// Two stateless functions over an Individual and the distance oracle, plus
// the memoising species-level evaluation.
//
// Design:
//   - Allocation-conscious: one membership bitset per out-of-ring call, no
//     other allocations; ranking lists are scanned, never copied.
//   - Deterministic: no RNG anywhere in the kernel.
//   - Stable: totals are rounded to 1e-9 (round1e9).
//
// Complexity:
//   - RingCost:      O(m).
//   - OutOfRingCost: O(N * r) where r is the average ranking prefix scanned
//     until a ring member is hit (short for dense rings).
//   - TotalCost:     sum of the above.
package ring

import "github.com/katalvlaran/ringstar/metric"

// RingCost returns alpha times the closed ring length of ind. Rings of
// length <= 1 cost zero.
func RingCost(alpha int, ind *Individual, o *metric.Oracle) float64 {
	m := len(ind.Ring)
	if m <= 1 {
		return 0
	}

	var (
		sum  float64
		k    int
		a, b int
	)
	for k = 0; k < m; k++ {
		a = ind.Ring[k]
		b = ind.Ring[(k+1)%m]
		sum += o.Dist(a, b)
	}

	return float64(alpha) * sum
}

// OutOfRingCost returns (assignWeightBase - alpha) times the summed distance
// from every station outside the ring to its nearest ring member.
//
// Policy: build the ring membership bitset once, then walk each outside
// station's precomputed ranking until the first ring member. For a fully
// populated ring the result is zero; for a depot-only ring it is the summed
// distance of all stations to the depot, weighted.
func OutOfRingCost(alpha int, ind *Individual, o *metric.Oracle) float64 {
	var (
		n    = o.N()
		mask = ind.membership(n)
		sum  float64
		s    int
		cand int
	)
	for s = 1; s <= n; s++ {
		if mask[s] {
			continue
		}
		// rank starts with s itself (distance zero); s is not a member, so
		// the scan naturally skips it.
		for _, cand = range o.Rank(s) {
			if mask[cand] {
				sum += o.Dist(s, cand)
				break
			}
		}
	}

	return (assignWeightBase - float64(alpha)) * sum
}

// TotalCost evaluates ind from scratch (ignores the cache) and returns the
// stabilised ring + assignment cost.
func TotalCost(alpha int, ind *Individual, o *metric.Oracle) float64 {
	return round1e9(RingCost(alpha, ind, o) + OutOfRingCost(alpha, ind, o))
}

// Evaluate fills a cost vector for the species, reusing cached values where
// present and memoising fresh evaluations.
//
// There is no ordering requirement among individuals; this serial schedule
// is the per-species contract.
//
// Complexity: O(P) cache hits + O(cost kernel) per miss.
func (sp Species) Evaluate(alpha int, o *metric.Oracle) []float64 {
	costs := make([]float64, len(sp))

	var i int
	for i = 0; i < len(sp); i++ {
		if sp[i].Cached() {
			costs[i] = sp[i].CachedCost
			continue
		}
		costs[i] = TotalCost(alpha, sp[i], o)
		sp[i].CachedCost = costs[i]
	}

	return costs
}

// BestIndex returns the index of the smallest cost, first occurrence on
// ties. Returns -1 for an empty vector.
//
// Complexity: O(P).
func BestIndex(costs []float64) int {
	if len(costs) == 0 {
		return -1
	}

	var (
		best = 0
		i    int
	)
	for i = 1; i < len(costs); i++ {
		if costs[i] < costs[best] {
			best = i
		}
	}

	return best
}
