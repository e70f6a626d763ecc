// Package ring - candidate rings and species.
package ring

// Individual is one candidate solution: an ordered ring of distinct station
// ids (1..N, depot included) plus a memoised cost. The sequence is cyclic:
// Ring[m-1] connects back to Ring[0]; no closing duplicate is stored.
type Individual struct {
	// Ring is the tour order. Owned by this Individual; never aliased
	// across individuals.
	Ring []int

	// CachedCost is the last evaluated total cost, or CostSentinel when the
	// ring changed since the last evaluation.
	CachedCost float64
}

// NewIndividual wraps ring (taking ownership) with a stale cost cache.
func NewIndividual(ring []int) *Individual {
	return &Individual{Ring: ring, CachedCost: CostSentinel}
}

// Len returns the ring length.
func (ind *Individual) Len() int { return len(ind.Ring) }

// Cached reports whether CachedCost holds a real evaluation.
func (ind *Individual) Cached() bool { return ind.CachedCost != CostSentinel }

// Invalidate marks the cached cost stale. Every structural operator calls
// this after modifying the ring.
func (ind *Individual) Invalidate() { ind.CachedCost = CostSentinel }

// Clone returns a deep copy (own ring storage, same cached cost).
//
// Complexity: O(m).
func (ind *Individual) Clone() *Individual {
	ring := make([]int, len(ind.Ring))
	copy(ring, ind.Ring)

	return &Individual{Ring: ring, CachedCost: ind.CachedCost}
}

// EqualRing reports whether both individuals hold the identical sequence
// (same ids in the same positions; rotations count as different).
//
// Complexity: O(m).
func (ind *Individual) EqualRing(other *Individual) bool {
	if len(ind.Ring) != len(other.Ring) {
		return false
	}

	var i int
	for i = 0; i < len(ind.Ring); i++ {
		if ind.Ring[i] != other.Ring[i] {
			return false
		}
	}

	return true
}

// Validate enforces the Individual invariants against an instance of n
// stations: length >= MinRingLen, ids within 1..n, all distinct, depot
// present.
//
// Complexity: O(m) time, O(n) space.
func (ind *Individual) Validate(n int) error {
	if len(ind.Ring) < MinRingLen {
		return ErrRingTooShort
	}

	var (
		seen     = make([]bool, n+1)
		hasDepot bool
		id       int
	)
	for _, id = range ind.Ring {
		if id < 1 || id > n {
			return ErrStationOutOfRange
		}
		if seen[id] {
			return ErrDuplicateStation
		}
		seen[id] = true
		if id == Depot {
			hasDepot = true
		}
	}
	if !hasDepot {
		return ErrDepotMissing
	}

	return nil
}

// membership builds the ring-membership bitset over ids 0..n (index by id).
// The out-of-ring kernel and the operators share this helper.
//
// Complexity: O(n + m).
func (ind *Individual) membership(n int) []bool {
	mask := make([]bool, n+1)

	var id int
	for _, id = range ind.Ring {
		mask[id] = true
	}

	return mask
}

// Species is one island: a fixed-size ordered collection of individuals,
// exclusively owned by a single worker during a generation.
type Species []*Individual

// Clone returns a deep copy of the species (fresh individuals and rings).
//
// Complexity: O(P * m).
func (sp Species) Clone() Species {
	out := make(Species, len(sp))

	var i int
	for i = 0; i < len(sp); i++ {
		out[i] = sp[i].Clone()
	}

	return out
}
