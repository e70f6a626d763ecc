// SPDX-License-Identifier: MIT

// Package metric - distance oracle construction and accessors.
package metric

import (
	"errors"
	"math"
	"sort"

	"github.com/katalvlaran/ringstar/dataset"
)

// Sentinel errors for oracle construction.
var (
	// ErrTooFewStations indicates fewer stations than the optimiser supports.
	ErrTooFewStations = errors.New("metric: fewer than three stations")

	// ErrNonConsecutiveIDs indicates station ids are not 1..N in order.
	ErrNonConsecutiveIDs = errors.New("metric: station ids not consecutive from 1")
)

// Oracle is the immutable distance/ranking table of one instance.
// Station ids are 1-based everywhere in the public API.
type Oracle struct {
	n    int       // station count
	dist []float64 // linearised n x n symmetric matrix, dist[i*n+j]
	rank [][]int   // rank[i] = ids of all stations by increasing dist from i+1
}

// NewOracle builds the dense distance matrix and the per-station neighbour
// rankings from a station table.
//
// Contract:
//   - stations has ids 1..N in order (the dataset reader guarantees this;
//     re-checked here so the oracle can be built from synthetic tables too).
//   - N >= dataset.MinStations.
//
// Complexity: O(N^2 log N) time, O(N^2) space.
func NewOracle(stations []dataset.Station) (*Oracle, error) {
	n := len(stations)
	if n < dataset.MinStations {
		return nil, ErrTooFewStations
	}

	var i, j int
	for i = 0; i < n; i++ {
		if stations[i].ID != i+1 {
			return nil, ErrNonConsecutiveIDs
		}
	}

	o := &Oracle{
		n:    n,
		dist: make([]float64, n*n),
		rank: make([][]int, n),
	}

	// Symmetric fill; the diagonal stays zero.
	var dx, dy, d float64
	for i = 0; i < n; i++ {
		for j = i + 1; j < n; j++ {
			dx = stations[i].X - stations[j].X
			dy = stations[i].Y - stations[j].Y
			d = math.Sqrt(dx*dx + dy*dy)
			o.dist[i*n+j] = d
			o.dist[j*n+i] = d
		}
	}

	// Per-row neighbour ranking: sort ids by (distance, id). The sort is over
	// a scratch id slice per row; ties break by ascending id so rankings are
	// a total order and fully deterministic.
	var row []float64
	for i = 0; i < n; i++ {
		row = o.dist[i*n : (i+1)*n]
		ids := make([]int, n)
		for j = 0; j < n; j++ {
			ids[j] = j + 1
		}
		sort.Slice(ids, func(a, b int) bool {
			da, db := row[ids[a]-1], row[ids[b]-1]
			if da != db {
				return da < db
			}
			return ids[a] < ids[b]
		})
		o.rank[i] = ids
	}

	return o, nil
}

// N returns the station count.
func (o *Oracle) N() int { return o.n }

// Dist returns the Euclidean distance between stations a and b (ids 1..N).
//
// Complexity: O(1).
func (o *Oracle) Dist(a, b int) float64 {
	return o.dist[(a-1)*o.n+(b-1)]
}

// Rank returns all station ids ordered by increasing distance from s
// (s itself first, distance zero). The slice is shared internal state and
// must not be modified by the caller.
//
// Complexity: O(1).
func (o *Oracle) Rank(s int) []int {
	return o.rank[s-1]
}

// Row returns the linearised distance row of station s (index j holds the
// distance to station j+1). Shared internal state; read-only for callers.
// It lets a loop over one row avoid the index arithmetic of repeated Dist
// calls.
//
// Complexity: O(1).
func (o *Oracle) Row(s int) []float64 {
	return o.dist[(s-1)*o.n : s*o.n]
}
