// SPDX-License-Identifier: MIT

// Package metric precomputes the immutable geometry of a ring-star instance.
//
// # What & Why
//
// Every hot path of the optimiser (cost kernel, 2-opt, best-insertion) asks
// two questions about the plane:
//
//	Dist(a, b)  - Euclidean distance between stations a and b,
//	Rank(s)     - all stations ordered by increasing distance from s.
//
// Both are answered from buffers built once at start-up:
//
//   - dist: a dense, linearised N x N matrix (row-major, w[i*n+j]), the same
//     cache-friendly layout the 2-opt engine wants to scan.
//   - rank: per-station neighbour lists, ties broken by ascending id, used as
//     precomputed nearest-neighbour orderings when assigning stations that
//     lie outside the ring.
//
// # Ownership & Concurrency
//
// An Oracle is immutable after NewOracle returns and is shared by reference
// across all worker goroutines for the whole run. Accessors take station ids
// (1..N) and perform no bounds checks beyond the slice's own; passing an id
// outside 1..N is a programmer error.
//
// # Complexity
//
//	NewOracle: O(N^2 log N) time (ranking sort dominates), O(N^2) space.
//	Dist, N:   O(1).  Rank: O(1) (returns an internal read-only slice).
package metric
