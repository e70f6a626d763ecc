// Package ring implements the core of a memetic optimiser for the Ring
// Star Problem: pick a cyclic subset of stations (the ring, depot pinned)
// and assign every other station to its nearest ring member, minimising
//
//	cost(R) = alpha * (ring edge length) + (10 - alpha) * (assignment length)
//
// under a wall-clock budget. The package holds the pieces that run inside
// worker goroutines every generation:
//
//   - Individual / Species: one candidate ring with a cached cost, and the
//     fixed-size sub-population a worker owns for a generation.
//   - Cost kernel: ring cost plus out-of-ring assignment cost, evaluated
//     against a metric.Oracle, memoised per Individual.
//   - Slice crossover: variable-length child from two parent rings, depot
//     and uniqueness preserved.
//   - Five structural mutations: best-insertion add, remove (depot kept),
//     swap, inversion, scramble.
//   - 2-opt local search: exhaustive (restart on first improvement, run to a
//     local optimum) and bounded (a capped number of full sweeps).
//   - EvolveSpecie: one generation - evaluate, sort, elitism, breed with
//     crossover + mutation + bounded 2-opt, replace.
//
// # Determinism & Stability
//
//   - No time-based randomness. Every EvolveSpecie task carries its own seed
//     (TaskSeed mixes master seed, generation, species index), so a species'
//     trajectory does not depend on worker count or scheduling.
//   - Costs are rounded to 1e-9 (round1e9) to avoid cross-platform FP drift.
//   - 2-opt accepts a move iff delta < -DefaultEps.
//
// # Invariants
//
// After every operator and every generation, each Individual satisfies:
// all ring ids distinct, ids within 1..N, depot present, length >= 2; and a
// non-sentinel CachedCost equals the true cost under the current alpha and
// oracle.
//
// # Errors
//
// Strict sentinels only (ErrRingTooShort, ErrDepotMissing, ...); matched
// with errors.Is. Hot paths return no errors: preconditions are validated
// at the boundary and violations are programmer errors.
package ring
