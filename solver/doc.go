// Package solver orchestrates the parallel island-model run: population
// seeding, the wall-clock-bounded generation loop over the worker pool,
// the cross-species diversity controller, adaptive mutation under
// stagnation, progress reporting, and final solution extraction.
//
// # Lifecycle
//
//	s, err := solver.New(stations, cfg, logger)
//	res, err := s.Run()
//
// New validates the configuration, builds the distance oracle, seeds
// SpeciesCount species of PopulationSize random rings each, and improves
// every SeedStride-th species with exhaustive 2-opt (the untouched majority
// is the initial diversity). Run then repeats, until the time budget is
// spent or the stagnation limit trips:
//
//   - build one task per species, seeded per (generation, species),
//   - dispatch the task array to the fixed worker pool and wait for the
//     barrier (Workers == 0 evolves serially on the calling goroutine
//     with identical per-species trajectories),
//   - every LogInterval generations: evaluate, report, adapt the mutation
//     rate, record convergence history,
//   - every ten generations: run the diversity controller, re-seeding at
//     most one of any pair of converged-and-stalled species.
//
// All mutable run state (global best, stagnation counters, diversity
// vectors) belongs to the orchestrator goroutine and is only touched
// between barriers; the oracle and station table are shared read-only.
//
// # Determinism
//
// A fixed Seed fixes the seeding and every task stream, so each species'
// trajectory is identical for any worker count; only which generation the
// clock cuts off can differ between machines.
package solver
