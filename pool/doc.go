// Package pool runs per-generation task arrays on a fixed set of workers.
//
// # Scheduling model
//
// A Pool owns W goroutines created once. Each Run call publishes a task
// array; workers claim indices through a single atomic counter, so every
// index is processed by exactly one worker exactly once, in whatever order
// the scheduler produces. Run blocks until the last task completes (the
// per-generation barrier), so the caller never observes a half-finished
// round.
//
// # Ordering guarantees
//
//   - Within one Run: none across tasks (tasks must be independent).
//   - Across Run calls: total order; a round finishes before the next
//     one starts, because Run itself is the barrier.
//
// # Shutdown
//
// Close raises a flag; workers drain out on their next wake-up. The pool is
// torn down once at process exit. Run after Close is a programmer error.
//
// No locks sit on the critical path: the task array is partitioned by the
// atomic claim counter, the wake-up token channel only synchronises round
// boundaries.
package pool
