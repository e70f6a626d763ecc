// Package pool - fixed worker pool with atomic index claim and a
// per-round completion barrier.
package pool

import (
	"errors"
	"sync/atomic"
)

// Sentinel errors.
var (
	// ErrNoWorkers indicates a pool was requested with fewer than one worker.
	ErrNoWorkers = errors.New("pool: worker count must be positive")

	// ErrClosed indicates Run was called on a closed pool.
	ErrClosed = errors.New("pool: closed")
)

// round is the state of one Run call. Each round is a fresh value, so a
// worker that drains an old round can never claim indices of the next one.
type round struct {
	tasks []func()
	next  atomic.Int64 // next unclaimed task index
	done  atomic.Int64 // completed task count
}

// Pool is a fixed set of worker goroutines consuming one task array per
// Run call. Run must be called from a single goroutine (the orchestrator)
// and never concurrently.
type Pool struct {
	workers int

	current atomic.Pointer[round]

	wake    chan struct{} // one token per worker per round
	barrier chan struct{} // signalled by the worker finishing the last task
	stop    chan struct{} // closed by Close
	closed  atomic.Bool
}

// New starts a pool of workers goroutines.
//
// Complexity: O(workers) goroutine start-up; O(1) afterwards.
func New(workers int) (*Pool, error) {
	if workers <= 0 {
		return nil, ErrNoWorkers
	}

	p := &Pool{
		workers: workers,
		wake:    make(chan struct{}, workers),
		barrier: make(chan struct{}, 1),
		stop:    make(chan struct{}),
	}

	var i int
	for i = 0; i < workers; i++ {
		go p.worker()
	}

	return p, nil
}

// Workers returns the pool size.
func (p *Pool) Workers() int { return p.workers }

// Run publishes tasks and blocks until every task has completed. Tasks must
// be independent of each other; each runs exactly once on exactly one
// worker. A nil or empty array returns immediately.
func (p *Pool) Run(tasks []func()) error {
	if p.closed.Load() {
		return ErrClosed
	}
	if len(tasks) == 0 {
		return nil
	}

	// Publish the round, then wake every worker. The pointer store happens
	// before the token sends, so receivers observe the full task array.
	p.current.Store(&round{tasks: tasks})

	var i int
	for i = 0; i < p.workers; i++ {
		p.wake <- struct{}{}
	}

	<-p.barrier

	return nil
}

// Close shuts the pool down. Workers exit on their next poll; outstanding
// Run calls must have returned before Close is invoked.
func (p *Pool) Close() {
	if p.closed.CompareAndSwap(false, true) {
		close(p.stop)
	}
}

// worker is the body of each pool goroutine: wait for a wake token, drain
// claimable indices of the current round, signal the barrier after the
// final completion. Leftover tokens from an already-drained round wake a
// worker into an empty claim loop, which is harmless.
func (p *Pool) worker() {
	var (
		r     *round
		idx   int64
		total int64
	)
	for {
		select {
		case <-p.stop:
			return
		case <-p.wake:
		}

		r = p.current.Load()
		if r == nil {
			continue
		}
		total = int64(len(r.tasks))
		for {
			idx = r.next.Add(1) - 1
			if idx >= total {
				break
			}
			r.tasks[idx]()
			if r.done.Add(1) == total {
				p.barrier <- struct{}{}
			}
		}
	}
}
