// Package ring - one generation of one species.
package ring

import (
	"sort"

	"github.com/katalvlaran/ringstar/metric"
)

// Task bundles everything one worker needs to evolve one species for one
// generation: shared read-only oracle, exclusive species, the parameter
// record, and the task's own RNG seed. Lifetime: one generation.
type Task struct {
	// Oracle is shared immutably across all workers.
	Oracle *metric.Oracle

	// Species is mutably owned by exactly one worker while the task runs.
	Species Species

	// Params is the generation's parameter record.
	Params Params

	// Seed drives this task's private RNG stream (see TaskSeed).
	Seed int64
}

// sweepDivisor scales the bounded 2-opt budget with offspring ring length:
// maxSweeps = 1 + m/sweepDivisor.
const sweepDivisor = 8

// EvolveSpecie advances one species by one generation:
//
//  1. Evaluate all individuals (cached where possible).
//  2. Sort indices by ascending cost.
//  3. Elitism: copy the best e = min(Elitism, P) unchanged, cache intact.
//  4. Mating pool: the top clamp(floor(PoolFraction*P), 2, P) indices.
//  5. Breed until the new species reaches P: two uniform parents from the
//     pool (with replacement), slice crossover, mutation bundle when the
//     child clones its first parent or the mutation-rate draw fires,
//     bounded 2-opt, evaluation.
//  6. Replace the old individuals in place.
//
// All sub-steps are total: there are no recoverable errors inside a
// generation. The returned error only reports precondition violations
// (empty species, bad params) before any work happens.
//
// Complexity: O(P * (cost kernel + m^2)) per generation.
func EvolveSpecie(t Task) error {
	if len(t.Species) == 0 {
		return ErrEmptySpecies
	}
	if err := t.Params.Validate(); err != nil {
		return err
	}

	var (
		sp    = t.Species
		p     = len(sp)
		alpha = t.Params.Alpha
		rng   = NewRand(t.Seed)
	)

	// 1) Evaluate.
	costs := sp.Evaluate(alpha, t.Oracle)

	// 2) Sort an index permutation by ascending cost; ties break by index
	// so the order is deterministic.
	order := make([]int, p)
	var i int
	for i = 0; i < p; i++ {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return costs[order[a]] < costs[order[b]]
	})

	// 3) Elitism.
	elite := t.Params.Elitism
	if elite > p {
		elite = p
	}
	next := make(Species, 0, p)
	for i = 0; i < elite; i++ {
		next = append(next, sp[order[i]].Clone())
	}

	// 4) Mating pool.
	poolSize := int(t.Params.PoolFraction * float64(p))
	if poolSize < 2 {
		poolSize = 2
	}
	if poolSize > p {
		poolSize = p
	}
	pool := order[:poolSize]

	// 5) Breed.
	var (
		p1, p2 *Individual
		child  *Individual
	)
	for len(next) < p {
		p1 = sp[pool[rng.Intn(poolSize)]]
		p2 = sp[pool[rng.Intn(poolSize)]]

		child = SliceCrossover(p1, p2, t.Oracle.N(), rng)

		if child.EqualRing(p1) || rng.Float64() < t.Params.MutationRate {
			Mutate(child, t.Params, t.Oracle, rng)
		}
		if len(child.Ring) >= 3 {
			BoundedTwoOpt(child, t.Oracle, 1+len(child.Ring)/sweepDivisor)
		}
		child.CachedCost = TotalCost(alpha, child, t.Oracle)

		next = append(next, child)
	}

	// 6) Replace in place; no inter-species communication happens here.
	copy(sp, next)

	return nil
}
