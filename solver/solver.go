// Package solver - orchestrator: seeding, generation loop, reporting,
// final extraction.
package solver

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/ringstar/dataset"
	"github.com/katalvlaran/ringstar/metric"
	"github.com/katalvlaran/ringstar/pool"
	"github.com/katalvlaran/ringstar/ring"
	"github.com/katalvlaran/ringstar/solution"
)

// ErrAlreadyRun indicates a second Run call on the same Solver.
var ErrAlreadyRun = errors.New("solver: run already consumed")

// svgStagnationThreshold is the report-stagnation count above which the
// one-off SVG snapshot is written.
const svgStagnationThreshold = 5

// Result is the outcome of a finished run.
type Result struct {
	// Best is the cheapest individual observed, cloned out of the
	// population.
	Best *ring.Individual

	// Cost is Best's total cost under the run's alpha.
	Cost float64

	// Generations is the number of completed generations.
	Generations int

	// Elapsed is the wall-clock duration of the generation loop.
	Elapsed time.Duration

	// History holds one convergence point per report interval plus the
	// final evaluation.
	History []solution.ProgressPoint

	// RunID tags logs and report artefacts of this run.
	RunID string

	// SolutionPath, SVGPath and ChartPath are the written artefacts
	// (empty when disabled).
	SolutionPath string
	SVGPath      string
	ChartPath    string
}

// Solver owns the population and all between-barrier run state.
type Solver struct {
	cfg      Config
	log      zerolog.Logger
	runID    string
	stations []dataset.Station
	oracle   *metric.Oracle

	population []ring.Species
	workers    *pool.Pool // nil in serial mode

	// Orchestrator-only mutable state; touched between barriers.
	mutationRate float64
	globalBest   *ring.Individual
	globalCost   float64
	stagnation   int
	svgPath      string
	history      []solution.ProgressPoint

	// Diversity controller tracking, one entry per species.
	divBest     []float64
	divStagnant []int

	consumed bool
}

// New validates cfg, builds the oracle, seeds the population, applies the
// exhaustive 2-opt seeding pass, and starts the worker pool.
//
// Complexity: O(N^2 log N) oracle + O(S*P*N) seeding + the 2-opt pass on
// S/SeedStride species.
func New(stations []dataset.Station, cfg Config, log zerolog.Logger) (*Solver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	oracle, err := metric.NewOracle(stations)
	if err != nil {
		return nil, err
	}

	s := &Solver{
		cfg:          cfg,
		log:          log,
		runID:        uuid.NewString(),
		stations:     stations,
		oracle:       oracle,
		mutationRate: cfg.BaseMutationRate,
		globalCost:   ring.CostSentinel,
		divBest:      make([]float64, cfg.SpeciesCount),
		divStagnant:  make([]int, cfg.SpeciesCount),
	}

	var i int
	for i = 0; i < cfg.SpeciesCount; i++ {
		s.divBest[i] = ring.CostSentinel
	}

	s.seedPopulation()
	if err = s.improveSeeds(); err != nil {
		return nil, err
	}

	if w := cfg.workers(); w > 0 {
		if s.workers, err = pool.New(w); err != nil {
			return nil, err
		}
	}

	s.log.Info().
		Str("run_id", s.runID).
		Int("stations", oracle.N()).
		Int("alpha", cfg.Alpha).
		Int("species", cfg.SpeciesCount).
		Int("population", cfg.PopulationSize).
		Int("workers", cfg.workers()).
		Dur("time_limit", cfg.TimeLimit).
		Msg("solver initialised")

	return s, nil
}

// seedPopulation fills S species with P random rings each. A single master
// stream drives the draws, so seeding is identical for any worker count.
func (s *Solver) seedPopulation() {
	rng := ring.NewRand(s.cfg.Seed)

	s.population = make([]ring.Species, s.cfg.SpeciesCount)
	var sp, i int
	for sp = 0; sp < s.cfg.SpeciesCount; sp++ {
		species := make(ring.Species, s.cfg.PopulationSize)
		for i = 0; i < s.cfg.PopulationSize; i++ {
			species[i] = ring.NewIndividual(ring.RandomRing(s.oracle.N(), rng))
		}
		s.population[sp] = species
	}
}

// improveSeeds runs exhaustive 2-opt over every individual of every
// SeedStride-th species. The remaining species stay raw on purpose: they
// are the initial diversity. The pass fans out one goroutine per selected
// species; 2-opt consumes no randomness, so the result is deterministic.
func (s *Solver) improveSeeds() error {
	g := new(errgroup.Group)
	if w := s.cfg.workers(); w > 0 {
		g.SetLimit(w)
	} else {
		g.SetLimit(1)
	}

	var sp int
	for sp = 0; sp < s.cfg.SpeciesCount; sp += s.cfg.SeedStride {
		species := s.population[sp]
		g.Go(func() error {
			var i int
			for i = 0; i < len(species); i++ {
				ring.ExhaustiveTwoOpt(species[i], s.oracle)
			}
			return nil
		})
	}

	return g.Wait()
}

// Run executes the generation loop until the budget is spent or the
// stagnation limit trips, then extracts and writes the final solution.
// A Solver is single-use.
func (s *Solver) Run() (Result, error) {
	if s.consumed {
		return Result{}, ErrAlreadyRun
	}
	s.consumed = true
	if s.workers != nil {
		defer s.workers.Close()
	}

	var (
		start = time.Now()
		gen   int
	)
	for time.Since(start) < s.cfg.TimeLimit {
		gen++
		s.runGeneration(gen)

		if gen%s.cfg.LogInterval == 0 {
			s.report(gen, start)
			if s.stagnation >= s.cfg.StagnationLimit {
				s.log.Info().Int("generation", gen).Msg("stagnation limit reached, stopping early")
				break
			}
		}
		if gen%diversityInterval == 0 {
			s.diversityCheck(gen)
		}
	}

	return s.finish(gen, time.Since(start))
}

// runGeneration builds the per-species task array and runs it to the
// barrier, on the pool or serially.
func (s *Solver) runGeneration(gen int) {
	params := s.cfg.params(s.mutationRate)

	if s.workers == nil {
		var sp int
		for sp = 0; sp < len(s.population); sp++ {
			s.evolveOne(gen, sp, params)
		}
		return
	}

	tasks := make([]func(), len(s.population))
	var sp int
	for sp = 0; sp < len(s.population); sp++ {
		sp := sp
		tasks[sp] = func() { s.evolveOne(gen, sp, params) }
	}
	// Run blocks until every species finished: the generation barrier.
	_ = s.workers.Run(tasks)
}

// evolveOne advances one species by one generation with its own seed.
// EvolveSpecie is total under a validated configuration; a non-nil error
// here is an invariant violation, so it aborts the run.
func (s *Solver) evolveOne(gen, sp int, params ring.Params) {
	task := ring.Task{
		Oracle:  s.oracle,
		Species: s.population[sp],
		Params:  params,
		Seed:    ring.TaskSeed(s.cfg.Seed, gen, sp),
	}
	if err := ring.EvolveSpecie(task); err != nil {
		s.log.Panic().Err(err).Int("species", sp).Int("generation", gen).Msg("evolve invariant violation")
	}
}

// evaluateAll returns the per-species best costs and the overall champion.
// Evaluation fans out across species; each goroutine owns one species'
// caches exclusively, mirroring the per-generation ownership rule.
func (s *Solver) evaluateAll() (bests []float64, champion *ring.Individual, cost float64) {
	var (
		n     = len(s.population)
		idx   = make([]int, n)
		g     = new(errgroup.Group)
		limit = s.cfg.workers()
	)
	bests = make([]float64, n)
	if limit < 1 {
		limit = 1
	}
	g.SetLimit(limit)

	var sp int
	for sp = 0; sp < n; sp++ {
		sp := sp
		g.Go(func() error {
			costs := s.population[sp].Evaluate(s.cfg.Alpha, s.oracle)
			best := ring.BestIndex(costs)
			bests[sp] = costs[best]
			idx[sp] = best
			return nil
		})
	}
	_ = g.Wait() // the closures never fail

	cost = ring.CostSentinel
	var bestSp int
	for sp = 0; sp < n; sp++ {
		if bests[sp] < cost {
			cost = bests[sp]
			bestSp = sp
		}
	}
	champion = s.population[bestSp][idx[bestSp]]

	return bests, champion, cost
}

// report evaluates the whole population, logs the interval summary, applies
// the adaptive mutation rules, and emits the one-off stagnation SVG.
func (s *Solver) report(gen int, start time.Time) {
	bests, champion, cost := s.evaluateAll()

	improved := cost < s.globalCost
	if improved {
		s.globalBest = champion.Clone()
		s.globalCost = cost
	}
	s.adaptMutation(improved)

	elapsed := time.Since(start)
	s.history = append(s.history, solution.ProgressPoint{
		Generation: gen,
		Elapsed:    elapsed,
		BestCost:   s.globalCost,
	})

	s.log.Info().
		Str("run_id", s.runID).
		Int("generation", gen).
		Float64("global_best", s.globalCost).
		Floats64("top_species", topK(bests, reportTopK)).
		Float64("mutation_rate", s.mutationRate).
		Int("stagnation", s.stagnation).
		Dur("elapsed", elapsed).
		Dur("remaining", s.cfg.TimeLimit-elapsed).
		Msg("report")

	if s.svgPath == "" && s.stagnation > svgStagnationThreshold && s.cfg.ImagesDir != "" {
		path, err := solution.RingSVGFile(s.cfg.ImagesDir, s.summary(), gen)
		if err != nil {
			s.log.Warn().Err(err).Msg("stagnation snapshot failed")
			return
		}
		s.svgPath = path
		s.log.Info().Str("path", path).Msg("stagnation snapshot written")
	}
}

// adaptMutation implements the stagnation-tiered mutation schedule: reset
// to the base rate on strict improvement; on every fifth consecutive
// stagnant report, inflate by a tier factor under a tier cap.
func (s *Solver) adaptMutation(improved bool) {
	if improved {
		s.stagnation = 0
		s.mutationRate = s.cfg.BaseMutationRate
		return
	}

	s.stagnation++
	if s.stagnation%5 != 0 {
		return
	}

	var factor, ceiling float64
	switch {
	case s.stagnation <= 10:
		factor, ceiling = 1.20, 0.50
	case s.stagnation <= 20:
		factor, ceiling = 1.15, 0.70
	default:
		factor, ceiling = 1.10, 0.90
	}

	s.mutationRate *= factor
	if s.mutationRate > ceiling {
		s.mutationRate = ceiling
	}
}

// finish performs the final evaluation, writes the artefacts, and builds
// the Result.
func (s *Solver) finish(gen int, elapsed time.Duration) (Result, error) {
	_, champion, cost := s.evaluateAll()
	if s.globalBest == nil || cost < s.globalCost {
		s.globalBest = champion.Clone()
		s.globalCost = cost
	}
	s.history = append(s.history, solution.ProgressPoint{
		Generation: gen,
		Elapsed:    elapsed,
		BestCost:   s.globalCost,
	})

	res := Result{
		Best:        s.globalBest,
		Cost:        s.globalCost,
		Generations: gen,
		Elapsed:     elapsed,
		History:     s.history,
		RunID:       s.runID,
		SVGPath:     s.svgPath,
	}

	if s.cfg.OutputPath != "" {
		if err := solution.WriteFile(s.cfg.OutputPath, s.summary()); err != nil {
			return res, err
		}
		res.SolutionPath = s.cfg.OutputPath
	}
	if s.cfg.ImagesDir != "" {
		path, err := solution.ConvergenceHTMLFile(s.cfg.ImagesDir, s.runID, s.history)
		if err != nil {
			return res, err
		}
		res.ChartPath = path
	}

	s.log.Info().
		Str("run_id", s.runID).
		Int("generations", gen).
		Float64("best_cost", s.globalCost).
		Int("ring_len", len(s.globalBest.Ring)).
		Dur("elapsed", elapsed).
		Msg("run finished")

	return res, nil
}

// summary snapshots the current best for the writers.
func (s *Solver) summary() solution.Summary {
	return solution.Summary{
		Stations: s.stations,
		Oracle:   s.oracle,
		Best:     s.globalBest,
		Alpha:    s.cfg.Alpha,
		Cost:     s.globalCost,
	}
}

// topK returns the k smallest costs in ascending order (k capped at len).
func topK(costs []float64, k int) []float64 {
	out := append([]float64(nil), costs...)
	// Small k over small S: selection pass beats a full sort only
	// marginally, but keeps the result allocation-free beyond the copy.
	var i, j, min int
	if k > len(out) {
		k = len(out)
	}
	for i = 0; i < k; i++ {
		min = i
		for j = i + 1; j < len(out); j++ {
			if out[j] < out[min] {
				min = j
			}
		}
		out[i], out[min] = out[min], out[i]
	}

	return out[:k]
}
