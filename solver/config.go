// Package solver - run configuration.
package solver

import (
	"errors"
	"runtime"
	"time"

	"github.com/katalvlaran/ringstar/ring"
	"github.com/katalvlaran/ringstar/solution"
)

// Sentinel errors for configuration validation. Input errors surface before
// any worker starts.
var (
	// ErrNonPositiveTimeLimit indicates a zero or negative wall-clock budget.
	ErrNonPositiveTimeLimit = errors.New("solver: time limit must be positive")

	// ErrBadSpeciesCount indicates fewer than one species.
	ErrBadSpeciesCount = errors.New("solver: species count must be positive")

	// ErrBadPopulationSize indicates a species of fewer than two individuals.
	ErrBadPopulationSize = errors.New("solver: population size must be at least two")

	// ErrBadLogInterval indicates a non-positive report interval.
	ErrBadLogInterval = errors.New("solver: log interval must be positive")

	// ErrBadStagnationLimit indicates a non-positive stagnation limit.
	ErrBadStagnationLimit = errors.New("solver: stagnation limit must be positive")

	// ErrBadSeedStride indicates a non-positive seeding stride.
	ErrBadSeedStride = errors.New("solver: seed stride must be positive")

	// ErrNegativeWorkers indicates a negative worker count (zero is the
	// serial mode).
	ErrNegativeWorkers = errors.New("solver: negative worker count")
)

// Default knobs (single source of truth; the CLI mirrors these).
const (
	DefaultSpeciesCount    = 30
	DefaultPopulationSize  = 200
	DefaultLogInterval     = 150
	DefaultStagnationLimit = 50
	DefaultSeedStride      = 5

	// diversityInterval is the generation period of the diversity controller.
	diversityInterval = 10

	// convergenceTol is the cost gap below which two species count as
	// converged onto the same optimum.
	convergenceTol = 0.01

	// divStagnantChecks is how many stagnant diversity checks a species must
	// accumulate before it becomes a re-seeding candidate.
	divStagnantChecks = 5

	// reportTopK bounds the per-report species cost listing.
	reportTopK = 5
)

// Config collects every run parameter. Zero value is not meaningful; start
// from DefaultConfig and override.
type Config struct {
	// TimeLimit is the wall-clock budget. Checked at generation boundaries
	// only; a generation always runs to completion.
	TimeLimit time.Duration

	// Alpha is the ring-edge weight (3, 5, 7 or 9).
	Alpha int

	// SpeciesCount (S) and PopulationSize (P) fix the island layout.
	SpeciesCount   int
	PopulationSize int

	// Elitism is the per-species count of individuals copied unchanged.
	// Zero means the default max(1, P/20).
	Elitism int

	// LogInterval is the report period in generations.
	LogInterval int

	// Mutation bundle percentages.
	AddPct    int
	RemovePct int
	SwapPct   int
	InvPct    int
	ScrPct    int

	// BaseMutationRate is the rate restored on every strict improvement;
	// stagnation inflates the live rate from this base.
	BaseMutationRate float64

	// PoolFraction selects the mating pool (see ring.Params).
	PoolFraction float64

	// StagnationLimit ends the run after this many consecutive stagnant
	// reports, even with budget left.
	StagnationLimit int

	// SeedStride improves every stride-th species with exhaustive 2-opt
	// during seeding (stride 5 = 20% of the population).
	SeedStride int

	// Workers sizes the thread pool; capped at SpeciesCount. Zero evolves
	// serially on the orchestrator goroutine.
	Workers int

	// Seed is the master RNG seed; zero selects the fixed default stream.
	Seed int64

	// OutputPath is the solution file destination; empty disables writing.
	OutputPath string

	// ImagesDir receives the SVG snapshot and convergence chart; empty
	// disables both.
	ImagesDir string
}

// DefaultConfig returns production defaults for an instance-independent run.
// TimeLimit is deliberately absent (zero): the caller must choose a budget.
func DefaultConfig() Config {
	return Config{
		Alpha:            ring.DefaultAlpha,
		SpeciesCount:     DefaultSpeciesCount,
		PopulationSize:   DefaultPopulationSize,
		LogInterval:      DefaultLogInterval,
		AddPct:           ring.DefaultAddPct,
		RemovePct:        ring.DefaultRemovePct,
		SwapPct:          ring.DefaultSwapPct,
		InvPct:           ring.DefaultInvPct,
		ScrPct:           ring.DefaultScrPct,
		BaseMutationRate: ring.DefaultMutationRate,
		PoolFraction:     ring.DefaultPoolFraction,
		StagnationLimit:  DefaultStagnationLimit,
		SeedStride:       DefaultSeedStride,
		Workers:          runtime.NumCPU(),
		OutputPath:       solution.DefaultFileName,
		ImagesDir:        "images",
	}
}

// Validate checks the configuration; the embedded operator parameters are
// validated through ring.Params.
//
// Complexity: O(1).
func (c Config) Validate() error {
	if c.TimeLimit <= 0 {
		return ErrNonPositiveTimeLimit
	}
	if c.SpeciesCount < 1 {
		return ErrBadSpeciesCount
	}
	if c.PopulationSize < 2 {
		return ErrBadPopulationSize
	}
	if c.LogInterval < 1 {
		return ErrBadLogInterval
	}
	if c.StagnationLimit < 1 {
		return ErrBadStagnationLimit
	}
	if c.SeedStride < 1 {
		return ErrBadSeedStride
	}
	if c.Workers < 0 {
		return ErrNegativeWorkers
	}

	return c.params(c.BaseMutationRate).Validate()
}

// elitism resolves the effective per-species elitism: the configured value,
// or max(1, P/20) when unset.
func (c Config) elitism() int {
	if c.Elitism > 0 {
		return c.Elitism
	}

	e := c.PopulationSize / 20
	if e < 1 {
		e = 1
	}

	return e
}

// workers resolves the effective pool size: configured workers capped at
// the species count.
func (c Config) workers() int {
	w := c.Workers
	if w > c.SpeciesCount {
		w = c.SpeciesCount
	}

	return w
}

// params materialises the per-generation parameter record at the given
// live mutation rate.
func (c Config) params(rate float64) ring.Params {
	return ring.Params{
		Alpha:        c.Alpha,
		MutationRate: rate,
		Elitism:      c.elitism(),
		AddPct:       c.AddPct,
		RemovePct:    c.RemovePct,
		SwapPct:      c.SwapPct,
		InvPct:       c.InvPct,
		ScrPct:       c.ScrPct,
		PoolFraction: c.PoolFraction,
	}
}
