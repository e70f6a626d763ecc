package solver

import (
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ringstar/dataset"
	"github.com/katalvlaran/ringstar/metric"
	"github.com/katalvlaran/ringstar/ring"
)

// testStations builds a deterministic pseudo-random instance of n stations.
func testStations(n int, seed int64) []dataset.Station {
	rng := rand.New(rand.NewSource(seed))
	stations := make([]dataset.Station, n)
	var i int
	for i = 0; i < n; i++ {
		stations[i] = dataset.Station{ID: i + 1, X: float64(rng.Intn(200)), Y: float64(rng.Intn(200))}
	}

	return stations
}

// testConfig is a small, fast configuration for unit runs.
func testConfig(t *testing.T) Config {
	t.Helper()

	cfg := DefaultConfig()
	cfg.TimeLimit = 300 * time.Millisecond
	cfg.Alpha = 5
	cfg.SpeciesCount = 4
	cfg.PopulationSize = 20
	cfg.LogInterval = 5
	cfg.Workers = 2
	cfg.Seed = 99
	cfg.OutputPath = filepath.Join(t.TempDir(), "Genetic_Solution.txt")
	cfg.ImagesDir = filepath.Join(t.TempDir(), "images")

	return cfg
}

func TestConfig_Validate(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, cfg.Validate())

	cases := []struct {
		name string
		mod  func(*Config)
		want error
	}{
		{"time limit", func(c *Config) { c.TimeLimit = 0 }, ErrNonPositiveTimeLimit},
		{"species", func(c *Config) { c.SpeciesCount = 0 }, ErrBadSpeciesCount},
		{"population", func(c *Config) { c.PopulationSize = 1 }, ErrBadPopulationSize},
		{"log interval", func(c *Config) { c.LogInterval = 0 }, ErrBadLogInterval},
		{"stagnation", func(c *Config) { c.StagnationLimit = 0 }, ErrBadStagnationLimit},
		{"stride", func(c *Config) { c.SeedStride = 0 }, ErrBadSeedStride},
		{"workers", func(c *Config) { c.Workers = -1 }, ErrNegativeWorkers},
		{"alpha", func(c *Config) { c.Alpha = 4 }, ring.ErrAlphaOutOfRange},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := testConfig(t)
			tc.mod(&c)
			assert.ErrorIs(t, c.Validate(), tc.want)
		})
	}
}

func TestConfig_ElitismDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PopulationSize = 200
	assert.Equal(t, 10, cfg.elitism())

	cfg.PopulationSize = 10
	assert.Equal(t, 1, cfg.elitism())

	cfg.Elitism = 3
	assert.Equal(t, 3, cfg.elitism())
}

// seededBaseline replays the solver's deterministic seeding (same master
// stream, same stride improvement) and returns the best initial cost.
func seededBaseline(t *testing.T, stations []dataset.Station, cfg Config) float64 {
	t.Helper()

	o, err := metric.NewOracle(stations)
	require.NoError(t, err)

	rng := ring.NewRand(cfg.Seed)
	best := ring.CostSentinel

	var sp, i int
	for sp = 0; sp < cfg.SpeciesCount; sp++ {
		improve := sp%cfg.SeedStride == 0
		for i = 0; i < cfg.PopulationSize; i++ {
			ind := ring.NewIndividual(ring.RandomRing(o.N(), rng))
			if improve {
				ring.ExhaustiveTwoOpt(ind, o)
			}
			if c := ring.TotalCost(cfg.Alpha, ind, o); c < best {
				best = c
			}
		}
	}

	return best
}

func TestRun_BudgetedEndToEnd(t *testing.T) {
	// Budgeted end-to-end run: N <= 50, small budget, S=4, P=20, alpha=5.
	// The run must finish at least one generation and emit a valid solution
	// no worse than the best seeded-and-improved individual.
	stations := testStations(50, 7)
	cfg := testConfig(t)

	s, err := New(stations, cfg, zerolog.Nop())
	require.NoError(t, err)

	res, err := s.Run()
	require.NoError(t, err)

	assert.GreaterOrEqual(t, res.Generations, 1)
	require.NotNil(t, res.Best)
	require.NoError(t, res.Best.Validate(len(stations)))
	assert.LessOrEqual(t, res.Cost, seededBaseline(t, stations, cfg)+1e-9)

	// Artefacts.
	assert.FileExists(t, res.SolutionPath)
	assert.FileExists(t, res.ChartPath)
	assert.NotEmpty(t, res.RunID)
	assert.NotEmpty(t, res.History)

	// A solver is single-use.
	_, err = s.Run()
	assert.ErrorIs(t, err, ErrAlreadyRun)
}

func TestRun_SerialMode(t *testing.T) {
	stations := testStations(30, 11)
	cfg := testConfig(t)
	cfg.Workers = 0
	cfg.TimeLimit = 150 * time.Millisecond

	s, err := New(stations, cfg, zerolog.Nop())
	require.NoError(t, err)

	res, err := s.Run()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Generations, 1)
	require.NoError(t, res.Best.Validate(len(stations)))
}

func TestRunGeneration_WorkerCountIndependent(t *testing.T) {
	// Per-species trajectories must not depend on the worker count: drive
	// both solvers through the same fixed generations and compare every
	// individual.
	stations := testStations(40, 13)

	mk := func(workers int) *Solver {
		cfg := testConfig(t)
		cfg.Workers = workers
		cfg.OutputPath = ""
		cfg.ImagesDir = ""
		s, err := New(stations, cfg, zerolog.Nop())
		require.NoError(t, err)
		return s
	}

	serial := mk(0)
	parallel := mk(4)
	if parallel.workers != nil {
		defer parallel.workers.Close()
	}

	var gen int
	for gen = 1; gen <= 3; gen++ {
		serial.runGeneration(gen)
		parallel.runGeneration(gen)
	}

	var sp, i int
	for sp = 0; sp < len(serial.population); sp++ {
		for i = 0; i < len(serial.population[sp]); i++ {
			a := serial.population[sp][i]
			b := parallel.population[sp][i]
			require.True(t, a.EqualRing(b), "species %d individual %d diverged", sp, i)
			require.Equal(t, a.CachedCost, b.CachedCost)
		}
	}
}

func TestAdaptMutation_Schedule(t *testing.T) {
	s := &Solver{cfg: Config{BaseMutationRate: 0.30}, mutationRate: 0.30}

	// Improvement resets.
	s.stagnation = 7
	s.mutationRate = 0.45
	s.adaptMutation(true)
	assert.Zero(t, s.stagnation)
	assert.Equal(t, 0.30, s.mutationRate)

	// Five stagnant reports trigger the first tier (x1.20, cap 0.50).
	var i int
	for i = 0; i < 5; i++ {
		s.adaptMutation(false)
	}
	assert.Equal(t, 5, s.stagnation)
	assert.InDelta(t, 0.36, s.mutationRate, 1e-12)

	// Tenth report still tier one.
	for i = 0; i < 5; i++ {
		s.adaptMutation(false)
	}
	assert.InDelta(t, 0.432, s.mutationRate, 1e-12)

	// Long stagnation walks through the higher tiers but never passes 0.90.
	for i = 0; i < 100; i++ {
		s.adaptMutation(false)
	}
	assert.LessOrEqual(t, s.mutationRate, 0.90)
	assert.Greater(t, s.mutationRate, 0.50)
}

func TestDiversity_ReseedsConvergedPair(t *testing.T) {
	stations := testStations(30, 17)
	cfg := testConfig(t)
	cfg.SpeciesCount = 3
	cfg.OutputPath = ""
	cfg.ImagesDir = ""

	s, err := New(stations, cfg, zerolog.Nop())
	require.NoError(t, err)
	if s.workers != nil {
		defer s.workers.Close()
	}

	// Force species 0 and 1 into identical cached bests, species 2 far off.
	pin := func(sp int, cost float64) {
		var i int
		for i = 0; i < len(s.population[sp]); i++ {
			s.population[sp][i].CachedCost = cost + float64(i)
		}
	}
	pin(0, 100)
	pin(1, 100.001)
	pin(2, 500)

	// The first check improves on the sentinel; the following ones only
	// accumulate stagnation. Nothing may be re-seeded at or below the
	// threshold.
	var check int
	for check = 0; check <= divStagnantChecks; check++ {
		s.diversityCheck((check + 1) * diversityInterval)
	}
	assert.Equal(t, divStagnantChecks, s.divStagnant[0])
	assert.Equal(t, divStagnantChecks, s.divStagnant[1])
	assert.Equal(t, 100.0, s.divBest[0], "no re-seed below the threshold")

	// One more stagnant check pushes the pair over the threshold: exactly
	// one of the two is re-seeded (the costlier one), and its tracking
	// state resets to the sentinel.
	s.diversityCheck(70)

	assert.Equal(t, ring.CostSentinel, s.divBest[1], "species 1 re-seeded")
	assert.Equal(t, 0, s.divStagnant[1])
	assert.Equal(t, 100.0, s.divBest[0], "species 0 keeps its progress")
	assert.False(t, s.population[1][0].Cached(), "fresh rings start unevaluated")
}
