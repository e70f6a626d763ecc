package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/katalvlaran/ringstar/dataset"
	"github.com/katalvlaran/ringstar/solver"
)

// Flag and config keys. Every flag is also settable through a config file
// (--config) or the RINGSTAR_* environment, flag > env > file > default.
const (
	keyDataset         = "dataset"
	keyDatasetID       = "dataset-id"
	keyTimeLimit       = "time-limit"
	keyAlpha           = "alpha"
	keySpecies         = "species"
	keyPopulation      = "population"
	keyElitism         = "elitism"
	keyLogInterval     = "log-interval"
	keyAddPct          = "add-pct"
	keyRemovePct       = "remove-pct"
	keySwapPct         = "swap-pct"
	keyInvPct          = "inv-pct"
	keyScrPct          = "scr-pct"
	keyMutationRate    = "mutation-rate"
	keyPoolFraction    = "pool-fraction"
	keyStagnationLimit = "stagnation-limit"
	keySeedStride      = "seed-stride"
	keyWorkers         = "workers"
	keySeed            = "seed"
	keyOutput          = "output"
	keyImagesDir       = "images-dir"
	keyVerbose         = "verbose"

	envPrefix = "RINGSTAR"
)

var configFile string

// newRootCmd wires the CLI around the solver configuration.
func newRootCmd() *cobra.Command {
	defaults := solver.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "ringstar",
		Short: "Memetic island-model optimiser for the Ring Star Problem",
		Long: strings.TrimSpace(`
ringstar selects a cyclic subset of stations (the ring, depot pinned) and
assigns every remaining station to its nearest ring member, minimising
alpha*ring-length + (10-alpha)*assignment-length under a wall-clock budget.
`),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Flags())
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&configFile, "config", "", "optional YAML config file")
	fs.String(keyDataset, "", "dataset file path (overrides --dataset-id)")
	fs.Int(keyDatasetID, 0, "dataset id, resolved to data/<id>/<id>_data.txt")
	fs.Float64(keyTimeLimit, 0, "wall-clock budget in seconds (required, positive)")
	fs.Int(keyAlpha, defaults.Alpha, "ring-edge weight, one of 3, 5, 7, 9")
	fs.Int(keySpecies, defaults.SpeciesCount, "number of species (islands)")
	fs.Int(keyPopulation, defaults.PopulationSize, "individuals per species")
	fs.Int(keyElitism, 0, "elite count per species (0 = max(1, population/20))")
	fs.Int(keyLogInterval, defaults.LogInterval, "report period in generations")
	fs.Int(keyAddPct, defaults.AddPct, "add-node mutation percentage")
	fs.Int(keyRemovePct, defaults.RemovePct, "remove-node mutation percentage")
	fs.Int(keySwapPct, defaults.SwapPct, "swap mutation percentage")
	fs.Int(keyInvPct, defaults.InvPct, "inversion mutation percentage")
	fs.Int(keyScrPct, defaults.ScrPct, "scramble mutation percentage")
	fs.Float64(keyMutationRate, defaults.BaseMutationRate, "base mutation rate")
	fs.Float64(keyPoolFraction, defaults.PoolFraction, "mating pool fraction")
	fs.Int(keyStagnationLimit, defaults.StagnationLimit, "stagnant reports before early stop")
	fs.Int(keySeedStride, defaults.SeedStride, "2-opt every stride-th species at seeding")
	fs.Int(keyWorkers, defaults.Workers, "worker threads (0 = serial, capped at species)")
	fs.Int64(keySeed, 0, "master RNG seed (0 = fixed default stream)")
	fs.String(keyOutput, defaults.OutputPath, "solution file path")
	fs.String(keyImagesDir, defaults.ImagesDir, "directory for SVG/HTML reports (empty disables)")
	fs.Bool(keyVerbose, false, "debug logging")

	return cmd
}

// Execute runs the CLI.
func Execute() error {
	return newRootCmd().Execute()
}

// run merges flags, environment, and the optional config file, then drives
// one solver run.
func run(fs *pflag.FlagSet) error {
	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return err
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return err
		}
	}

	log := newLogger(v.GetBool(keyVerbose))

	cfg := solver.DefaultConfig()
	cfg.TimeLimit = time.Duration(v.GetFloat64(keyTimeLimit) * float64(time.Second))
	cfg.Alpha = v.GetInt(keyAlpha)
	cfg.SpeciesCount = v.GetInt(keySpecies)
	cfg.PopulationSize = v.GetInt(keyPopulation)
	cfg.Elitism = v.GetInt(keyElitism)
	cfg.LogInterval = v.GetInt(keyLogInterval)
	cfg.AddPct = v.GetInt(keyAddPct)
	cfg.RemovePct = v.GetInt(keyRemovePct)
	cfg.SwapPct = v.GetInt(keySwapPct)
	cfg.InvPct = v.GetInt(keyInvPct)
	cfg.ScrPct = v.GetInt(keyScrPct)
	cfg.BaseMutationRate = v.GetFloat64(keyMutationRate)
	cfg.PoolFraction = v.GetFloat64(keyPoolFraction)
	cfg.StagnationLimit = v.GetInt(keyStagnationLimit)
	cfg.SeedStride = v.GetInt(keySeedStride)
	cfg.Workers = v.GetInt(keyWorkers)
	cfg.Seed = v.GetInt64(keySeed)
	cfg.OutputPath = v.GetString(keyOutput)
	cfg.ImagesDir = v.GetString(keyImagesDir)

	path := datasetPath(v)
	stations, err := dataset.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	s, err := solver.New(stations, cfg, log)
	if err != nil {
		return err
	}

	res, err := s.Run()
	if err != nil {
		return err
	}

	log.Info().
		Float64("best_cost", res.Cost).
		Int("ring_len", len(res.Best.Ring)).
		Str("solution", res.SolutionPath).
		Str("chart", res.ChartPath).
		Msg("done")

	return nil
}

// datasetPath resolves the dataset location: an explicit path wins, else
// the id-based layout data/<id>/<id>_data.txt.
func datasetPath(v *viper.Viper) string {
	if path := v.GetString(keyDataset); path != "" {
		return path
	}

	id := v.GetInt(keyDatasetID)

	return fmt.Sprintf("data/%d/%d_data.txt", id, id)
}

// newLogger builds the console logger used for run reporting.
func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}).
		Level(level).
		With().Timestamp().Logger()
}
