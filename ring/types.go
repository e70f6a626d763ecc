// Package ring - common types, parameter record, and sentinel errors
// shared by the evolutionary operators.
package ring

import (
	"errors"
	"math"
)

// Sentinel errors (validation and shape). Do not wrap with fmt.Errorf where
// a sentinel suffices.
var (
	// ErrRingTooShort indicates a ring with fewer than MinRingLen stations.
	ErrRingTooShort = errors.New("ring: ring shorter than two stations")

	// ErrDepotMissing indicates the depot (station 1) is absent from a ring.
	ErrDepotMissing = errors.New("ring: depot absent from ring")

	// ErrStationOutOfRange indicates a ring id outside 1..N.
	ErrStationOutOfRange = errors.New("ring: station id out of range")

	// ErrDuplicateStation indicates a station appears twice in one ring.
	ErrDuplicateStation = errors.New("ring: duplicate station in ring")

	// ErrAlphaOutOfRange indicates alpha is not one of 3, 5, 7, 9.
	ErrAlphaOutOfRange = errors.New("ring: alpha must be 3, 5, 7 or 9")

	// ErrRateOutOfRange indicates a mutation rate outside [0,1].
	ErrRateOutOfRange = errors.New("ring: mutation rate outside [0,1]")

	// ErrPercentOutOfRange indicates an operator percentage outside [0,100].
	ErrPercentOutOfRange = errors.New("ring: operator percentage outside [0,100]")

	// ErrPoolFractionOutOfRange indicates a mating-pool fraction outside (0,1].
	ErrPoolFractionOutOfRange = errors.New("ring: pool fraction outside (0,1]")

	// ErrElitismNegative indicates a negative elitism count.
	ErrElitismNegative = errors.New("ring: negative elitism count")

	// ErrEmptySpecies indicates an EvolveSpecie task over zero individuals.
	ErrEmptySpecies = errors.New("ring: empty species")
)

// Model constants.
const (
	// Depot is the station pinned into every ring.
	Depot = 1

	// MinRingLen is the smallest valid ring length.
	MinRingLen = 2

	// removeFloor is the smallest ring length the remove-node mutation may
	// leave behind.
	removeFloor = 3

	// assignWeightBase is the fixed model constant: stations outside the
	// ring are weighted by (assignWeightBase - alpha).
	assignWeightBase = 10.0

	// DefaultEps is the minimal strictly-better improvement accepted by the
	// 2-opt local search (delta < -DefaultEps).
	DefaultEps = 1e-9
)

// CostSentinel marks a stale CachedCost ("dirty", must be re-evaluated).
// Any structural change to a ring resets the cache to this value.
var CostSentinel = math.Inf(1)

// ValidAlpha reports whether a is one of the supported ring weights.
func ValidAlpha(a int) bool {
	return a == 3 || a == 5 || a == 7 || a == 9
}

// Params is the full per-generation parameter record handed to
// EvolveSpecie alongside the oracle and one species.
type Params struct {
	// Alpha weighs ring edges; assignWeightBase-Alpha weighs assignments.
	Alpha int

	// MutationRate is the probability of mutating a non-clone child in [0,1].
	// Clones of their first parent are always mutated.
	MutationRate float64

	// Elitism is the number of best individuals copied unchanged.
	Elitism int

	// Per-operator firing percentages of the mutation bundle, in [0,100].
	AddPct    int
	RemovePct int
	SwapPct   int
	InvPct    int
	ScrPct    int

	// PoolFraction selects the top fraction of a species as the mating pool,
	// in (0,1]; the pool never shrinks below two parents.
	PoolFraction float64
}

// Default parameter values (single source of truth; mirrored by the CLI).
const (
	DefaultAlpha        = 3
	DefaultMutationRate = 0.30
	DefaultAddPct       = 15
	DefaultRemovePct    = 10
	DefaultSwapPct      = 15
	DefaultInvPct       = 5
	DefaultScrPct       = 5
	DefaultPoolFraction = 0.5
)

// DefaultParams returns the production defaults. Elitism is 1 here; callers
// sizing a species of P individuals typically raise it to max(1, P/20).
func DefaultParams() Params {
	return Params{
		Alpha:        DefaultAlpha,
		MutationRate: DefaultMutationRate,
		Elitism:      1,
		AddPct:       DefaultAddPct,
		RemovePct:    DefaultRemovePct,
		SwapPct:      DefaultSwapPct,
		InvPct:       DefaultInvPct,
		ScrPct:       DefaultScrPct,
		PoolFraction: DefaultPoolFraction,
	}
}

// Validate checks internal consistency of the parameter record.
//
// Complexity: O(1).
func (p Params) Validate() error {
	if !ValidAlpha(p.Alpha) {
		return ErrAlphaOutOfRange
	}
	if p.MutationRate < 0 || p.MutationRate > 1 {
		return ErrRateOutOfRange
	}
	if p.Elitism < 0 {
		return ErrElitismNegative
	}

	var pct int
	for _, pct = range []int{p.AddPct, p.RemovePct, p.SwapPct, p.InvPct, p.ScrPct} {
		if pct < 0 || pct > 100 {
			return ErrPercentOutOfRange
		}
	}
	if p.PoolFraction <= 0 || p.PoolFraction > 1 {
		return ErrPoolFractionOutOfRange
	}

	return nil
}

// roundScale controls final cost stabilisation precision (1e-9).
const roundScale = 1e9

// round1e9 returns x rounded to 1e-9 absolute precision. Keeps costs stable
// across platforms without affecting optimality.
func round1e9(x float64) float64 {
	return math.Round(x*roundScale) / roundScale
}
