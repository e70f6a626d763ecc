package solution_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ringstar/dataset"
	"github.com/katalvlaran/ringstar/metric"
	"github.com/katalvlaran/ringstar/ring"
	"github.com/katalvlaran/ringstar/solution"
)

// squareSummary builds a four-station square instance around the given tour.
func squareSummary(t *testing.T, tour []int) solution.Summary {
	t.Helper()

	stations := []dataset.Station{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 10, Y: 0},
		{ID: 3, X: 10, Y: 10},
		{ID: 4, X: 0, Y: 10},
	}
	o, err := metric.NewOracle(stations)
	require.NoError(t, err)

	best := ring.NewIndividual(tour)
	cost := ring.TotalCost(3, best, o)

	return solution.Summary{
		Stations: stations,
		Oracle:   o,
		Best:     best,
		Alpha:    3,
		Cost:     cost,
	}
}

func TestWrite_PartialRing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, solution.Write(&buf, squareSummary(t, []int{1, 2, 3})))

	out := buf.String()
	assert.Contains(t, out, "DIMENSION: 4\n")
	assert.Contains(t, out, "ALPHA: 3\n")
	assert.Contains(t, out, "BEST_COST: ")
	// Ring closed by the depot id.
	assert.Contains(t, out, "RING:\n1 2 3 1\n")
	// Station 4 assigns to its nearest ring member (1 or 3, both at 10;
	// ranking ties break by id, so 1 wins).
	assert.Contains(t, out, "ASSIGNMENTS:\n4 -> 1\n")
	assert.NotContains(t, out, "no assignments")
}

func TestWrite_FullRing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, solution.Write(&buf, squareSummary(t, []int{1, 2, 3, 4})))

	assert.Contains(t, buf.String(), "(no assignments - all nodes in ring)")
}

func TestWrite_RotatesRingToDepot(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, solution.Write(&buf, squareSummary(t, []int{3, 4, 1, 2})))

	// Same cycle, depot leading.
	assert.Contains(t, buf.String(), "RING:\n1 2 3 4 1\n")
}

func TestWrite_NilBest(t *testing.T) {
	s := squareSummary(t, []int{1, 2})
	s.Best = nil

	assert.ErrorIs(t, solution.Write(&bytes.Buffer{}, s), solution.ErrNilBest)
}

func TestWriteRingSVG_WellFormed(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, solution.WriteRingSVG(&buf, squareSummary(t, []int{1, 2, 3}), 42))

	out := buf.String()
	assert.True(t, strings.Contains(out, "<svg"))
	assert.True(t, strings.Contains(out, "</svg>"))
	assert.Contains(t, out, "generation 42")
	// One dashed assignment line for station 4.
	assert.Contains(t, out, "stroke-dasharray")
}

func TestWriteConvergenceHTML(t *testing.T) {
	points := []solution.ProgressPoint{
		{Generation: 0, BestCost: 500},
		{Generation: 150, BestCost: 420},
		{Generation: 300, BestCost: 390},
	}

	var buf bytes.Buffer
	require.NoError(t, solution.WriteConvergenceHTML(&buf, "test-run", points))
	assert.Contains(t, buf.String(), "test-run")

	assert.ErrorIs(t, solution.WriteConvergenceHTML(&bytes.Buffer{}, "x", nil), solution.ErrNoPoints)
}
