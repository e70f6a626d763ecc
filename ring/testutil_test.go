package ring

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ringstar/dataset"
	"github.com/katalvlaran/ringstar/metric"
)

// squareOracle builds the four-station unit test instance:
// ids 1..4 at (0,0), (10,0), (10,10), (0,10).
func squareOracle(t *testing.T) *metric.Oracle {
	t.Helper()

	o, err := metric.NewOracle([]dataset.Station{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 10, Y: 0},
		{ID: 3, X: 10, Y: 10},
		{ID: 4, X: 0, Y: 10},
	})
	require.NoError(t, err)

	return o
}

// lineOracle builds the three-station collinear instance at (0,0), (1,0), (2,0).
func lineOracle(t *testing.T) *metric.Oracle {
	t.Helper()

	o, err := metric.NewOracle([]dataset.Station{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 1, Y: 0},
		{ID: 3, X: 2, Y: 0},
	})
	require.NoError(t, err)

	return o
}

// centerOracle builds the five-station trade-off instance: the unit square
// corners plus a center station at (5,5).
func centerOracle(t *testing.T) *metric.Oracle {
	t.Helper()

	o, err := metric.NewOracle([]dataset.Station{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 10, Y: 0},
		{ID: 3, X: 10, Y: 10},
		{ID: 4, X: 0, Y: 10},
		{ID: 5, X: 5, Y: 5},
	})
	require.NoError(t, err)

	return o
}

// randomOracle builds a deterministic pseudo-random instance of n stations.
func randomOracle(t *testing.T, n int, seed int64) *metric.Oracle {
	t.Helper()

	rng := rand.New(rand.NewSource(seed))
	stations := make([]dataset.Station, n)
	var i int
	for i = 0; i < n; i++ {
		stations[i] = dataset.Station{
			ID: i + 1,
			X:  float64(rng.Intn(1000)),
			Y:  float64(rng.Intn(1000)),
		}
	}

	o, err := metric.NewOracle(stations)
	require.NoError(t, err)

	return o
}

// requireValid asserts the Individual invariants over n stations.
func requireValid(t *testing.T, ind *Individual, n int) {
	t.Helper()
	require.NoError(t, ind.Validate(n))
}
