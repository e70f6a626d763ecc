// SPDX-License-Identifier: MIT

package metric_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/ringstar/dataset"
	"github.com/katalvlaran/ringstar/metric"
)

// unitSquare is the four-station square used across the package tests:
// ids 1..4 at (0,0), (10,0), (10,10), (0,10).
func unitSquare() []dataset.Station {
	return []dataset.Station{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 10, Y: 0},
		{ID: 3, X: 10, Y: 10},
		{ID: 4, X: 0, Y: 10},
	}
}

func TestNewOracle_SquareDistances(t *testing.T) {
	o, err := metric.NewOracle(unitSquare())
	require.NoError(t, err)
	require.Equal(t, 4, o.N())

	const diag = 14.142135623730951 // 10 * sqrt(2)

	assert.InDelta(t, 0, o.Dist(1, 1), 1e-12)
	assert.InDelta(t, 10, o.Dist(1, 2), 1e-12)
	assert.InDelta(t, diag, o.Dist(1, 3), 1e-12)
	assert.InDelta(t, 10, o.Dist(1, 4), 1e-12)
}

func TestNewOracle_Symmetry(t *testing.T) {
	o, err := metric.NewOracle(unitSquare())
	require.NoError(t, err)

	var a, b int
	for a = 1; a <= o.N(); a++ {
		for b = 1; b <= o.N(); b++ {
			assert.Equal(t, o.Dist(a, b), o.Dist(b, a), "dist(%d,%d)", a, b)
		}
	}
}

func TestNewOracle_RankingOrderAndTies(t *testing.T) {
	// Station 1 is equidistant (10) from 2 and 4; the tie must break by id.
	o, err := metric.NewOracle(unitSquare())
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 4, 3}, o.Rank(1))
	// Station 3 is equidistant from 2 and 4 as well.
	assert.Equal(t, []int{3, 2, 4, 1}, o.Rank(3))
}

func TestNewOracle_RankRowsAreNonDecreasing(t *testing.T) {
	stations := []dataset.Station{
		{ID: 1, X: 0, Y: 0},
		{ID: 2, X: 3, Y: 4},
		{ID: 3, X: -1, Y: 1},
		{ID: 4, X: 7, Y: -2},
		{ID: 5, X: 2, Y: 2},
	}
	o, err := metric.NewOracle(stations)
	require.NoError(t, err)

	var s, j int
	for s = 1; s <= o.N(); s++ {
		r := o.Rank(s)
		require.Len(t, r, o.N())
		assert.Equal(t, s, r[0], "rank row must start with the station itself")
		for j = 1; j < len(r); j++ {
			assert.LessOrEqual(t, o.Dist(s, r[j-1]), o.Dist(s, r[j]))
		}
	}
}

func TestNewOracle_Row(t *testing.T) {
	o, err := metric.NewOracle(unitSquare())
	require.NoError(t, err)

	row := o.Row(2)
	require.Len(t, row, 4)
	assert.InDelta(t, o.Dist(2, 1), row[0], 1e-12)
	assert.InDelta(t, o.Dist(2, 4), row[3], 1e-12)
	assert.True(t, math.Abs(row[1]) < 1e-12)
}

func TestNewOracle_Errors(t *testing.T) {
	_, err := metric.NewOracle(unitSquare()[:2])
	assert.ErrorIs(t, err, metric.ErrTooFewStations)

	bad := unitSquare()
	bad[2].ID = 7
	_, err = metric.NewOracle(bad)
	assert.ErrorIs(t, err, metric.ErrNonConsecutiveIDs)
}
