// Package solution - plain-text solution file writer.
package solution

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/katalvlaran/ringstar/dataset"
	"github.com/katalvlaran/ringstar/metric"
	"github.com/katalvlaran/ringstar/ring"
)

// Sentinel errors.
var (
	// ErrNilBest indicates a Summary without a best individual.
	ErrNilBest = errors.New("solution: nil best individual")

	// ErrNoPoints indicates a convergence chart over zero progress points.
	ErrNoPoints = errors.New("solution: empty progress history")
)

// DefaultFileName is the canonical solution file name.
const DefaultFileName = "Genetic_Solution.txt"

// Summary is everything the writers need about a finished (or in-flight)
// run. All fields are read-only for the writers.
type Summary struct {
	Stations []dataset.Station
	Oracle   *metric.Oracle
	Best     *ring.Individual
	Alpha    int
	Cost     float64
}

// ProgressPoint is one convergence observation recorded at a report
// interval.
type ProgressPoint struct {
	Generation int
	Elapsed    time.Duration
	BestCost   float64
}

// Write emits the solution file body to w.
//
// Complexity: O(N * r) where r is the average ranking prefix scanned per
// assignment (same policy as the out-of-ring cost kernel).
func Write(w io.Writer, s Summary) error {
	if s.Best == nil {
		return ErrNilBest
	}

	var (
		bw  = bufio.NewWriter(w)
		n   = s.Oracle.N()
		err error
	)

	if _, err = fmt.Fprintf(bw, "DIMENSION: %d\nALPHA: %d\nBEST_COST: %.2f\n\n", n, s.Alpha, s.Cost); err != nil {
		return err
	}

	// Ring in tour order, rotated to start at the depot, closed by the
	// depot id.
	tour := rotateToDepot(s.Best.Ring)
	if _, err = fmt.Fprint(bw, "RING:\n"); err != nil {
		return err
	}
	var i int
	for i = 0; i < len(tour); i++ {
		if i > 0 {
			if _, err = fmt.Fprint(bw, " "); err != nil {
				return err
			}
		}
		if _, err = fmt.Fprintf(bw, "%d", tour[i]); err != nil {
			return err
		}
	}
	if _, err = fmt.Fprintf(bw, " %d\n\n", tour[0]); err != nil {
		return err
	}

	// Assignments: every outside station to its nearest ring member.
	if _, err = fmt.Fprint(bw, "ASSIGNMENTS:\n"); err != nil {
		return err
	}
	var (
		assigned bool
		s2, cand int
		mask     = membership(tour, n)
	)
	for s2 = 1; s2 <= n; s2++ {
		if mask[s2] {
			continue
		}
		for _, cand = range s.Oracle.Rank(s2) {
			if mask[cand] {
				if _, err = fmt.Fprintf(bw, "%d -> %d\n", s2, cand); err != nil {
					return err
				}
				assigned = true
				break
			}
		}
	}
	if !assigned {
		if _, err = fmt.Fprint(bw, "(no assignments - all nodes in ring)\n"); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// WriteFile writes the solution file at path.
func WriteFile(path string, s Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err = Write(f, s); err != nil {
		f.Close()
		return err
	}

	return f.Close()
}

// rotateToDepot returns a copy of tour rotated so the depot leads.
// Tours without the depot are returned as-is (the writer does not enforce
// the invariant; validation belongs to the optimiser).
func rotateToDepot(tour []int) []int {
	var pivot = -1
	var i int
	for i = 0; i < len(tour); i++ {
		if tour[i] == ring.Depot {
			pivot = i
			break
		}
	}

	out := make([]int, len(tour))
	if pivot <= 0 {
		copy(out, tour)
		return out
	}
	for i = 0; i < len(tour); i++ {
		out[i] = tour[(pivot+i)%len(tour)]
	}

	return out
}

// membership builds the ring bitset over ids 0..n.
func membership(tour []int, n int) []bool {
	mask := make([]bool, n+1)
	var id int
	for _, id = range tour {
		if id >= 1 && id <= n {
			mask[id] = true
		}
	}

	return mask
}
