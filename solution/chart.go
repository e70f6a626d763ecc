// Package solution - HTML convergence chart.
package solution

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// WriteConvergenceHTML renders the best-cost-per-report line chart as a
// standalone HTML page.
//
// Complexity: O(len(points)).
func WriteConvergenceHTML(w io.Writer, runID string, points []ProgressPoint) error {
	if len(points) == 0 {
		return ErrNoPoints
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "ring-star convergence",
			Subtitle: fmt.Sprintf("run %s", runID),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "generation"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "best cost"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)

	var (
		xs = make([]string, len(points))
		ys = make([]opts.LineData, len(points))
		i  int
		pt ProgressPoint
	)
	for i, pt = range points {
		xs[i] = fmt.Sprintf("%d", pt.Generation)
		ys[i] = opts.LineData{Value: pt.BestCost}
	}

	line.SetXAxis(xs).AddSeries("best cost", ys)

	return line.Render(w)
}

// ConvergenceHTMLFile writes the chart under dir (created if missing) and
// returns the file path.
func ConvergenceHTMLFile(dir, runID string, points []ProgressPoint) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("convergence_%s.html", runID))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err = WriteConvergenceHTML(f, runID, points); err != nil {
		f.Close()
		return "", err
	}

	return path, f.Close()
}
