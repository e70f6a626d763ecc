// Package solution - SVG plot of a ring and its assignments.
package solution

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	svg "github.com/ajstarks/svgo"
)

// Canvas geometry.
const (
	svgWidth  = 900
	svgHeight = 600
	svgMargin = 50
)

// Plot colours.
const (
	colorDepot   = "#4CAF50"
	colorRing    = "#2196F3"
	colorOutside = "#9E9E9E"
	colorAssign  = "#BDBDBD"
)

// WriteRingSVG draws stations, ring edges, and assignment dashes as one
// self-contained SVG document.
//
// Complexity: O(N + m).
func WriteRingSVG(w io.Writer, s Summary, generation int) error {
	if s.Best == nil {
		return ErrNilBest
	}

	var (
		n    = s.Oracle.N()
		ring = s.Best.Ring
		mask = membership(ring, n)
	)

	// Bounding box of the instance.
	var (
		minX, minY = s.Stations[0].X, s.Stations[0].Y
		maxX, maxY = minX, minY
		i          int
	)
	for i = 1; i < len(s.Stations); i++ {
		if s.Stations[i].X < minX {
			minX = s.Stations[i].X
		}
		if s.Stations[i].X > maxX {
			maxX = s.Stations[i].X
		}
		if s.Stations[i].Y < minY {
			minY = s.Stations[i].Y
		}
		if s.Stations[i].Y > maxY {
			maxY = s.Stations[i].Y
		}
	}

	scaleX := float64(svgWidth-2*svgMargin) / (maxX - minX + 1)
	scaleY := float64(svgHeight-2*svgMargin) / (maxY - minY + 1)
	scale := scaleX
	if scaleY < scale {
		scale = scaleY
	}

	// Instance coordinates to canvas pixels; SVG y grows downwards.
	px := func(x float64) int { return svgMargin + int((x-minX)*scale) }
	py := func(y float64) int { return svgHeight - svgMargin - int((y-minY)*scale) }

	canvas := svg.New(w)
	canvas.Start(svgWidth, svgHeight)
	canvas.Title(fmt.Sprintf("ring generation %d", generation))

	// Assignment dashes under everything else.
	var cand int
	for i = 0; i < len(s.Stations); i++ {
		st := s.Stations[i]
		if mask[st.ID] {
			continue
		}
		for _, cand = range s.Oracle.Rank(st.ID) {
			if mask[cand] {
				target := s.Stations[cand-1]
				canvas.Line(px(st.X), py(st.Y), px(target.X), py(target.Y),
					fmt.Sprintf("stroke:%s;stroke-width:1;stroke-dasharray:4,3", colorAssign))
				break
			}
		}
	}

	// Ring edges.
	var a, b int
	for i = 0; i < len(ring); i++ {
		a = ring[i]
		b = ring[(i+1)%len(ring)]
		sa, sb := s.Stations[a-1], s.Stations[b-1]
		canvas.Line(px(sa.X), py(sa.Y), px(sb.X), py(sb.Y),
			fmt.Sprintf("stroke:%s;stroke-width:2", colorRing))
	}

	// Stations on top: depot, ring members, outside stations.
	for i = 0; i < len(s.Stations); i++ {
		st := s.Stations[i]
		switch {
		case st.ID == 1:
			canvas.Circle(px(st.X), py(st.Y), 6, "fill:"+colorDepot)
		case mask[st.ID]:
			canvas.Circle(px(st.X), py(st.Y), 4, "fill:"+colorRing)
		default:
			canvas.Circle(px(st.X), py(st.Y), 3, "fill:"+colorOutside)
		}
	}

	canvas.Text(svgMargin, svgMargin/2,
		fmt.Sprintf("generation %d | alpha %d | cost %.2f | ring %d/%d",
			generation, s.Alpha, s.Cost, len(ring), n),
		"font-family:monospace;font-size:14px")
	canvas.End()

	return nil
}

// RingSVGFile writes the plot under dir (created if missing) and returns
// the file path. The name carries generation, alpha and rounded cost:
// ring_gen<G>_alpha<A>_cost<C>.svg.
func RingSVGFile(dir string, s Summary, generation int) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, fmt.Sprintf("ring_gen%d_alpha%d_cost%.0f.svg", generation, s.Alpha, s.Cost))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	if err = WriteRingSVG(f, s, generation); err != nil {
		f.Close()
		return "", err
	}

	return path, f.Close()
}
