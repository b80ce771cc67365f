// Package legend places line labels on a panel: on a coarse grid for
// later dragging, or directly on each line with the overlap solver
// pulling the labels apart.
package legend

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot/text"

	"github.com/eirikurj/niceplots/src/figure"
	"github.com/eirikurj/niceplots/src/overlap"
)

// Grid placement corners in axes-fraction coordinates.
const (
	gridLo = 0.1
	gridHi = 0.9
)

// Label box size estimates handed to the overlap solver, as fractions
// of the panel's data range. Real text metrics are unknown until
// render time, so a label counts as a box roughly two percent of the
// x range wide per character and five percent of the y range tall.
const (
	charWidthFrac  = 0.02
	lineHeightFrac = 0.05
)

// FracPoint is a position in axes-fraction coordinates.
type FracPoint struct {
	X, Y float64
}

// GridCoords returns the first n cells of the grid draggable labels
// start on. The grid is side-by-side with side = ceil(sqrt(n)), cells
// running row-major from the lower-left corner with x varying
// fastest, over linspace(0.1, 0.9, side) in each dimension.
func GridCoords(n int) []FracPoint {
	if n <= 0 {
		return nil
	}
	side := int(math.Ceil(math.Sqrt(float64(n))))
	lin := make([]float64, side)
	if side == 1 {
		lin[0] = gridLo
	} else {
		floats.Span(lin, gridLo, gridHi)
	}
	pts := make([]FracPoint, n)
	for i := range pts {
		pts[i] = FracPoint{X: lin[i%side], Y: lin[i/side]}
	}
	return pts
}

// PlaceGrid attaches one center-anchored label per recorded line,
// laid out on the GridCoords grid. With colorOn each label takes its
// line's color, otherwise black. The returned handles let a caller
// move the labels before the figure renders.
func PlaceGrid(p *figure.Panel, colorOn bool) []*figure.Label {
	lines := p.Lines()
	if len(lines) == 0 {
		return nil
	}
	pts := GridCoords(len(lines))
	labels := make([]*figure.Label, len(lines))
	for i, ln := range lines {
		labels[i] = p.AddLabel(figure.Label{
			Text:   ln.Label,
			X:      pts[i].X,
			Y:      pts[i].Y,
			Frac:   true,
			Color:  labelColor(ln, colorOn),
			XAlign: text.XCenter,
			YAlign: text.YCenter,
		})
	}
	return labels
}

// Placement selects the anchor sample for each line's label. The zero
// value picks a uniformly random sample per line.
type Placement struct {
	fracs     []float64
	broadcast bool
}

// AtFraction anchors every label at sample floor(f*N) of its own
// line, where N is that line's point count.
func AtFraction(f float64) Placement {
	return Placement{fracs: []float64{f}, broadcast: true}
}

// PerLine gives each line its own anchor fraction. The count must
// match the panel's line count.
func PerLine(fs ...float64) Placement {
	return Placement{fracs: append([]float64(nil), fs...)}
}

// resolve expands the placement for n lines. A nil slice means random
// placement.
func (pl Placement) resolve(n int) ([]float64, error) {
	switch {
	case pl.fracs == nil:
		return nil, nil
	case pl.broadcast:
		fs := make([]float64, n)
		for i := range fs {
			fs[i] = pl.fracs[0]
		}
		return fs, nil
	case len(pl.fracs) != n:
		return nil, fmt.Errorf("legend: %d anchor fractions for %d lines", len(pl.fracs), n)
	}
	return pl.fracs, nil
}

// Adjuster moves label boxes apart after placement. overlap.Force is
// the default implementation.
type Adjuster interface {
	Adjust(boxes []overlap.Box, points []overlap.XY, t overlap.Tuning) []overlap.Box
}

// AutoOptions configures AutoPlace. The zero value colors labels like
// their lines, seeds random placement from the clock, and resolves
// overlaps with overlap.Force.
type AutoOptions struct {
	// Mono draws all labels black instead of line-colored.
	Mono bool
	// Rand supplies the sample indices for random placement.
	Rand *rand.Rand
	// Solver resolves label overlaps after placement.
	Solver Adjuster
	// Tuning is handed to the solver untouched.
	Tuning overlap.Tuning
}

// AutoPlace anchors one center-aligned label per recorded line on the
// line itself, then lets the solver push overlapping labels apart.
// Lines without points are skipped; an empty panel is a no-op.
func AutoPlace(p *figure.Panel, at Placement, o AutoOptions) error {
	lines := p.Lines()
	if len(lines) == 0 {
		return nil
	}
	fracs, err := at.resolve(len(lines))
	if err != nil {
		return err
	}
	rng := o.Rand
	if rng == nil && fracs == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	xmin, xmax, ymin, ymax, ok := p.DataRange()
	if !ok {
		return nil
	}

	var labels []*figure.Label
	var boxes []overlap.Box
	for i, ln := range lines {
		n := len(ln.XYs)
		if n == 0 {
			continue
		}
		var idx int
		if fracs != nil {
			idx = anchorIndex(fracs[i], n)
		} else {
			idx = rng.Intn(n)
		}
		pt := ln.XYs[idx]
		labels = append(labels, p.AddLabel(figure.Label{
			Text:   ln.Label,
			X:      pt.X,
			Y:      pt.Y,
			Color:  labelColor(ln, !o.Mono),
			XAlign: text.XCenter,
			YAlign: text.YCenter,
		}))
		boxes = append(boxes, overlap.Box{
			X: pt.X,
			Y: pt.Y,
			W: float64(len(ln.Label)) * charWidthFrac * (xmax - xmin),
			H: lineHeightFrac * (ymax - ymin),
		})
	}

	solver := o.Solver
	if solver == nil {
		solver = overlap.Force{}
	}
	adjusted := solver.Adjust(boxes, nil, o.Tuning)
	for i, l := range labels {
		l.X = adjusted[i].X
		l.Y = adjusted[i].Y
	}
	return nil
}

// Polish applies the house style in one call: spines adjusted with the
// defaults plus a grid legend, returning the legend labels.
func Polish(p *figure.Panel, colorOn bool) []*figure.Label {
	figure.AdjustSpines(p, figure.DefaultSpineOptions())
	return PlaceGrid(p, colorOn)
}

// anchorIndex is floor(f*n) clamped to a valid sample index.
func anchorIndex(f float64, n int) int {
	idx := int(math.Floor(f * float64(n)))
	if idx < 0 {
		idx = 0
	}
	if idx >= n {
		idx = n - 1
	}
	return idx
}

func labelColor(ln *figure.Line, colorOn bool) color.Color {
	if colorOn {
		return ln.Color
	}
	return color.Black
}
