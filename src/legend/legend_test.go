package legend

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/plot/plotter"

	"github.com/eirikurj/niceplots/src/figure"
	"github.com/eirikurj/niceplots/src/overlap"
)

const coordTol = 1e-9

// linePanel returns a panel with nLines 11-point lines; line i runs
// through (j, j+10i).
func linePanel(t *testing.T, nLines int) *figure.Panel {
	t.Helper()
	p := figure.New(0, 0).AddPanel()
	for i := 0; i < nLines; i++ {
		xys := make(plotter.XYs, 11)
		for j := range xys {
			xys[j].X = float64(j)
			xys[j].Y = float64(j + 10*i)
		}
		if _, err := p.AddLine(fmt.Sprintf("line %d", i), xys, figure.LineOptions{}); err != nil {
			t.Fatalf("AddLine: %v", err)
		}
	}
	return p
}

// noopSolver returns boxes unchanged, exposing raw anchors to tests.
type noopSolver struct{}

func (noopSolver) Adjust(boxes []overlap.Box, _ []overlap.XY, _ overlap.Tuning) []overlap.Box {
	return boxes
}

// recordingSolver captures what AutoPlace hands to the solver.
type recordingSolver struct {
	boxes  int
	tuning overlap.Tuning
}

func (r *recordingSolver) Adjust(boxes []overlap.Box, _ []overlap.XY, tn overlap.Tuning) []overlap.Box {
	r.boxes = len(boxes)
	r.tuning = tn
	return boxes
}

func TestGridCoords(t *testing.T) {
	cases := []struct {
		n    int
		want []FracPoint
	}{
		{0, nil},
		{1, []FracPoint{{0.1, 0.1}}},
		{3, []FracPoint{{0.1, 0.1}, {0.9, 0.1}, {0.1, 0.9}}},
		{4, []FracPoint{{0.1, 0.1}, {0.9, 0.1}, {0.1, 0.9}, {0.9, 0.9}}},
		{5, []FracPoint{{0.1, 0.1}, {0.5, 0.1}, {0.9, 0.1}, {0.1, 0.5}, {0.5, 0.5}}},
	}
	for _, tc := range cases {
		got := GridCoords(tc.n)
		if len(got) != len(tc.want) {
			t.Fatalf("n=%d: got %d coords, want %d", tc.n, len(got), len(tc.want))
		}
		for i := range got {
			if math.Abs(got[i].X-tc.want[i].X) > coordTol || math.Abs(got[i].Y-tc.want[i].Y) > coordTol {
				t.Errorf("n=%d coord %d: got (%v, %v), want (%v, %v)",
					tc.n, i, got[i].X, got[i].Y, tc.want[i].X, tc.want[i].Y)
			}
		}
	}
}

func TestPlaceGridColors(t *testing.T) {
	p := linePanel(t, 3)
	labels := PlaceGrid(p, true)
	if len(labels) != 3 {
		t.Fatalf("got %d labels, want 3", len(labels))
	}
	want := GridCoords(3)
	for i, l := range labels {
		if !l.Frac {
			t.Fatalf("label %d not in axes-fraction coordinates", i)
		}
		if l.Text != p.Lines()[i].Label {
			t.Errorf("label %d text %q, want %q", i, l.Text, p.Lines()[i].Label)
		}
		if l.Color != p.Lines()[i].Color {
			t.Errorf("label %d color %v, want line color %v", i, l.Color, p.Lines()[i].Color)
		}
		if math.Abs(l.X-want[i].X) > coordTol || math.Abs(l.Y-want[i].Y) > coordTol {
			t.Errorf("label %d at (%v, %v), want grid cell (%v, %v)", i, l.X, l.Y, want[i].X, want[i].Y)
		}
	}
}

func TestPlaceGridMonochrome(t *testing.T) {
	p := linePanel(t, 2)
	for i, l := range PlaceGrid(p, false) {
		if l.Color != color.Black {
			t.Errorf("label %d color %v, want black", i, l.Color)
		}
	}
}

func TestPlaceGridEmptyPanel(t *testing.T) {
	p := figure.New(0, 0).AddPanel()
	if labels := PlaceGrid(p, true); labels != nil {
		t.Fatalf("expected no labels, got %d", len(labels))
	}
}

// TestAutoPlaceAtFraction checks the floor(f*N) anchor rule: fraction
// 0.5 on an 11 point line anchors at sample 5.
func TestAutoPlaceAtFraction(t *testing.T) {
	p := linePanel(t, 1)
	if err := AutoPlace(p, AtFraction(0.5), AutoOptions{Solver: noopSolver{}}); err != nil {
		t.Fatalf("AutoPlace: %v", err)
	}
	labels := p.Labels()
	if len(labels) != 1 {
		t.Fatalf("got %d labels, want 1", len(labels))
	}
	if labels[0].X != 5 || labels[0].Y != 5 {
		t.Fatalf("anchored at (%v, %v), want (5, 5)", labels[0].X, labels[0].Y)
	}
}

func TestAutoPlacePerLine(t *testing.T) {
	p := linePanel(t, 2)
	if err := AutoPlace(p, PerLine(0, 0.99), AutoOptions{Solver: noopSolver{}}); err != nil {
		t.Fatalf("AutoPlace: %v", err)
	}
	labels := p.Labels()
	if labels[0].X != 0 {
		t.Fatalf("first anchor x=%v, want 0", labels[0].X)
	}
	// floor(0.99*11) = 10, the last sample
	if labels[1].X != 10 {
		t.Fatalf("second anchor x=%v, want 10", labels[1].X)
	}
}

func TestAutoPlacePerLineMismatch(t *testing.T) {
	p := linePanel(t, 3)
	if err := AutoPlace(p, PerLine(0.1, 0.9), AutoOptions{}); err == nil {
		t.Fatal("expected an error for 2 fractions on 3 lines")
	}
}

// TestAutoPlaceClampsFraction: fractions at or above 1 anchor on the
// last sample instead of indexing past the line.
func TestAutoPlaceClampsFraction(t *testing.T) {
	p := linePanel(t, 1)
	if err := AutoPlace(p, AtFraction(1.0), AutoOptions{Solver: noopSolver{}}); err != nil {
		t.Fatalf("AutoPlace: %v", err)
	}
	if got := p.Labels()[0].X; got != 10 {
		t.Fatalf("anchor x=%v, want 10", got)
	}
}

func TestAutoPlaceRandomSeeded(t *testing.T) {
	anchors := func() []float64 {
		p := linePanel(t, 3)
		if err := AutoPlace(p, Placement{}, AutoOptions{
			Rand:   rand.New(rand.NewSource(42)),
			Solver: noopSolver{},
		}); err != nil {
			t.Fatalf("AutoPlace: %v", err)
		}
		xs := make([]float64, 0, 3)
		for _, l := range p.Labels() {
			xs = append(xs, l.X)
		}
		return xs
	}
	first := anchors()
	if diff := cmp.Diff(first, anchors()); diff != "" {
		t.Fatalf("same seed produced different anchors:\n%s", diff)
	}
	for _, x := range first {
		if x < 0 || x > 10 || x != math.Trunc(x) {
			t.Fatalf("anchor x=%v is not a sample position", x)
		}
	}
}

func TestAutoPlaceSolverInjection(t *testing.T) {
	p := linePanel(t, 3)
	rec := &recordingSolver{}
	err := AutoPlace(p, AtFraction(0.5), AutoOptions{
		Solver: rec,
		Tuning: overlap.Tuning{Iterations: 7},
	})
	if err != nil {
		t.Fatalf("AutoPlace: %v", err)
	}
	if rec.boxes != 3 {
		t.Fatalf("solver saw %d boxes, want 3", rec.boxes)
	}
	if rec.tuning.Iterations != 7 {
		t.Fatalf("tuning not forwarded: %+v", rec.tuning)
	}
}

// TestAutoPlaceSeparatesCoincidentLabels anchors two identical lines
// at the same sample and expects the default solver to pull the
// labels apart.
func TestAutoPlaceSeparatesCoincidentLabels(t *testing.T) {
	p := figure.New(0, 0).AddPanel()
	xys := make(plotter.XYs, 11)
	for j := range xys {
		xys[j].X, xys[j].Y = float64(j), float64(j)
	}
	for i := 0; i < 2; i++ {
		if _, err := p.AddLine(fmt.Sprintf("twin %d", i), xys, figure.LineOptions{}); err != nil {
			t.Fatalf("AddLine: %v", err)
		}
	}
	if err := AutoPlace(p, AtFraction(0.5), AutoOptions{}); err != nil {
		t.Fatalf("AutoPlace: %v", err)
	}
	a, b := p.Labels()[0], p.Labels()[1]
	if a.X == b.X && a.Y == b.Y {
		t.Fatalf("labels still coincide at (%v, %v)", a.X, a.Y)
	}
}

func TestAutoPlaceEmptyPanel(t *testing.T) {
	p := figure.New(0, 0).AddPanel()
	if err := AutoPlace(p, AtFraction(0.5), AutoOptions{}); err != nil {
		t.Fatalf("empty panel should be a no-op, got: %v", err)
	}
	if len(p.Labels()) != 0 {
		t.Fatal("labels added to an empty panel")
	}
}

func TestPolish(t *testing.T) {
	p := linePanel(t, 2)
	labels := Polish(p, true)
	if len(labels) != 2 {
		t.Fatalf("got %d labels, want 2", len(labels))
	}
	if p.Plot.X.Min != 0 || p.Plot.X.Max != 10 {
		t.Fatalf("spines not tightened: x [%v, %v]", p.Plot.X.Min, p.Plot.X.Max)
	}
}
