package overlap

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCoincidentBoxesSeparate(t *testing.T) {
	boxes := []Box{
		{X: 0, Y: 0, W: 2, H: 1},
		{X: 0, Y: 0, W: 2, H: 1},
	}
	out := Force{}.Adjust(boxes, nil, Tuning{})
	if len(out) != len(boxes) {
		t.Fatalf("got %d boxes back, want %d", len(out), len(boxes))
	}
	if Overlaps(out[0], out[1], 0, 0) {
		t.Fatalf("boxes still overlap: %+v", out)
	}
	if boxes[0].X != 0 || boxes[1].X != 0 {
		t.Fatal("input slice was mutated")
	}
}

func TestDisjointBoxesDoNotMove(t *testing.T) {
	boxes := []Box{
		{X: 0, Y: 0, W: 1, H: 1},
		{X: 5, Y: 5, W: 1, H: 1},
	}
	out := Force{}.Adjust(boxes, nil, Tuning{})
	if diff := cmp.Diff(boxes, out); diff != "" {
		t.Fatalf("disjoint boxes moved (-in +out):\n%s", diff)
	}
}

func TestPointRepulsion(t *testing.T) {
	boxes := []Box{{X: 1, Y: 1, W: 2, H: 2}}
	points := []XY{{X: 1, Y: 1}}
	out := Force{}.Adjust(boxes, points, Tuning{})
	if Overlaps(out[0], Box{X: points[0].X, Y: points[0].Y}, 0, 0) {
		t.Fatalf("box still covers the obstacle point: %+v", out[0])
	}
}

// TestDeterministic runs the same input twice; the relaxation has no
// randomness, so the outputs must match exactly.
func TestDeterministic(t *testing.T) {
	boxes := []Box{
		{X: 0, Y: 0, W: 1, H: 1},
		{X: 0.2, Y: 0.1, W: 1, H: 1},
		{X: 0.1, Y: 0.3, W: 1, H: 1},
	}
	points := []XY{{X: 0.5, Y: 0.5}, {X: -0.5, Y: 0}}
	a := Force{}.Adjust(boxes, points, Tuning{})
	b := Force{}.Adjust(boxes, points, Tuning{})
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("two runs differ (-a +b):\n%s", diff)
	}
}

func TestPadKeepsGap(t *testing.T) {
	boxes := []Box{
		{X: 0, Y: 0, W: 1, H: 1},
		{X: 0.5, Y: 0, W: 1, H: 1},
	}
	tune := Tuning{PadX: 0.25, PadY: 0.25}
	out := Force{}.Adjust(boxes, nil, tune)
	if Overlaps(out[0], out[1], tune.PadX, tune.PadY) {
		t.Fatalf("padded boxes still within the pad distance: %+v", out)
	}
}

func TestEmptyInput(t *testing.T) {
	if out := (Force{}).Adjust(nil, nil, Tuning{}); len(out) != 0 {
		t.Fatalf("expected no boxes, got %d", len(out))
	}
}
