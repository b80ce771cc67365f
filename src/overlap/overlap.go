// Package overlap implements a small force-directed relaxation that
// pushes label boxes off each other and off fixed obstacle points.
package overlap

import "math"

// Box is an axis-aligned label box centered at (X, Y), in whatever
// units the caller works in.
type Box struct {
	X, Y float64
	W, H float64
}

// XY is an obstacle point boxes are pushed away from. Points never
// move.
type XY struct {
	X, Y float64
}

// Tuning adjusts the relaxation. Zero values take the defaults.
type Tuning struct {
	// Iterations bounds the number of relaxation sweeps.
	Iterations int
	// PadX and PadY grow every box before overlap testing, keeping a
	// minimum gap between settled boxes.
	PadX, PadY float64
	// StepX and StepY scale the applied push per sweep. At the default
	// of 1 a box moves its full penetration, so a lone box clears a
	// fixed obstacle in one sweep.
	StepX, StepY float64
}

const defaultIterations = 100

func (t Tuning) withDefaults() Tuning {
	if t.Iterations <= 0 {
		t.Iterations = defaultIterations
	}
	if t.StepX <= 0 {
		t.StepX = 1
	}
	if t.StepY <= 0 {
		t.StepY = 1
	}
	return t
}

// Overlaps reports whether the interiors of a and b, grown by the
// pads, intersect. Touching edges do not count.
func Overlaps(a, b Box, padX, padY float64) bool {
	return (a.W+b.W)/2+padX > math.Abs(a.X-b.X) &&
		(a.H+b.H)/2+padY > math.Abs(a.Y-b.Y)
}

// Force is the default relaxation solver. The zero value is ready to
// use.
type Force struct{}

// Adjust returns relaxed copies of boxes. Each sweep pushes every box
// out of the boxes and points it overlaps, along the axis of least
// penetration; exact center ties break by index order so the result is
// deterministic. Sweeps stop early once nothing moves. The input
// slice is never mutated and output order matches input order.
func (Force) Adjust(boxes []Box, points []XY, t Tuning) []Box {
	t = t.withDefaults()
	out := make([]Box, len(boxes))
	copy(out, boxes)
	for it := 0; it < t.Iterations; it++ {
		moved := false
		for i := range out {
			var dx, dy float64
			for j := range out {
				if j == i {
					continue
				}
				px, py := push(out[i], out[j], t, i < j)
				dx += px
				dy += py
			}
			for _, pt := range points {
				px, py := push(out[i], Box{X: pt.X, Y: pt.Y}, t, true)
				dx += px
				dy += py
			}
			if dx != 0 || dy != 0 {
				out[i].X += dx
				out[i].Y += dy
				moved = true
			}
		}
		if !moved {
			break
		}
	}
	return out
}

// push computes the displacement moving a off b. lower picks the
// direction for exact center ties: lower-index boxes go left or down.
func push(a, b Box, t Tuning, lower bool) (dx, dy float64) {
	hx := (a.W+b.W)/2 + t.PadX
	hy := (a.H+b.H)/2 + t.PadY
	cx := a.X - b.X
	cy := a.Y - b.Y
	ox := hx - math.Abs(cx)
	oy := hy - math.Abs(cy)
	if ox <= 0 || oy <= 0 {
		return 0, 0
	}
	if ox <= oy {
		return math.Copysign(ox, tieSign(cx, lower)) * t.StepX, 0
	}
	return 0, math.Copysign(oy, tieSign(cy, lower)) * t.StepY
}

func tieSign(c float64, lower bool) float64 {
	if c != 0 {
		return c
	}
	if lower {
		return -1
	}
	return 1
}
