// Package uihelpers holds the pure geometry used by the figview window,
// so the pixel mapping can be tested without creating any UI.
package uihelpers

import (
	"fmt"
	"math"
)

// Rect is the plot's data area in image pixel coordinates. Y0 is the top
// edge; the image origin is the top left.
type Rect struct {
	X0, Y0, X1, Y1 float64
}

// Valid reports whether the rectangle has positive area.
func (r Rect) Valid() bool { return r.X1 > r.X0 && r.Y1 > r.Y0 }

// FracToPixel maps axes fractions, counted from the bottom left the way
// plot coordinates run, to image pixels.
func (r Rect) FracToPixel(fx, fy float64) (px, py float64) {
	return r.X0 + fx*(r.X1-r.X0), r.Y1 - fy*(r.Y1-r.Y0)
}

// PixelToFrac is the inverse of FracToPixel, clamped to [0, 1] so a label
// dragged off the axes still saves to a sane anchor.
func (r Rect) PixelToFrac(px, py float64) (fx, fy float64) {
	if !r.Valid() {
		return 0, 0
	}
	fx = (px - r.X0) / (r.X1 - r.X0)
	fy = (r.Y1 - py) / (r.Y1 - r.Y0)
	return ClampFrac(fx), ClampFrac(fy)
}

// ClampFrac clamps v to [0, 1].
func ClampFrac(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Round6 rounds to 6 decimals so saved anchors do not accumulate float
// noise across repeated drags.
func Round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// FormatFrac renders an axes-fraction pair for the status line.
func FormatFrac(fx, fy float64) string {
	return fmt.Sprintf("(%.2f, %.2f)", fx, fy)
}
