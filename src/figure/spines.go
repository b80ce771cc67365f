package figure

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// SpineOffset is how far a kept axis is pushed away from the data area
// when SpineOptions.Outward is set, in points.
const SpineOffset vg.Length = 12

// Spines selects which axes keep their line and ticks. Only the left
// and bottom axes are ever decorated.
type Spines struct {
	Left   bool
	Bottom bool
}

// SpineOptions configures AdjustSpines.
type SpineOptions struct {
	// Keep lists the axes that stay visible; the rest lose their line
	// and their ticks.
	Keep Spines
	// Tight clamps kept axis limits to the panel's data extent.
	Tight bool
	// Outward offsets kept axes from the data area by SpineOffset.
	Outward bool
}

// DefaultSpineOptions keeps both axes and tightens them to the data,
// without the outward offset.
func DefaultSpineOptions() SpineOptions {
	return SpineOptions{Keep: Spines{Left: true, Bottom: true}, Tight: true}
}

// AdjustSpines restyles a panel's axes: dropped axes lose their line
// and ticks, kept axes optionally move outward from the data area and
// have their limits shrunk to the data range. Applying the same
// options twice leaves the panel unchanged.
func AdjustSpines(p *Panel, o SpineOptions) {
	xmin, xmax, ymin, ymax, ok := p.DataRange()

	adjustAxis(&p.Plot.X, o.Keep.Bottom, o.Outward)
	adjustAxis(&p.Plot.Y, o.Keep.Left, o.Outward)

	if o.Tight && ok {
		if o.Keep.Bottom {
			p.Plot.X.Min, p.Plot.X.Max = xmin, xmax
		}
		if o.Keep.Left {
			p.Plot.Y.Min, p.Plot.Y.Max = ymin, ymax
		}
	}
}

func adjustAxis(ax *plot.Axis, keep, outward bool) {
	if !keep {
		ax.LineStyle.Width = 0
		ax.Tick.Marker = plot.ConstantTicks(nil)
		return
	}
	// Set, not add: repeated adjustment must not walk the axis further
	// out. Without the offset the axis sits flush against the data
	// area, overriding the plot's default padding.
	if outward {
		ax.Padding = SpineOffset
	} else {
		ax.Padding = 0
	}
}
