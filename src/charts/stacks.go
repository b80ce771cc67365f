package charts

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"github.com/pplcc/plotext"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/eirikurj/niceplots/src/figure"
)

// DefaultStackFile is the output name Stacked uses when none is given.
const DefaultStackFile = "stacks.png"

// Scale is a panel's y-axis hint: follow the data, pin the limits, or
// pin the ticks with cushioned limits.
type Scale struct {
	kind   scaleKind
	lo, hi float64
	ticks  []float64
}

type scaleKind int

const (
	scaleAuto scaleKind = iota
	scaleLimits
	scaleTicks
)

// AutoScale lets the panel's y range follow its data.
func AutoScale() Scale { return Scale{} }

// Limits pins the panel's y range.
func Limits(lo, hi float64) Scale {
	return Scale{kind: scaleLimits, lo: lo, hi: hi}
}

// Ticks pins the panel's y ticks; the limits become the first and last
// tick pushed apart by the cushion fraction of the tick span.
func Ticks(ts ...float64) Scale {
	return Scale{kind: scaleTicks, ticks: append([]float64(nil), ts...)}
}

// Series is one named line within a group.
type Series struct {
	Name  string
	Data  []float64
	Scale Scale
}

// Group holds one series per panel. Group j draws in cycle color j on
// every panel.
type Group []Series

// StackOptions configures Stacked.
type StackOptions struct {
	// XLabel titles the bottom panel's x axis.
	XLabel string
	// X is the x data shared by every series.
	X []float64
	// Groups each hold one series per panel. The first group names the
	// panels and carries the scale hints; later groups only add lines
	// in the next cycle color.
	Groups []Group
	// Width and Height size the figure; <=0 means 12 by 10 inches.
	Width, Height vg.Length
	// LabelPad is the margin reserved left of the panels for their
	// names; <=0 means 200 points.
	LabelPad vg.Length
	// Filename receives the rendered PNG; empty means DefaultStackFile.
	Filename string
	// XTicks overrides the bottom panel's x ticks.
	XTicks []float64
	// Cushion is the fraction of the tick span padded above and below
	// tick-scaled panels; <=0 means 0.1.
	Cushion float64
}

func (o StackOptions) withDefaults() StackOptions {
	if o.Width <= 0 {
		o.Width = 12 * vg.Inch
	}
	if o.Height <= 0 {
		o.Height = 10 * vg.Inch
	}
	if o.LabelPad <= 0 {
		o.LabelPad = 200
	}
	if o.Filename == "" {
		o.Filename = DefaultStackFile
	}
	if o.Cushion <= 0 {
		o.Cushion = 0.1
	}
	return o
}

// Stacked draws one panel per series of the first group, stacked
// vertically over a shared x axis, and writes the figure to
// o.Filename. The figure and its panels are returned for further
// customization; re-save the figure to capture later changes.
func Stacked(o StackOptions) (*figure.Figure, []*figure.Panel, error) {
	if len(o.Groups) == 0 || len(o.Groups[0]) == 0 {
		return nil, nil, errors.New("charts: no stacked series")
	}
	if len(o.X) == 0 {
		return nil, nil, errors.New("charts: no x data")
	}
	for gi, g := range o.Groups {
		if len(g) != len(o.Groups[0]) {
			return nil, nil, fmt.Errorf("charts: group %d has %d series, first group has %d",
				gi, len(g), len(o.Groups[0]))
		}
		for _, s := range g {
			if len(s.Data) != len(o.X) {
				return nil, nil, fmt.Errorf("charts: series %q has %d points for %d x values",
					s.Name, len(s.Data), len(o.X))
			}
		}
	}
	o = o.withDefaults()

	fig := figure.New(o.Width, o.Height)
	fig.LeftMargin = o.LabelPad
	for _, s := range o.Groups[0] {
		p := fig.AddPanel()
		p.Name = s.Name
	}

	// Every group contributes one thick line plus white-edged markers
	// per panel, unclipped so strokes at the range edge stay whole.
	for _, g := range o.Groups {
		for i, s := range g {
			p := fig.Panels[i]
			xys := make(plotter.XYs, len(o.X))
			for k := range xys {
				xys[k].X = o.X[k]
				xys[k].Y = s.Data[k]
			}
			ln, err := p.AddLine(s.Name, xys, figure.LineOptions{Width: vg.Points(6), NoClip: true})
			if err != nil {
				return nil, nil, err
			}
			if err := p.AddMarkers(xys, figure.MarkerOptions{Color: ln.Color, Edge: color.White}); err != nil {
				return nil, nil, err
			}
		}
	}

	// Spines first, scale hints second: tightening must not undo an
	// explicit limit or cushion.
	for i, p := range fig.Panels {
		figure.AdjustSpines(p, figure.DefaultSpineOptions())
		applyScale(p, o.Groups[0][i].Scale, o.Cushion)
	}

	axes := make([]*plot.Axis, len(fig.Panels))
	for i, p := range fig.Panels {
		axes[i] = &p.Plot.X
	}
	plotext.UniteAxisRanges(axes)

	last := len(fig.Panels) - 1
	for i, p := range fig.Panels {
		if i != last {
			p.Plot.X.Tick.Marker = plot.ConstantTicks(nil)
		}
	}
	if len(o.XTicks) > 0 {
		fig.Panels[last].Plot.X.Tick.Marker = tickList(o.XTicks)
	}
	fig.Panels[last].Plot.X.Label.Text = o.XLabel

	if err := fig.SavePNG(o.Filename); err != nil {
		return nil, nil, err
	}
	logrus.WithFields(logrus.Fields{
		"file":   o.Filename,
		"panels": len(fig.Panels),
		"groups": len(o.Groups),
	}).Debug("wrote stacked panels")
	return fig, fig.Panels, nil
}

// applyScale sets a panel's y range from its hint. AdjustSpines has
// already tightened the range, so auto needs nothing.
func applyScale(p *figure.Panel, s Scale, cushion float64) {
	switch s.kind {
	case scaleLimits:
		p.Plot.Y.Min, p.Plot.Y.Max = s.lo, s.hi
	case scaleTicks:
		if len(s.ticks) == 0 {
			return
		}
		p.Plot.Y.Tick.Marker = tickList(s.ticks)
		lo, hi := s.ticks[0], s.ticks[len(s.ticks)-1]
		if h := hi - lo; h > 0 {
			p.Plot.Y.Min = lo - cushion*h
			p.Plot.Y.Max = hi + cushion*h
		}
	}
}

// tickList labels each value with its shortest decimal form.
func tickList(vs []float64) plot.ConstantTicks {
	ts := make([]plot.Tick, len(vs))
	for i, v := range vs {
		ts[i] = plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'g', -1, 64)}
	}
	return plot.ConstantTicks(ts)
}
