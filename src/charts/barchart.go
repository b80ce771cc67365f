// Package charts builds the two canned chart types: the horizontal
// comparison bar chart and the stacked multi-panel line chart.
package charts

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"github.com/eirikurj/niceplots/src/figure"
)

// BarChartFile is the fixed output name of HorizBar, written into the
// working directory.
const BarChartFile = "bar_chart.pdf"

// Empirical layout constants of the bar chart, all in fractions of the
// largest value. They were tuned by eye against real label and digit
// widths; changing one shifts all the side text.
const (
	labelCharFrac  = 0.038 // label column width per label character
	plotRangeFrac  = 1.05  // upper end of the reference band
	rightLimFrac   = 1.11  // right reference for value and header positions
	headerCharFrac = 0.018 // header anchor shift per header character
	valueGapFrac   = 0.09  // gap between the band and the value column
	valueDigitFrac = 0.02  // extra value-column gap per decimal digit
	ruleGapFrac    = 0.15  // rule overhang past the right reference
	ruleDigitFrac  = 0.03  // extra rule overhang per decimal digit
	valueXFrac     = 1.15  // value anchor as a multiple of the right reference

	rowYLo, rowYHi = 0.99, 1.01 // per-row y range around the y=1 band
	ruleY          = 1.014      // header rule height
	headerY        = 1.02       // header baseline height
	headerSize     = 13         // header font size in points
)

// MarkerYellow is the classic dot color, #FFCC00.
var MarkerYellow = color.RGBA{R: 0xff, G: 0xcc, A: 0xff}

// refGray is the reference band color, #C0C0C0.
var refGray = color.RGBA{R: 0xc0, G: 0xc0, B: 0xc0, A: 0xff}

// BarOptions tweaks HorizBar.
type BarOptions struct {
	// TextScale widens the label column for wide typefaces; <=0 means 1.
	TextScale float64
	// Decimals is the number of digits after the decimal point in the
	// value column; negative means none.
	Decimals int
	// Width is the figure width; <=0 means 5 inches.
	Width vg.Length
	// RowHeight is the height of one bar row; <=0 means half an inch.
	RowHeight vg.Length
	// MarkerColor fills the value dots; nil means MarkerYellow.
	MarkerColor color.Color
}

// DefaultBarOptions returns the classic rendering: one decimal digit
// on a 5 by 0.5 inch row grid with yellow dots.
func DefaultBarOptions() BarOptions {
	return BarOptions{
		TextScale:   1,
		Decimals:    1,
		Width:       5 * vg.Inch,
		RowHeight:   vg.Inch / 2,
		MarkerColor: MarkerYellow,
	}
}

func (o BarOptions) withDefaults() BarOptions {
	if o.TextScale <= 0 {
		o.TextScale = 1
	}
	if o.Decimals < 0 {
		o.Decimals = 0
	}
	if o.Width <= 0 {
		o.Width = 5 * vg.Inch
	}
	if o.RowHeight <= 0 {
		o.RowHeight = vg.Inch / 2
	}
	if o.MarkerColor == nil {
		o.MarkerColor = MarkerYellow
	}
	return o
}

// barLayout is the x geometry shared by every row, in data units.
type barLayout struct {
	TMax         float64 // largest value
	LeftLim      float64 // label anchor, left of zero
	PlotMax      float64 // right end of the reference band
	RightLim     float64 // right reference
	ValueX       float64 // right-aligned value anchor
	LeftHeaderX  float64
	RightHeaderX float64
	RuleEnd      float64 // right end of the header rule
	XMin, XMax   float64 // drawn x span, wide enough for all side text
}

// computeBarLayout reproduces the empirical x arithmetic for one data
// set.
func computeBarLayout(labels []string, values []float64, header [2]string, textScale float64, decimals int) barLayout {
	var lay barLayout
	lay.TMax = values[0]
	for _, v := range values[1:] {
		lay.TMax = max(lay.TMax, v)
	}
	lMax := 0
	for _, l := range labels {
		lMax = max(lMax, len(l))
	}
	nd := float64(decimals)
	lay.LeftLim = -textScale * float64(lMax) * labelCharFrac * lay.TMax
	lay.PlotMax = lay.TMax * plotRangeFrac
	lay.RightLim = lay.TMax * rightLimFrac
	lay.ValueX = lay.RightLim * valueXFrac
	lay.LeftHeaderX = -float64(len(header[0]))*headerCharFrac*lay.TMax + lay.LeftLim/2
	rightGap := lay.TMax * (valueGapFrac + nd*valueDigitFrac)
	lay.RightHeaderX = -float64(len(header[1]))*headerCharFrac*lay.TMax + lay.RightLim + rightGap
	lay.RuleEnd = lay.RightLim + lay.TMax*(ruleGapFrac+nd*ruleDigitFrac)

	// The drawn span plays the role of a tight bounding box: it covers
	// every text anchor plus a little slack.
	pad := 0.01 * lay.TMax
	lay.XMin = min(lay.LeftLim, lay.LeftHeaderX) - pad
	lay.XMax = max(lay.ValueX, lay.RuleEnd, lay.RightLim+rightGap) + pad
	return lay
}

// HorizBar draws the horizontal comparison chart for positive values
// and writes it to bar_chart.pdf in the working directory. labels and
// values pair up one row each, top to bottom; header titles the label
// and value columns.
func HorizBar(labels []string, values []float64, header [2]string, o BarOptions) error {
	fig, err := buildBarFigure(labels, values, header, o.withDefaults())
	if err != nil {
		return err
	}
	if err := fig.SavePDF(BarChartFile); err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{"file": BarChartFile, "rows": len(values)}).Debug("wrote bar chart")
	return nil
}

// buildBarFigure assembles the mini-panel stack. o must already carry
// its defaults.
func buildBarFigure(labels []string, values []float64, header [2]string, o BarOptions) (*figure.Figure, error) {
	if len(values) == 0 {
		return nil, errors.New("charts: no bar data")
	}
	if len(labels) != len(values) {
		return nil, fmt.Errorf("charts: %d labels for %d values", len(labels), len(values))
	}
	lay := computeBarLayout(labels, values, header, o.TextScale, o.Decimals)

	// Header text and rule overflow the top row; the top margin keeps
	// them on the canvas, as the tight bounding box did.
	topRoom := o.RowHeight * 11 / 10
	fig := figure.New(o.Width, o.RowHeight*vg.Length(len(values))+topRoom)
	fig.TopMargin = topRoom

	for i, v := range values {
		p := fig.AddPanel()
		band := plotter.XYs{{X: 0, Y: 1}, {X: lay.PlotMax, Y: 1}}
		if _, err := p.AddLine("", band, figure.LineOptions{Color: refGray, Width: vg.Points(3)}); err != nil {
			return nil, err
		}
		if err := p.AddMarkers(plotter.XYs{{X: v, Y: 1}}, figure.MarkerOptions{Color: o.MarkerColor}); err != nil {
			return nil, err
		}
		p.AddLabel(figure.Label{Text: labels[i], X: lay.LeftLim, Y: 1, YAlign: text.YCenter})
		p.AddLabel(figure.Label{
			Text:   fmt.Sprintf("%.*f", o.Decimals, v),
			X:      lay.ValueX,
			Y:      1,
			XAlign: text.XRight,
			YAlign: text.YCenter,
		})
		if i == 0 {
			p.AddLabel(figure.Label{Text: header[0], X: lay.LeftHeaderX, Y: headerY, Size: headerSize})
			p.AddLabel(figure.Label{Text: header[1], X: lay.RightHeaderX, Y: headerY, Size: headerSize})
			rule := plotter.XYs{{X: lay.LeftLim, Y: ruleY}, {X: lay.RuleEnd, Y: ruleY}}
			if _, err := p.AddLine("", rule, figure.LineOptions{Color: color.Black, Width: vg.Points(1.2), NoClip: true}); err != nil {
				return nil, err
			}
		}
		// Limits go last: adding data expands them.
		p.Plot.HideAxes()
		p.Plot.X.Min, p.Plot.X.Max = lay.XMin, lay.XMax
		p.Plot.Y.Min, p.Plot.Y.Max = rowYLo, rowYHi
	}
	return fig, nil
}
