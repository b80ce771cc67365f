// Package figure provides the small figure/panel model the chart
// helpers build on: vertically stacked panels that remember the lines
// plotted through them and carry movable text annotations.
package figure

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"os"

	"github.com/pplcc/plotext"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
)

const (
	// DefaultWidth and DefaultHeight are used when New is given
	// non-positive dimensions.
	DefaultWidth  = 6.4 * vg.Inch
	DefaultHeight = 4.8 * vg.Inch

	// DefaultMarkerRadius matches a 10 point marker diameter.
	DefaultMarkerRadius vg.Length = 5
	// DefaultMarkerEdge is the ring width used when MarkerOptions.Edge
	// is set without an explicit width.
	DefaultMarkerEdge vg.Length = 1.5
)

// Line is the record of one plotted series.
type Line struct {
	Label string
	Color color.Color
	XYs   plotter.XYs
}

// Label is a text annotation on a panel. With Frac set, X and Y are
// axes-fraction coordinates in [0, 1]; otherwise they are data
// coordinates. Labels are drawn after all plotters and are never
// clipped to the axes rectangle.
type Label struct {
	Text   string
	X, Y   float64
	Frac   bool
	Color  color.Color // nil inherits the axis label color
	Size   vg.Length   // font size in points; zero keeps the default
	XAlign text.XAlignment
	YAlign text.YAlignment
}

// LineOptions controls AddLine. The zero value means the next color in
// the plotutil cycle, the default stroke width, and normal clipping.
type LineOptions struct {
	Color color.Color
	Width vg.Length
	// NoClip strokes the polyline without clipping it to the axes
	// rectangle, matplotlib's clip_on=False.
	NoClip bool
}

// MarkerOptions controls AddMarkers.
type MarkerOptions struct {
	Color     color.Color // nil draws black markers
	Edge      color.Color // nil means no edge ring
	Radius    vg.Length   // <=0 means DefaultMarkerRadius
	EdgeWidth vg.Length   // <=0 means DefaultMarkerEdge when Edge is set
}

// Panel is one set of axes inside a Figure. It wraps a gonum plot and
// records the lines plotted through it so the legend helpers can find
// them, the way matplotlib exposes ax.lines.
type Panel struct {
	Plot *plot.Plot
	// Name is drawn horizontally in the figure's left margin, playing
	// the role of a horizontal ylabel.
	Name string

	lines  []*Line
	labels []*Label
}

func newPanel() *Panel {
	return &Panel{Plot: plot.New()}
}

// AddLine plots xys as a line and records it.
func (p *Panel) AddLine(label string, xys plotter.XYs, o LineOptions) (*Line, error) {
	if len(xys) == 0 {
		return nil, fmt.Errorf("add line %q: empty series", label)
	}
	sty := plotter.DefaultLineStyle
	sty.Color = o.Color
	if sty.Color == nil {
		sty.Color = plotutil.Color(len(p.lines))
	}
	if o.Width > 0 {
		sty.Width = o.Width
	}
	data := make(plotter.XYs, len(xys))
	copy(data, xys)
	if o.NoClip {
		p.Plot.Add(rawLine{xys: data, sty: sty})
	} else {
		ln, err := plotter.NewLine(data)
		if err != nil {
			return nil, fmt.Errorf("add line %q: %w", label, err)
		}
		ln.LineStyle = sty
		p.Plot.Add(ln)
	}
	l := &Line{Label: label, Color: sty.Color, XYs: data}
	p.lines = append(p.lines, l)
	return l, nil
}

// AddMarkers draws circular markers at xys. Markers are not recorded
// as a line, so legend helpers skip them.
func (p *Panel) AddMarkers(xys plotter.XYs, o MarkerOptions) error {
	if len(xys) == 0 {
		return errors.New("add markers: empty series")
	}
	if o.Color == nil {
		o.Color = color.Black
	}
	if o.Radius <= 0 {
		o.Radius = DefaultMarkerRadius
	}
	if o.Edge != nil && o.EdgeWidth <= 0 {
		o.EdgeWidth = DefaultMarkerEdge
	}
	data := make(plotter.XYs, len(xys))
	copy(data, xys)
	p.Plot.Add(marks{xys: data, opts: o})
	return nil
}

// AddLabel attaches a text annotation and returns a handle whose
// fields may be mutated up until the figure is rendered.
func (p *Panel) AddLabel(l Label) *Label {
	lp := &l
	p.labels = append(p.labels, lp)
	return lp
}

// Lines returns the recorded lines in plot order.
func (p *Panel) Lines() []*Line { return p.lines }

// Labels returns the attached annotations in insertion order.
func (p *Panel) Labels() []*Label { return p.labels }

// DataRange reports the extent of all recorded lines. ok is false when
// the panel has no line data.
func (p *Panel) DataRange() (xmin, xmax, ymin, ymax float64, ok bool) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)
	for _, l := range p.lines {
		x0, x1, y0, y1 := plotter.XYRange(l.XYs)
		xmin, xmax = min(xmin, x0), max(xmax, x1)
		ymin, ymax = min(ymin, y0), max(ymax, y1)
	}
	return xmin, xmax, ymin, ymax, xmin <= xmax
}

func (p *Panel) drawLabels(c draw.Canvas) {
	trX, trY := p.Plot.Transforms(&c)
	for _, l := range p.labels {
		sty := p.Plot.X.Label.TextStyle
		sty.XAlign = l.XAlign
		sty.YAlign = l.YAlign
		if l.Color != nil {
			sty.Color = l.Color
		}
		if l.Size > 0 {
			sty.Font.Size = l.Size
		}
		pt := vg.Point{X: trX(l.X), Y: trY(l.Y)}
		if l.Frac {
			pt = vg.Point{
				X: c.Min.X + vg.Length(l.X)*(c.Max.X-c.Min.X),
				Y: c.Min.Y + vg.Length(l.Y)*(c.Max.Y-c.Min.Y),
			}
		}
		c.FillText(sty, pt, l.Text)
	}
}

// Figure is a vertical stack of equally sized panels rendered to one
// canvas.
type Figure struct {
	Width  vg.Length
	Height vg.Length
	// LeftMargin reserves horizontal space left of every panel for
	// panel names and other out-of-axes text.
	LeftMargin vg.Length
	// TopMargin reserves vertical space above the first panel for text
	// drawn beyond its upper axis limit.
	TopMargin vg.Length

	Panels []*Panel
}

// New returns an empty figure. Non-positive dimensions fall back to
// DefaultWidth and DefaultHeight.
func New(w, h vg.Length) *Figure {
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return &Figure{Width: w, Height: h}
}

// AddPanel appends a new empty panel below the existing ones.
func (f *Figure) AddPanel() *Panel {
	p := newPanel()
	f.Panels = append(f.Panels, p)
	return p
}

// Draw renders all panels onto dc, top panel first.
func (f *Figure) Draw(dc draw.Canvas) {
	if len(f.Panels) == 0 {
		return
	}
	inner := draw.Crop(dc, f.LeftMargin, 0, 0, -f.TopMargin)
	rows := make([][]*plot.Plot, len(f.Panels))
	heights := make([]float64, len(f.Panels))
	for i, p := range f.Panels {
		rows[i] = []*plot.Plot{p.Plot}
		heights[i] = 1
	}
	tbl := plotext.Table{RowHeights: heights, ColWidths: []float64{1}}
	cells := tbl.Align(rows, inner)
	for i, p := range f.Panels {
		cell := cells[i][0]
		p.Plot.Draw(cell)
		p.drawLabels(p.Plot.DataCanvas(cell))
		if p.Name != "" {
			f.drawName(dc, p, cell)
		}
	}
}

// drawName writes the panel name into the left margin, vertically
// centered on the panel, left aligned so names line up across panels.
func (f *Figure) drawName(dc draw.Canvas, p *Panel, cell draw.Canvas) {
	sty := p.Plot.Y.Label.TextStyle
	sty.Rotation = 0
	sty.XAlign = text.XLeft
	sty.YAlign = text.YCenter
	dc.FillText(sty, vg.Point{X: dc.Min.X, Y: (cell.Min.Y + cell.Max.Y) / 2}, p.Name)
}

// Image renders the figure into an in-memory raster at the default
// DPI.
func (f *Figure) Image() image.Image {
	c := vgimg.New(f.Width, f.Height)
	f.Draw(draw.New(c))
	return c.Image()
}

// SavePNG writes the figure to path as a PNG.
func (f *Figure) SavePNG(path string) (err error) {
	c := vgimg.New(f.Width, f.Height)
	f.Draw(draw.New(c))
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	png := vgimg.PngCanvas{Canvas: c}
	if _, err := png.WriteTo(w); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{"file": path, "panels": len(f.Panels)}).Debug("figure saved")
	return nil
}

// SavePDF writes the figure to path as a PDF.
func (f *Figure) SavePDF(path string) (err error) {
	c := vgpdf.New(f.Width, f.Height)
	f.Draw(draw.New(c))
	w, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := w.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	if _, err := c.WriteTo(w); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{"file": path, "panels": len(f.Panels)}).Debug("figure saved")
	return nil
}

// rawLine strokes a polyline without clipping it to the data
// rectangle.
type rawLine struct {
	xys plotter.XYs
	sty draw.LineStyle
}

func (r rawLine) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	pts := make([]vg.Point, len(r.xys))
	for i, xy := range r.xys {
		pts[i] = vg.Point{X: trX(xy.X), Y: trY(xy.Y)}
	}
	c.StrokeLines(r.sty, pts)
}

func (r rawLine) DataRange() (xmin, xmax, ymin, ymax float64) {
	return plotter.XYRange(r.xys)
}

// marks draws filled circle markers, optionally ringed with an edge
// color, without clipping. Markers drawn after lines sit on top of
// them.
type marks struct {
	xys  plotter.XYs
	opts MarkerOptions
}

func (m marks) Plot(c draw.Canvas, plt *plot.Plot) {
	// CircleGlyph fills with the current canvas color; set it here since
	// the clipping Canvas.DrawGlyph wrapper is bypassed on purpose.
	trX, trY := plt.Transforms(&c)
	for _, xy := range m.xys {
		pt := vg.Point{X: trX(xy.X), Y: trY(xy.Y)}
		if m.opts.Edge != nil {
			c.SetColor(m.opts.Edge)
			draw.CircleGlyph{}.DrawGlyph(&c, draw.GlyphStyle{Radius: m.opts.Radius + m.opts.EdgeWidth}, pt)
		}
		c.SetColor(m.opts.Color)
		draw.CircleGlyph{}.DrawGlyph(&c, draw.GlyphStyle{Radius: m.opts.Radius}, pt)
	}
}

func (m marks) DataRange() (xmin, xmax, ymin, ymax float64) {
	return plotter.XYRange(m.xys)
}
