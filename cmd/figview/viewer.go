package main

import (
	"fmt"
	"image"

	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/eirikurj/niceplots/cmd/figview/uihelpers"
	"github.com/eirikurj/niceplots/src/figure"
	"github.com/eirikurj/niceplots/src/legend"
)

// Preview size in pixels. vgimg rasterizes at 96 DPI, so the canvas size
// in points is pixels * 72 / 96.
const (
	previewDPI = 96
	previewW   = 640
	previewH   = 480
)

func pxToPt(px float64) vg.Length { return vg.Length(px * 72 / previewDPI) }

func ptToPx(pt vg.Length) float64 { return float64(pt) * previewDPI / 72 }

// viewer ties the rendered preview to the label handles the window moves.
type viewer struct {
	fig     *figure.Figure
	panel   *figure.Panel
	preview image.Image
	rect    uihelpers.Rect
	labels  []*figure.Label
}

// buildViewer plots one line per named series, renders the clean preview,
// and then attaches the legend labels on the placement grid. The preview
// is rendered before the labels exist so they appear only as the
// draggable widgets layered on top of it.
func buildViewer(title string, x []float64, names []string, ys [][]float64, mono bool) (*viewer, error) {
	if len(names) != len(ys) {
		return nil, fmt.Errorf("%d names for %d series", len(names), len(ys))
	}
	fig := figure.New(pxToPt(previewW), pxToPt(previewH))
	p := fig.AddPanel()
	p.Plot.Title.Text = title
	for i, name := range names {
		if len(ys[i]) != len(x) {
			return nil, fmt.Errorf("series %q: %d points for %d x values", name, len(ys[i]), len(x))
		}
		xys := make(plotter.XYs, len(x))
		for j := range x {
			xys[j] = plotter.XY{X: x[j], Y: ys[i][j]}
		}
		if _, err := p.AddLine(name, xys, figure.LineOptions{}); err != nil {
			return nil, err
		}
	}
	figure.AdjustSpines(p, figure.DefaultSpineOptions())

	v := &viewer{fig: fig, panel: p}
	v.preview = fig.Image()
	v.rect = plotRect(fig, p)
	v.labels = legend.PlaceGrid(p, !mono)
	return v, nil
}

// plotRect computes where the panel's data area lands in the preview
// image, in pixels. The figure has a single panel and no margins, so the
// panel's cell is the whole canvas.
func plotRect(fig *figure.Figure, p *figure.Panel) uihelpers.Rect {
	full := draw.Canvas{Rectangle: vg.Rectangle{Max: vg.Point{X: fig.Width, Y: fig.Height}}}
	dc := p.Plot.DataCanvas(full)
	return uihelpers.Rect{
		X0: ptToPx(dc.Min.X),
		Y0: ptToPx(fig.Height) - ptToPx(dc.Max.Y),
		X1: ptToPx(dc.Max.X),
		Y1: ptToPx(fig.Height) - ptToPx(dc.Min.Y),
	}
}
