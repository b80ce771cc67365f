package main

import (
	"image/color"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// 12 pt at the preview's 96 DPI, matching the size the figure renders.
const labelTextSize = 16

// dragLabel is one legend label floating over the preview. Dragging moves
// it; onMoved fires when the drag ends.
type dragLabel struct {
	widget.BaseWidget
	text    *canvas.Text
	onMoved func(*dragLabel)
}

func newDragLabel(text string, col color.Color, onMoved func(*dragLabel)) *dragLabel {
	d := &dragLabel{text: canvas.NewText(text, col), onMoved: onMoved}
	d.text.TextSize = labelTextSize
	d.ExtendBaseWidget(d)
	return d
}

func (d *dragLabel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(d.text)
}

func (d *dragLabel) Dragged(ev *fyne.DragEvent) {
	d.Move(d.Position().Add(ev.Dragged))
}

func (d *dragLabel) DragEnd() {
	if d.onMoved != nil {
		d.onMoved(d)
	}
}

// center returns the label's midpoint in overlay coordinates.
func (d *dragLabel) center() (px, py float64) {
	pos := d.Position()
	sz := d.Size()
	return float64(pos.X + sz.Width/2), float64(pos.Y + sz.Height/2)
}

// moveCenter sizes the label and places its midpoint at (px, py).
func (d *dragLabel) moveCenter(px, py float64) {
	sz := d.MinSize()
	d.Resize(sz)
	d.Move(fyne.NewPos(float32(px)-sz.Width/2, float32(py)-sz.Height/2))
}
