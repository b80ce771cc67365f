package main

import (
	"flag"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"

	"github.com/eirikurj/niceplots/cmd/figview/uihelpers"
)

// figureFile receives the figure when the window closes.
const figureFile = "figure.pdf"

const hintText = "Drag the labels into place; closing the window saves " + figureFile

func main() {
	var (
		fileFlag  string
		titleFlag string
		monoFlag  bool
		hintsFlag bool
		shotFlag  string
	)
	flag.StringVar(&fileFlag, "file", "", "CSV of line series; header row names the columns, first column is x")
	flag.StringVar(&titleFlag, "title", "", "figure title")
	flag.BoolVar(&monoFlag, "mono", false, "black legend labels instead of line colors")
	flag.BoolVar(&hintsFlag, "hints", true, "stamp a usage hint on the preview")
	flag.StringVar(&shotFlag, "screenshot", "", "render preview.png and "+figureFile+" into this directory and exit")
	flag.Parse()

	x, names, ys, err := loadSeries(fileFlag)
	if err != nil {
		logrus.WithError(err).Fatal("load series")
	}
	v, err := buildViewer(titleFlag, x, names, ys, monoFlag)
	if err != nil {
		logrus.WithError(err).Fatal("build figure")
	}

	if shotFlag != "" {
		if err := RunScreenshotsMode(v, shotFlag, hintsFlag); err != nil {
			logrus.WithError(err).Fatal("screenshots")
		}
		return
	}
	runWindow(v, hintsFlag)
}

// runWindow shows the preview with one draggable label per line and
// saves the figure when the window closes.
func runWindow(v *viewer, hints bool) {
	a := app.NewWithID("com.eirikurj.figview")
	w := a.NewWindow("figview")

	img := v.preview
	if hints {
		img = drawHint(img, hintText)
	}
	imgCanvas := canvas.NewImageFromImage(img)
	imgCanvas.FillMode = canvas.ImageFillContain
	imgCanvas.SetMinSize(fyne.NewSize(float32(v.preview.Bounds().Dx()), float32(v.preview.Bounds().Dy())))

	status := widget.NewLabel("")
	overlay := container.NewWithoutLayout()
	for _, lbl := range v.labels {
		d := newDragLabel(lbl.Text, lbl.Color, func(d *dragLabel) {
			fx, fy := v.rect.PixelToFrac(d.center())
			lbl.X = uihelpers.Round6(fx)
			lbl.Y = uihelpers.Round6(fy)
			status.SetText(lbl.Text + " " + uihelpers.FormatFrac(fx, fy))
		})
		d.moveCenter(v.rect.FracToPixel(lbl.X, lbl.Y))
		overlay.Add(d)
	}

	w.SetContent(container.NewBorder(nil, status, nil, nil, container.NewStack(imgCanvas, overlay)))
	w.SetFixedSize(true)
	w.SetOnClosed(func() {
		if err := v.fig.SavePDF(figureFile); err != nil {
			logrus.WithError(err).Error("save figure")
			return
		}
		logrus.Infof("wrote %s", figureFile)
	})
	w.ShowAndRun()
}
