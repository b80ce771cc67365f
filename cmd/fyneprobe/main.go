// fyneprobe opens a minimal window and closes it again, to check that the
// desktop environment can run figview at all before debugging anything
// figure-related.
package main

import (
	"flag"
	"time"

	fyne "fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/widget"
	"github.com/sirupsen/logrus"
)

func main() {
	var wait time.Duration
	flag.DurationVar(&wait, "wait", 5*time.Second, "how long to keep the probe window open")
	flag.Parse()

	logrus.Info("opening probe window")
	a := app.New()
	w := a.NewWindow("figview probe")
	w.SetContent(widget.NewLabel("figview probe window, closing shortly"))
	go func() {
		time.Sleep(wait)
		fyne.Do(func() { w.Close() })
	}()
	w.ShowAndRun()
	logrus.Info("probe window closed cleanly")
}
