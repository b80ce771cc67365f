package main

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/eirikurj/niceplots/src/legend"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "series.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestLoadSeriesCSV(t *testing.T) {
	path := writeCSV(t, "t,alpha,beta\n0,1.5,-1\n1,2.5,-2\n2,3.5,-3\n")
	x, names, ys, err := loadSeries(path)
	if err != nil {
		t.Fatalf("loadSeries: %v", err)
	}
	if diff := cmp.Diff([]float64{0, 1, 2}, x); diff != "" {
		t.Fatalf("x (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"alpha", "beta"}, names); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]float64{{1.5, 2.5, 3.5}, {-1, -2, -3}}, ys); diff != "" {
		t.Fatalf("series (-want +got):\n%s", diff)
	}
}

func TestLoadSeriesErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "header only", content: "t,alpha\n"},
		{name: "single column", content: "t\n0\n1\n"},
		{name: "bad value", content: "t,alpha\n0,fast\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := loadSeries(writeCSV(t, tt.content)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadSeriesDemo(t *testing.T) {
	x, names, ys, err := loadSeries("")
	if err != nil {
		t.Fatalf("loadSeries: %v", err)
	}
	if len(names) != len(ys) || len(names) == 0 {
		t.Fatalf("demo shape: %d names, %d series", len(names), len(ys))
	}
	for i := range ys {
		if len(ys[i]) != len(x) {
			t.Fatalf("demo series %d has %d points for %d x values", i, len(ys[i]), len(x))
		}
	}
}

func TestBuildViewerGeometry(t *testing.T) {
	x, names, ys, _ := loadSeries("")
	v, err := buildViewer("demo", x, names, ys, false)
	if err != nil {
		t.Fatalf("buildViewer: %v", err)
	}

	b := v.preview.Bounds()
	if b.Dx() != previewW || b.Dy() != previewH {
		t.Fatalf("preview size = %dx%d, want %dx%d", b.Dx(), b.Dy(), previewW, previewH)
	}
	if !v.rect.Valid() {
		t.Fatalf("plot rect invalid: %+v", v.rect)
	}
	if v.rect.X0 < 0 || v.rect.Y0 < 0 || v.rect.X1 > previewW || v.rect.Y1 > previewH {
		t.Fatalf("plot rect escapes the preview: %+v", v.rect)
	}

	if len(v.labels) != len(names) {
		t.Fatalf("%d labels for %d series", len(v.labels), len(names))
	}
	pts := legend.GridCoords(len(names))
	for i, lbl := range v.labels {
		if !lbl.Frac {
			t.Fatalf("label %d not in fraction coordinates", i)
		}
		if lbl.X != pts[i].X || lbl.Y != pts[i].Y {
			t.Fatalf("label %d at (%v, %v), want grid (%v, %v)", i, lbl.X, lbl.Y, pts[i].X, pts[i].Y)
		}
	}
}

func TestBuildViewerMono(t *testing.T) {
	x, names, ys, _ := loadSeries("")
	v, err := buildViewer("", x, names, ys, true)
	if err != nil {
		t.Fatalf("buildViewer: %v", err)
	}
	for i, lbl := range v.labels {
		if lbl.Color != color.Black {
			t.Fatalf("label %d color = %v, want black", i, lbl.Color)
		}
	}
}

func TestBuildViewerValidation(t *testing.T) {
	if _, err := buildViewer("", []float64{0, 1}, []string{"a"}, [][]float64{{1, 2}, {3, 4}}, false); err == nil {
		t.Fatal("expected error for name/series mismatch")
	}
	if _, err := buildViewer("", []float64{0, 1}, []string{"a"}, [][]float64{{1}}, false); err == nil {
		t.Fatal("expected error for series length mismatch")
	}
}
