package main

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	_ "image/png" // register PNG decoder
)

// TestScreenshotsMode renders headlessly and checks both artifacts land
// in the output directory.
func TestScreenshotsMode(t *testing.T) {
	x, names, ys, _ := loadSeries("")
	v, err := buildViewer("demo", x, names, ys, false)
	if err != nil {
		t.Fatalf("buildViewer: %v", err)
	}
	outDir := t.TempDir()
	if err := RunScreenshotsMode(v, outDir, true); err != nil {
		t.Fatalf("RunScreenshotsMode: %v", err)
	}

	f, err := os.Open(filepath.Join(outDir, "preview.png"))
	if err != nil {
		t.Fatalf("open preview: %v", err)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if cfg.Width != previewW || cfg.Height != previewH {
		t.Fatalf("preview size = %dx%d, want %dx%d", cfg.Width, cfg.Height, previewW, previewH)
	}

	pdf, err := os.ReadFile(filepath.Join(outDir, figureFile))
	if err != nil {
		t.Fatalf("read %s: %v", figureFile, err)
	}
	if len(pdf) < 4 || string(pdf[:4]) != "%PDF" {
		t.Fatalf("%s does not look like a PDF", figureFile)
	}
}
