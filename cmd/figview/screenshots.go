package main

import (
	"bytes"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
)

// RunScreenshotsMode renders the preview and the saved figure into outDir
// without creating a window, for docs and CI.
func RunScreenshotsMode(v *viewer, outDir string, hints bool) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create out dir: %w", err)
	}
	img := v.preview
	if hints {
		img = drawHint(img, hintText)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("png encode preview: %w", err)
	}
	if err := os.WriteFile(filepath.Join(outDir, "preview.png"), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write preview: %w", err)
	}
	return v.fig.SavePDF(filepath.Join(outDir, figureFile))
}
