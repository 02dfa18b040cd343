package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png" // registers the PNG decoder for DecodeConfig

	"github.com/go-pdf/fpdf"
)

// Placement is where the snapshot lands on the page, in millimetres
type Placement struct {
	X, Y          float64
	Width, Height float64
}

// Place scales an image of imgW x imgH pixels to fit a page of pageW x pageH
// by min(pageW/imgW, pageH/imgH), centred horizontally and top-aligned
func Place(pageW, pageH float64, imgW, imgH int) Placement {
	ratio := min(pageW/float64(imgW), pageH/float64(imgH))
	w := float64(imgW) * ratio
	h := float64(imgH) * ratio
	return Placement{X: (pageW - w) / 2, Y: 0, Width: w, Height: h}
}

// Package builds a one-page A4 portrait PDF holding the PNG snapshot
func Package(snapshot []byte) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(snapshot))
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return nil, fmt.Errorf("snapshot has no area (%dx%d)", cfg.Width, cfg.Height)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	place := Place(pageW, pageH, cfg.Width, cfg.Height)

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("snapshot", opts, bytes.NewReader(snapshot))
	pdf.ImageOptions("snapshot", place.X, place.Y, place.Width, place.Height, false, opts, 0, "")

	var out bytes.Buffer
	if err := pdf.Output(&out); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}
	return out.Bytes(), nil
}
