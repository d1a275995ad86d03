//go:build cgo

package ocr

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

// TesseractBinder extracts region text with the Tesseract OCR engine.
//
// Tesseract and the language data for the configured language must be
// installed on the system (e.g. tesseract-ocr and tesseract-ocr-eng on
// Debian/Ubuntu). Each call uses a fresh client; gosseract clients are
// not safe for concurrent reuse and the extractor runs several regions
// in parallel.
type TesseractBinder struct {
	language string
}

// NewTesseractBinder creates a binder for the given Tesseract language
// code (e.g. "eng").
func NewTesseractBinder(language string) *TesseractBinder {
	if language == "" {
		language = "eng"
	}
	return &TesseractBinder{language: language}
}

// ExtractRegion crops the region, hands it to Tesseract, and returns the
// recognized text. Tesseract needs a file path, so the crop goes through
// a temporary PNG that is removed before returning.
func (t *TesseractBinder) ExtractRegion(ctx context.Context, img image.Image, region Region) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	cropped := imaging.Crop(img, image.Rect(region.X1, region.Y1, region.X2, region.Y2))
	if cropped.Bounds().Empty() {
		return "", nil
	}

	tmpFile, err := os.CreateTemp("", "versemark-region-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, cropped); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to encode region image: %w", err)
	}
	tmpFile.Close()

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(t.language); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}
	if err := client.SetImage(tmpPath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return text, nil
}
