package ocr

import (
	"context"
	"image"
	"strings"
)

// Region is the rectangular image area bound to one underline: the
// (optionally expanded) underline span, reaching a fixed search height
// above the mark and a little below it for context.
type Region struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// Binder extracts text from an image region. It is the external OCR
// collaborator: a potentially slow remote or native call that may fail.
// Implementations must return ("", nil) rather than an error for a
// region that simply contains no recognizable text.
type Binder interface {
	ExtractRegion(ctx context.Context, img image.Image, region Region) (string, error)
}

// RegionText associates one underline index with its extracted text.
// The text may be empty: extraction failed, timed out, or the underline
// sat too close to the top margin to be worth querying.
type RegionText struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// Binding is the ordered association from underline index to extracted
// text, one entry per underline, sorted by index. Assembly depends on
// this ordering being the vertical page order of the underlines.
type Binding []RegionText

// Get returns the text bound to an underline index.
func (b Binding) Get(index int) string {
	for _, rt := range b {
		if rt.Index == index {
			return rt.Text
		}
	}
	return ""
}

// NonEmpty counts entries with extracted text.
func (b Binding) NonEmpty() int {
	n := 0
	for _, rt := range b {
		if strings.TrimSpace(rt.Text) != "" {
			n++
		}
	}
	return n
}
