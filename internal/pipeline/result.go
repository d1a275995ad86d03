package pipeline

import (
	"github.com/inkmark/versemark/internal/detection"
	"github.com/inkmark/versemark/internal/imaging"
	"github.com/inkmark/versemark/internal/ocr"
	"github.com/inkmark/versemark/internal/verse"
)

// Result is the outcome of one pipeline run over one page photograph.
type Result struct {
	Success bool `json:"success"`

	// Underlines is the number of merged underline marks found.
	Underlines int `json:"underlines"`

	// TextRegions is the number of underline regions that yielded text.
	TextRegions int `json:"text_regions"`

	// Verses is the final verse blocks, in vertical page order.
	Verses []verse.Block `json:"verses"`

	// Analysis summarizes run quality across all verses.
	Analysis verse.Analysis `json:"analysis"`

	// Error is the human-readable stage failure when Success is false.
	Error string `json:"error,omitempty"`

	diag *Diagnostics
}

// Diagnostics exposes intermediate artifacts of a run, read-only, for
// debugging tooling. Nil fields mean the run never reached that stage.
type Diagnostics struct {
	mask       *imaging.Mask
	underlines []detection.Underline
	binding    ocr.Binding
}

// Diagnostics returns the run's intermediate artifacts, or nil when the
// run failed before producing any.
func (r *Result) Diagnostics() *Diagnostics {
	return r.diag
}

// InkMask returns the binary ink mask, or nil.
func (d *Diagnostics) InkMask() *imaging.Mask {
	if d == nil {
		return nil
	}
	return d.mask
}

// Underlines returns the merged underlines, or nil.
func (d *Diagnostics) Underlines() []detection.Underline {
	if d == nil {
		return nil
	}
	return d.underlines
}

// Binding returns the underline-to-text association, or nil.
func (d *Diagnostics) Binding() ocr.Binding {
	if d == nil {
		return nil
	}
	return d.binding
}
