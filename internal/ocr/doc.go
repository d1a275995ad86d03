// Package ocr binds detected underlines to the text printed above them.
//
// The Binder interface is the boundary to the OCR engine: given an image
// and a region, return text or fail. TesseractBinder is the shipped
// implementation (gosseract/v2); tests substitute fakes. Everything else
// in the package is engine-agnostic: region geometry, the bounded worker
// pool with per-region timeouts, the region-result cache, and OCR text
// cleanup.
//
// # Failure Model
//
// Per-region failures never propagate. A region that errors, times out,
// or sits too close to the top page margin is bound to empty text and
// the run continues; the assembler skips empty bindings.
//
// # Prerequisites
//
// TesseractBinder requires Tesseract and its language data on the
// system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
package ocr
