// Package debug renders visual overlays of a pipeline run's
// intermediate artifacts: the ink mask, numbered underlines, text
// extraction regions, and colour-coded verse blocks.
//
// The package is a read-only consumer of the core; overlay functions
// take the run's diagnostics and return new images without touching
// pipeline state. Persisting the overlays to disk is the caller's
// concern.
package debug
