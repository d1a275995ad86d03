package pipeline

import (
	"errors"
	"fmt"
)

// Recoverable zero-result conditions. These end a run early with
// Success=false but are expected outcomes on pages without usable
// marks, not faults.
var (
	ErrEmptyMask    = errors.New("ink mask is empty")
	ErrNoUnderlines = errors.New("no underlines found")
	ErrNoText       = errors.New("no text extracted from any underline region")
	ErrNoVerses     = errors.New("no verses detected")
)

// Stage names used in error reporting.
const (
	StageLoad       = "image load"
	StagePreprocess = "preprocessing"
	StageDetect     = "underline detection"
	StageExtract    = "text extraction"
	StageAssemble   = "verse assembly"
)

// StageError records which pipeline stage failed. The pipeline
// short-circuits on the first stage error and surfaces it in the run
// result.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) *StageError {
	return &StageError{Stage: stage, Err: err}
}
