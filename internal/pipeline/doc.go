// Package pipeline orchestrates the full flow from page photograph to
// ranked verse blocks.
//
// The stages run in a fixed order: load, ink-mask preprocessing,
// underline detection/filtering/merging, per-region text extraction,
// verse assembly, grouping and quality analysis. The first stage that
// fails short-circuits the rest; the Result reports which stage failed.
//
// # Failure Semantics
//
// Two failure classes exist. Fatal failures (unreadable image, entirely
// empty ink mask) mean the run can produce nothing. Recoverable
// zero-results (no underlines survive filtering, no region yields text,
// no text yields an identifier) are normal outcomes on pages without
// usable marks. Both return Success=false naming the stage; neither
// panics nor loses errors silently. Failures scoped to one underline
// degrade that underline to empty text and never abort the run.
package pipeline
