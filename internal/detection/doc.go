// Package detection locates hand-drawn underlines in a binary ink mask.
//
// The locator runs a three-stage funnel:
//
//  1. Detect: a bank of horizontal morphological erosions isolates thin
//     horizontal strokes regardless of pen thickness, a wide horizontal
//     closing bridges gaps inside a stroke, and a Hough transform turns
//     the cleaned mask into candidate segments.
//  2. Filter: geometric checks (angle from horizontal, length relative
//     to page width, distance from the page edges) plus an ink-evidence
//     check that the band above a segment actually contains printed
//     text. Page-structure lines fail the last check.
//  3. Merge: fragments of the same hand-drawn mark are grouped by
//     vertical proximity and overlapping horizontal span, then collapsed
//     into single underlines with stable top-to-bottom indices.
//
// Empty output at any stage is a normal zero-result, not an error; the
// pipeline reports it as "no underlines found".
//
// # Coordinate System
//
// Same convention as the imaging package: origin at top-left, X
// rightward, Y downward.
package detection
