// Package verse assembles text-bound underlines into confidence-scored
// verse blocks.
//
// Identifier parsing tries a fixed sequence of reference shapes (plain
// number, chapter:verse, book chapter:verse, roman numeral, "Chapter N")
// and the first match wins. Assembly scans underlines in vertical page
// order: an identifier starts a block, identifier-less text continues
// the open block, and vertically adjacent blocks are later grouped into
// one. The scorer rates each block with an additive model over content
// length, identifier shape and validity, character composition, text
// entropy, OCR-artifact detection and page-boundary detection, always
// clamped to [0, 1].
//
// The chapter/verse bounds behind the validity check are heuristic
// approximations of canonical limits and configurable; they are not
// authoritative for arbitrary canons.
package verse
