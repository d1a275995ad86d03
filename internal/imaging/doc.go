// Package imaging loads page photographs and turns them into binary ink
// masks for underline detection.
//
// The package owns the first pipeline stage: ImageCache decodes and
// caches page photos, and Preprocessor derives a Mask of probable ink
// pixels from each photo (greyscale, bilateral smoothing, adaptive
// thresholding, morphological cleanup). The Mask type also carries the
// rectangular morphology operators the underline detector builds on.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner,
// X increasing rightward and Y increasing downward. Region arguments
// use an inclusive top-left and an exclusive bottom-right.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. Masks are write-once: the
// preprocessing stage builds them, every later stage only reads them,
// and the morphology operators return new masks rather than mutating.
package imaging
