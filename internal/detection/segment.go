package detection

import "math"

// Segment is a detected line segment between two endpoints. Segments are
// value types: filtering and merging construct new segments rather than
// mutating, so a run's detection history stays traceable.
//
// Endpoints are canonicalized so X1 <= X2; a segment surviving the
// filter stage is never degenerate (both endpoints equal).
type Segment struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

// NewSegment builds a segment with canonical endpoint order.
func NewSegment(x1, y1, x2, y2 int) Segment {
	if x2 < x1 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	return Segment{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Length returns the Euclidean endpoint distance.
func (s Segment) Length() float64 {
	dx := float64(s.X2 - s.X1)
	dy := float64(s.Y2 - s.Y1)
	return math.Sqrt(dx*dx + dy*dy)
}

// AngleDegrees returns the angle from horizontal in degrees. With
// canonical endpoint order the result lies in [-90, 90].
func (s Segment) AngleDegrees() float64 {
	return math.Atan2(float64(s.Y2-s.Y1), float64(s.X2-s.X1)) * 180 / math.Pi
}

// Underline is a finalized, merged segment with a stable index. Indices
// follow vertical page order; downstream assembly depends on that
// ordering, so underlines are read-only after the merge step.
type Underline struct {
	Segment
	Index int `json:"index"`
}

// Y returns the representative vertical position of the underline.
func (u Underline) Y() int {
	return u.Y1
}
