package detection

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/inkmark/versemark/internal/config"
	"github.com/inkmark/versemark/internal/imaging"
)

// Locator finds hand-drawn underlines in an ink mask.
//
// Detection isolates thin horizontal strokes with a bank of horizontal
// erosions, bridges broken strokes with a wide horizontal closing, and
// extracts candidate segments with a Hough transform. Filtering removes
// candidates that cannot be underlines (wrong angle, implausible length,
// page-edge noise, no printed text above them). Merging reconstructs
// each hand-drawn mark from the fragments it was detected as.
type Locator struct {
	cfg config.DetectConfig
	log *zap.Logger
}

// NewLocator creates a locator. A nil logger disables logging.
func NewLocator(cfg config.DetectConfig, log *zap.Logger) *Locator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Locator{cfg: cfg, log: log}
}

// Detect extracts raw candidate segments from the ink mask.
func (l *Locator) Detect(mask *imaging.Mask) []Segment {
	width := mask.Width

	// Horizontal erosion bank: several kernel widths so detection does
	// not depend on how long or thick the underline stroke is. Heights
	// 1-3px cover pen thickness; the union keeps whatever any kernel
	// isolated.
	var underlines *imaging.Mask
	for _, kh := range l.cfg.KernelHeights {
		for i, div := range l.cfg.KernelDivisors {
			kw := width / div
			if kw < l.cfg.MinKernelWidths[i] {
				kw = l.cfg.MinKernelWidths[i]
			}
			eroded := mask.ErodeRect(kw, kh)
			if underlines == nil {
				underlines = eroded
			} else {
				underlines = underlines.Union(eroded)
			}
		}
	}
	if underlines == nil {
		return nil
	}

	// Bridge small gaps inside a single stroke before the transform.
	closeW := width / l.cfg.CloseDivisor
	if closeW < l.cfg.MinCloseWidth {
		closeW = l.cfg.MinCloseWidth
	}
	cleaned := underlines.CloseRect(closeW, 1)

	minLen := width / l.cfg.MinLineDivisor
	if minLen < l.cfg.MinLineFloor {
		minLen = l.cfg.MinLineFloor
	}

	segments := houghSegments(cleaned, l.cfg.HoughThreshold, minLen, l.cfg.MaxLineGap)
	l.log.Debug("detected candidate underlines", zap.Int("count", len(segments)))
	return segments
}

// Filter keeps only segments that look like genuine underlines. When an
// ink mask is given, a segment must additionally have printed text
// directly above it; stray page-structure lines (column rules, binding
// shadows) have nothing written above them.
func (l *Locator) Filter(segments []Segment, width, height int, mask *imaging.Mask) []Segment {
	kept := make([]Segment, 0, len(segments))
	byGeometry := 0
	byText := 0

	minLen := float64(width) * l.cfg.MinLengthFrac
	maxLen := float64(width) * l.cfg.MaxLengthFrac

	for _, s := range segments {
		if s.X1 == s.X2 && s.Y1 == s.Y2 {
			byGeometry++
			continue
		}
		angle := math.Abs(s.AngleDegrees())
		if angle > l.cfg.AngleTolerance && math.Abs(angle-180) > l.cfg.AngleTolerance {
			byGeometry++
			continue
		}
		length := s.Length()
		if length < minLen || length > maxLen {
			byGeometry++
			continue
		}
		if s.Y1 <= l.cfg.EdgeMargin || s.Y1 >= height-l.cfg.EdgeMargin {
			byGeometry++
			continue
		}
		if mask != nil && !l.hasTextAbove(s, mask) {
			byText++
			l.log.Debug("dropped line with no text above",
				zap.Int("y", s.Y1))
			continue
		}
		kept = append(kept, s)
	}

	l.log.Info("filtered underline candidates",
		zap.Int("kept", len(kept)),
		zap.Int("by_geometry", byGeometry),
		zap.Int("by_text_absence", byText))
	return kept
}

// hasTextAbove reports whether the band immediately above the segment
// contains enough ink to be printed text.
func (l *Locator) hasTextAbove(s Segment, mask *imaging.Mask) bool {
	yStart := s.Y1 - l.cfg.TextSearchHeight
	if yStart < 0 {
		yStart = 0
	}
	density := mask.Density(s.X1, yStart, s.X2, s.Y1)
	return density > l.cfg.TextDensityMin
}

// Merge collapses nearby fragments into single underline marks. A
// hand-drawn underline is frequently detected as several broken
// segments; grouping by vertical proximity and overlapping horizontal
// span reconstructs the drawn mark. The result carries stable indices
// in vertical page order and is idempotent under re-merging.
func (l *Locator) Merge(segments []Segment) []Underline {
	if len(segments) == 0 {
		return nil
	}

	sorted := make([]Segment, len(segments))
	copy(sorted, segments)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Y1 < sorted[j].Y1
	})

	merged := make([]Segment, 0, len(sorted))
	group := []Segment{sorted[0]}

	for _, s := range sorted[1:] {
		prev := group[len(group)-1]
		yClose := abs(s.Y1-prev.Y1) <= l.cfg.MergeYThreshold
		xOverlap := s.X1 <= prev.X2+l.cfg.MergeXGap && prev.X1 <= s.X2+l.cfg.MergeXGap

		if yClose && xOverlap {
			group = append(group, s)
		} else {
			merged = append(merged, collapseGroup(group))
			group = []Segment{s}
		}
	}
	merged = append(merged, collapseGroup(group))

	underlines := make([]Underline, len(merged))
	for i, s := range merged {
		underlines[i] = Underline{Segment: s, Index: i}
	}

	l.log.Info("merged underline fragments",
		zap.Int("segments", len(segments)),
		zap.Int("underlines", len(underlines)))
	return underlines
}

// collapseGroup flattens a group of fragments into one segment spanning
// the group's horizontal extent at its mean vertical position.
func collapseGroup(group []Segment) Segment {
	if len(group) == 1 {
		return group[0]
	}

	xMin := group[0].X1
	xMax := group[0].X2
	ySum := 0
	for _, s := range group {
		if s.X1 < xMin {
			xMin = s.X1
		}
		if s.X2 > xMax {
			xMax = s.X2
		}
		ySum += s.Y1 + s.Y2
	}
	yAvg := ySum / (2 * len(group))

	return NewSegment(xMin, yAvg, xMax, yAvg)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
