package detection

import (
	"math"
	"sort"

	"github.com/inkmark/versemark/internal/imaging"
)

// maxSegments caps the number of segments returned by one transform run.
// Pages with more candidate lines than this are pathological scans.
const maxSegments = 50

type houghPoint struct {
	x, y int
}

// houghSegments runs a probabilistic-style Hough transform over a binary
// mask and extracts line segments.
//
// A standard rho/theta accumulator is voted by every ink pixel, local
// maxima above threshold become candidate lines, and each candidate is
// then broken into concrete segments by walking its supporting pixels in
// order along the line: a jump larger than maxGap splits the walk, and
// runs shorter than minLength are dropped.
func houghSegments(mask *imaging.Mask, threshold, minLength, maxGap int) []Segment {
	width := mask.Width
	height := mask.Height

	points := make([]houghPoint, 0)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if mask.Pix[y][x] {
				points = append(points, houghPoint{x, y})
			}
		}
	}
	if len(points) == 0 {
		return nil
	}

	maxDist := int(math.Sqrt(float64(width*width + height*height)))
	numAngles := 180
	accumulator := make([][]int, maxDist*2)
	for i := range accumulator {
		accumulator[i] = make([]int, numAngles)
	}

	sinTab := make([]float64, numAngles)
	cosTab := make([]float64, numAngles)
	for theta := 0; theta < numAngles; theta++ {
		angle := float64(theta) * math.Pi / 180.0
		sinTab[theta] = math.Sin(angle)
		cosTab[theta] = math.Cos(angle)
	}

	for _, p := range points {
		for theta := 0; theta < numAngles; theta++ {
			rho := float64(p.x)*cosTab[theta] + float64(p.y)*sinTab[theta]
			rhoIdx := int(rho) + maxDist
			if rhoIdx >= 0 && rhoIdx < maxDist*2 {
				accumulator[rhoIdx][theta]++
			}
		}
	}

	type peak struct {
		rho   int
		theta int
		votes int
	}
	peaks := make([]peak, 0)

	for rhoIdx := 0; rhoIdx < maxDist*2; rhoIdx++ {
		for theta := 0; theta < numAngles; theta++ {
			votes := accumulator[rhoIdx][theta]
			if votes < threshold {
				continue
			}
			isMax := true
			for dr := -2; dr <= 2 && isMax; dr++ {
				for dt := -2; dt <= 2; dt++ {
					if dr == 0 && dt == 0 {
						continue
					}
					nr := rhoIdx + dr
					nt := (theta + dt + numAngles) % numAngles
					if nr >= 0 && nr < maxDist*2 && accumulator[nr][nt] > votes {
						isMax = false
						break
					}
				}
			}
			if isMax {
				peaks = append(peaks, peak{rho: rhoIdx - maxDist, theta: theta, votes: votes})
			}
		}
	}

	sort.Slice(peaks, func(i, j int) bool {
		return peaks[i].votes > peaks[j].votes
	})

	segments := make([]Segment, 0)
	claimed := make(map[houghPoint]bool)

	for _, pk := range peaks {
		if len(segments) >= maxSegments {
			break
		}

		cosA := cosTab[pk.theta]
		sinA := sinTab[pk.theta]
		rho := float64(pk.rho)

		// Supporting pixels for this line, ordered by position along it.
		type linePoint struct {
			p houghPoint
			t float64
		}
		support := make([]linePoint, 0)
		for _, p := range points {
			if claimed[p] {
				continue
			}
			dist := math.Abs(float64(p.x)*cosA + float64(p.y)*sinA - rho)
			if dist < 2.0 {
				// Projection onto the line direction (-sin, cos).
				t := -float64(p.x)*sinA + float64(p.y)*cosA
				support = append(support, linePoint{p: p, t: t})
			}
		}
		if len(support) < minLength {
			continue
		}

		sort.Slice(support, func(i, j int) bool {
			return support[i].t < support[j].t
		})

		// Split the walk into gap-bounded runs.
		runStart := 0
		for i := 1; i <= len(support); i++ {
			atEnd := i == len(support)
			if !atEnd && support[i].t-support[i-1].t <= float64(maxGap) {
				continue
			}

			first := support[runStart].p
			last := support[i-1].p
			seg := NewSegment(first.x, first.y, last.x, last.y)
			if seg.Length() >= float64(minLength) {
				segments = append(segments, seg)
				for j := runStart; j < i; j++ {
					claimed[support[j].p] = true
				}
			}
			runStart = i
		}
	}

	return segments
}
