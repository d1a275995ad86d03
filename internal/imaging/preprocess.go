package imaging

import (
	"image"
	"math"

	"github.com/anthonynsimon/bild/effect"

	"github.com/inkmark/versemark/internal/config"
)

// Preprocessor turns a page photograph into a binary ink mask.
//
// The pipeline is greyscale conversion, an edge-preserving bilateral
// filter to suppress sensor noise without softening the ink/paper
// boundary, adaptive per-window thresholding (scan illumination varies
// too much across a page for a single global threshold), and a small
// close/open pass to drop speckle and reconnect broken letterforms.
// Given the same image the result is always the same.
type Preprocessor struct {
	cfg config.PreprocessConfig
}

// NewPreprocessor creates a preprocessor with the given tuning.
func NewPreprocessor(cfg config.PreprocessConfig) *Preprocessor {
	return &Preprocessor{cfg: cfg}
}

// InkMask computes the binary ink mask for an image. The mask has the
// same dimensions as the image, with ink pixels "on".
func (p *Preprocessor) InkMask(img image.Image) *Mask {
	gray := grayscale(img)
	width := len(gray[0])
	height := len(gray)

	smoothed := bilateralFilter(gray, width, height,
		p.cfg.BilateralRadius, p.cfg.SigmaColor, p.cfg.SigmaSpace)

	mask := adaptiveThreshold(smoothed, width, height,
		p.cfg.ThresholdWindow, p.cfg.ThresholdOffset)

	k := p.cfg.MorphKernel
	return mask.CloseRect(k, k).OpenRect(k, k)
}

// grayscale converts an image to a luminance grid in [0, 255].
func grayscale(img image.Image) [][]float64 {
	g := effect.Grayscale(img)
	bounds := g.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out := make([][]float64, height)
	for y := 0; y < height; y++ {
		out[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			r, _, _, _ := g.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			out[y][x] = float64(r >> 8)
		}
	}
	return out
}

// bilateralFilter smooths while preserving edges: each output pixel is a
// weighted mean of its neighbourhood, where the weight falls off with
// both spatial distance and intensity difference. Pixels across an
// ink/paper boundary therefore contribute almost nothing.
func bilateralFilter(img [][]float64, width, height, radius int, sigmaColor, sigmaSpace float64) [][]float64 {
	if radius < 1 {
		return img
	}

	// Precompute the spatial component; it only depends on offset.
	size := radius*2 + 1
	spatial := make([][]float64, size)
	for dy := -radius; dy <= radius; dy++ {
		spatial[dy+radius] = make([]float64, size)
		for dx := -radius; dx <= radius; dx++ {
			d2 := float64(dx*dx + dy*dy)
			spatial[dy+radius][dx+radius] = math.Exp(-d2 / (2 * sigmaSpace * sigmaSpace))
		}
	}

	// Intensity differences are 8-bit, so the range kernel is a table.
	var rangeKernel [256]float64
	for i := 0; i < 256; i++ {
		rangeKernel[i] = math.Exp(-float64(i*i) / (2 * sigmaColor * sigmaColor))
	}

	out := make([][]float64, height)
	for y := 0; y < height; y++ {
		out[y] = make([]float64, width)
		for x := 0; x < width; x++ {
			center := img[y][x]
			var sum, norm float64
			for dy := -radius; dy <= radius; dy++ {
				py := clamp(y+dy, 0, height-1)
				for dx := -radius; dx <= radius; dx++ {
					px := clamp(x+dx, 0, width-1)
					v := img[py][px]
					diff := int(math.Abs(v - center))
					if diff > 255 {
						diff = 255
					}
					w := spatial[dy+radius][dx+radius] * rangeKernel[diff]
					sum += v * w
					norm += w
				}
			}
			out[y][x] = sum / norm
		}
	}
	return out
}

// adaptiveThreshold produces an inverted binary mask: a pixel is ink when
// it is darker than the mean of its window minus offset. The window mean
// is computed with an integral image so the cost is independent of the
// window size.
func adaptiveThreshold(img [][]float64, width, height, window int, offset float64) *Mask {
	// integral[y][x] = sum of img over [0,x) x [0,y)
	integral := make([][]float64, height+1)
	integral[0] = make([]float64, width+1)
	for y := 0; y < height; y++ {
		integral[y+1] = make([]float64, width+1)
		rowSum := 0.0
		for x := 0; x < width; x++ {
			rowSum += img[y][x]
			integral[y+1][x+1] = integral[y][x+1] + rowSum
		}
	}

	radius := window / 2
	mask := NewMask(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			x1 := clamp(x-radius, 0, width-1)
			x2 := clamp(x+radius, 0, width-1)
			y1 := clamp(y-radius, 0, height-1)
			y2 := clamp(y+radius, 0, height-1)

			area := float64((x2 - x1 + 1) * (y2 - y1 + 1))
			sum := integral[y2+1][x2+1] - integral[y1][x2+1] - integral[y2+1][x1] + integral[y1][x1]
			mean := sum / area

			mask.Pix[y][x] = img[y][x] < mean-offset
		}
	}
	return mask
}
