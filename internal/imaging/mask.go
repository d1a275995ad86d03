package imaging

import (
	"image"
	"image/color"
)

// Mask is a binary ink mask: true pixels are probable ink, false pixels
// are page background. A Mask always has the same dimensions as the
// image it was derived from and is never mutated after construction;
// morphological operators return new masks.
type Mask struct {
	Width  int
	Height int
	Pix    [][]bool
}

// NewMask creates an all-background mask.
func NewMask(width, height int) *Mask {
	pix := make([][]bool, height)
	for y := range pix {
		pix[y] = make([]bool, width)
	}
	return &Mask{Width: width, Height: height, Pix: pix}
}

// At reports whether the pixel at (x, y) is ink. Out-of-bounds
// coordinates are background.
func (m *Mask) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return false
	}
	return m.Pix[y][x]
}

// Set marks a pixel. Out-of-bounds coordinates are ignored.
func (m *Mask) Set(x, y int, on bool) {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return
	}
	m.Pix[y][x] = on
}

// Count returns the number of ink pixels.
func (m *Mask) Count() int {
	n := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Pix[y][x] {
				n++
			}
		}
	}
	return n
}

// Density returns the fraction of ink pixels inside the given rectangle.
// The rectangle is clamped to the mask bounds; an empty intersection has
// density 0.
func (m *Mask) Density(x1, y1, x2, y2 int) float64 {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	x1 = clamp(x1, 0, m.Width)
	x2 = clamp(x2, 0, m.Width)
	y1 = clamp(y1, 0, m.Height)
	y2 = clamp(y2, 0, m.Height)

	area := (x2 - x1) * (y2 - y1)
	if area <= 0 {
		return 0
	}

	n := 0
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			if m.Pix[y][x] {
				n++
			}
		}
	}
	return float64(n) / float64(area)
}

// ErodeRect erodes with a kw x kh rectangular kernel: an output pixel is
// ink only if every pixel under the kernel is ink.
func (m *Mask) ErodeRect(kw, kh int) *Mask {
	out := NewMask(m.Width, m.Height)
	rx := kw / 2
	ry := kh / 2
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if !m.Pix[y][x] {
				continue
			}
			all := true
			for dy := -ry; dy <= kh-1-ry && all; dy++ {
				for dx := -rx; dx <= kw-1-rx; dx++ {
					if !m.At(x+dx, y+dy) {
						all = false
						break
					}
				}
			}
			out.Pix[y][x] = all
		}
	}
	return out
}

// DilateRect dilates with a kw x kh rectangular kernel.
func (m *Mask) DilateRect(kw, kh int) *Mask {
	out := NewMask(m.Width, m.Height)
	rx := kw / 2
	ry := kh / 2
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if out.Pix[y][x] {
				continue
			}
			found := false
			for dy := -ry; dy <= kh-1-ry && !found; dy++ {
				for dx := -rx; dx <= kw-1-rx; dx++ {
					if m.At(x+dx, y+dy) {
						found = true
						break
					}
				}
			}
			out.Pix[y][x] = found
		}
	}
	return out
}

// CloseRect performs morphological closing (dilate then erode), bridging
// gaps narrower than the kernel.
func (m *Mask) CloseRect(kw, kh int) *Mask {
	return m.DilateRect(kw, kh).ErodeRect(kw, kh)
}

// OpenRect performs morphological opening (erode then dilate), removing
// speckles smaller than the kernel.
func (m *Mask) OpenRect(kw, kh int) *Mask {
	return m.ErodeRect(kw, kh).DilateRect(kw, kh)
}

// Union returns the pixelwise OR of two masks of equal dimensions.
func (m *Mask) Union(other *Mask) *Mask {
	out := NewMask(m.Width, m.Height)
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			out.Pix[y][x] = m.Pix[y][x] || (other != nil && other.At(x, y))
		}
	}
	return out
}

// ToGray renders the mask as a grayscale image, ink in white. Used by
// the debug overlay tooling.
func (m *Mask) ToGray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, m.Width, m.Height))
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Pix[y][x] {
				img.SetGray(x, y, color.Gray{255})
			}
		}
	}
	return img
}

// clamp constrains an integer value to the range [min, max].
func clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
