package debug

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/inkmark/versemark/internal/detection"
	"github.com/inkmark/versemark/internal/ocr"
	"github.com/inkmark/versemark/internal/verse"
)

// UnderlineOverlay draws the merged underlines over the page image, each
// labelled with its index.
func UnderlineOverlay(img image.Image, underlines []detection.Underline) image.Image {
	out := cloneRGBA(img)
	green := color.RGBA{0, 200, 0, 255}

	for _, u := range underlines {
		drawLine(out, u.X1, u.Y1, u.X2, u.Y2, 3, green)
		drawLabel(out, u.X1, u.Y1-6, fmt.Sprintf("%d", u.Index), green)
	}
	return out
}

// RegionOverlay draws the text-extraction region of every underline,
// solid where text was extracted and marked "empty" otherwise.
func RegionOverlay(img image.Image, underlines []detection.Underline, regions []ocr.Region, binding ocr.Binding) image.Image {
	out := cloneRGBA(img)
	blue := color.RGBA{40, 90, 220, 255}
	grey := color.RGBA{150, 150, 150, 255}

	for i, u := range underlines {
		if i >= len(regions) {
			break
		}
		r := regions[i]
		c := blue
		label := fmt.Sprintf("%d", u.Index)
		if binding.Get(u.Index) == "" {
			c = grey
			label += " empty"
		}
		drawRect(out, r.X1, r.Y1, r.X2, r.Y2, c)
		drawLabel(out, r.X1+2, r.Y1+12, label, c)
	}
	return out
}

// VerseOverlay colour-codes each verse block over the page: every
// underline belonging to a block is drawn in the block's colour and the
// block is labelled with its identifier and confidence.
func VerseOverlay(img image.Image, blocks []verse.Block, underlines []detection.Underline) image.Image {
	out := cloneRGBA(img)
	palette := colorful.FastHappyPalette(len(blocks))

	byIndex := make(map[int]detection.Underline, len(underlines))
	for _, u := range underlines {
		byIndex[u.Index] = u
	}

	for i, b := range blocks {
		r, g, bl := palette[i].RGB255()
		c := color.RGBA{r, g, bl, 255}

		for _, idx := range b.UnderlineIndices {
			u, ok := byIndex[idx]
			if !ok {
				continue
			}
			drawLine(out, u.X1, u.Y1, u.X2, u.Y2, 4, c)
		}

		if len(b.UnderlineIndices) > 0 {
			if u, ok := byIndex[b.UnderlineIndices[0]]; ok {
				label := fmt.Sprintf("%s (%.2f)", b.Identifier.Raw, b.Confidence)
				drawLabel(out, u.X1, u.Y1-8, label, c)
			}
		}
	}
	return out
}

func cloneRGBA(img image.Image) *image.RGBA {
	src := imaging.Clone(img)
	bounds := src.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, src, bounds.Min, draw.Src)
	return out
}

// drawLine draws a thick horizontal-ish line by stamping vertical spans
// along the x run. Sufficient for near-horizontal underlines.
func drawLine(img *image.RGBA, x1, y1, x2, y2, thickness int, c color.Color) {
	if x2 < x1 {
		x1, y1, x2, y2 = x2, y2, x1, y1
	}
	dx := x2 - x1
	for x := x1; x <= x2; x++ {
		y := y1
		if dx != 0 {
			y = y1 + (y2-y1)*(x-x1)/dx
		}
		for t := -thickness / 2; t <= thickness/2; t++ {
			img.Set(x, y+t, c)
		}
	}
}

func drawRect(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	for x := x1; x <= x2; x++ {
		img.Set(x, y1, c)
		img.Set(x, y2, c)
	}
	for y := y1; y <= y2; y++ {
		img.Set(x1, y, c)
		img.Set(x2, y, c)
	}
}

func drawLabel(img *image.RGBA, x, y int, text string, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
