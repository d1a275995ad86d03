package debug

import (
	"image"
	"image/color"
	"image/draw"
	"testing"

	"github.com/inkmark/versemark/internal/detection"
	"github.com/inkmark/versemark/internal/ocr"
	"github.com/inkmark/versemark/internal/verse"
)

func testPage() image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	return img
}

func testUnderlines() []detection.Underline {
	return []detection.Underline{
		{Segment: detection.NewSegment(20, 50, 180, 50), Index: 0},
	}
}

func TestUnderlineOverlay(t *testing.T) {
	src := testPage()
	out := UnderlineOverlay(src, testUnderlines())

	if out.Bounds() != src.Bounds() {
		t.Errorf("overlay bounds %v differ from source %v", out.Bounds(), src.Bounds())
	}

	// The drawn line must appear; the source must stay untouched.
	r, g, b, _ := out.At(100, 50).RGBA()
	if r>>8 == 255 && g>>8 == 255 && b>>8 == 255 {
		t.Error("underline not drawn onto the overlay")
	}
	sr, sg, sb, _ := src.At(100, 50).RGBA()
	if sr>>8 != 255 || sg>>8 != 255 || sb>>8 != 255 {
		t.Error("source image was mutated")
	}
}

func TestRegionOverlay(t *testing.T) {
	underlines := testUnderlines()
	regions := []ocr.Region{{X1: 10, Y1: 20, X2: 190, Y2: 55}}
	binding := ocr.Binding{{Index: 0, Text: "some text"}}

	out := RegionOverlay(testPage(), underlines, regions, binding)
	if out == nil {
		t.Fatal("nil overlay")
	}

	r, g, b, _ := out.At(10, 30).RGBA()
	if r>>8 == 255 && g>>8 == 255 && b>>8 == 255 {
		t.Error("region border not drawn")
	}
}

func TestVerseOverlay(t *testing.T) {
	blocks := []verse.Block{
		{
			Identifier:       verse.Identifier{Raw: "16", Kind: verse.KindNumber, Verse: 16},
			Content:          "For God so loved the world.",
			UnderlineIndices: []int{0},
			Confidence:       0.9,
			Y:                50,
		},
	}

	out := VerseOverlay(testPage(), blocks, testUnderlines())
	if out.Bounds().Dx() != 200 || out.Bounds().Dy() != 100 {
		t.Errorf("unexpected overlay bounds %v", out.Bounds())
	}
}
