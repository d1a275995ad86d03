package verse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkmark/versemark/internal/config"
	"github.com/inkmark/versemark/internal/detection"
	"github.com/inkmark/versemark/internal/ocr"
)

func testAssembler() *Assembler {
	cfg := config.Default()
	return NewAssembler(cfg.Assemble, NewScorer(cfg.Score), nil)
}

func underlinesAt(ys ...int) []detection.Underline {
	underlines := make([]detection.Underline, len(ys))
	for i, y := range ys {
		underlines[i] = detection.Underline{
			Segment: detection.NewSegment(100, y, 500, y),
			Index:   i,
		}
	}
	return underlines
}

func TestDetectBlocks_ContinuationJoinsBlock(t *testing.T) {
	a := testAssembler()

	binding := ocr.Binding{
		{Index: 0, Text: "16 For God so loved the world,"},
		{Index: 1, Text: "that whosoever believeth in him should not perish."},
	}

	blocks := a.DetectBlocks(binding, underlinesAt(150, 200))
	require.Len(t, blocks, 1)

	b := blocks[0]
	assert.Equal(t, "16", b.Identifier.Raw)
	assert.Equal(t, KindNumber, b.Identifier.Kind)
	assert.Equal(t, []int{0, 1}, b.UnderlineIndices)
	assert.Equal(t, 150, b.Y)
	assert.Contains(t, b.Content, "For God so loved the world,")
	assert.Contains(t, b.Content, "should not perish.")
}

func TestDetectBlocks_NewIdentifierStartsNewBlock(t *testing.T) {
	a := testAssembler()

	binding := ocr.Binding{
		{Index: 0, Text: "16 For God so loved the world."},
		{Index: 1, Text: "17 For God sent not his Son to condemn the world."},
	}

	blocks := a.DetectBlocks(binding, underlinesAt(150, 200))
	require.Len(t, blocks, 2)
	assert.Equal(t, "16", blocks[0].Identifier.Raw)
	assert.Equal(t, "17", blocks[1].Identifier.Raw)
}

func TestDetectBlocks_SkipsEmptyAndOrphans(t *testing.T) {
	a := testAssembler()

	// An empty region and a continuation with no preceding identifier
	// join no block.
	binding := ocr.Binding{
		{Index: 0, Text: ""},
		{Index: 1, Text: "so the people went their way"},
		{Index: 2, Text: "16 For God so loved the world."},
	}

	blocks := a.DetectBlocks(binding, underlinesAt(100, 150, 250))
	require.Len(t, blocks, 1)
	assert.Equal(t, []int{2}, blocks[0].UnderlineIndices)
}

func TestDetectBlocks_NoIdentifiers(t *testing.T) {
	a := testAssembler()

	binding := ocr.Binding{
		{Index: 0, Text: "loved the world and gave himself"},
	}

	blocks := a.DetectBlocks(binding, underlinesAt(150))
	assert.Empty(t, blocks)
}

func TestGroupRelated_MergesNearbyBlocks(t *testing.T) {
	a := testAssembler()

	id := Identifier{Raw: "16", Kind: KindNumber, Verse: 16}
	blocks := []Block{
		{Text: "16 For God so loved", Identifier: id, Content: "For God so loved",
			UnderlineIndices: []int{0}, Confidence: 0.8, Y: 100},
		{Text: "the world entire", Identifier: id, Content: "the world entire",
			UnderlineIndices: []int{1}, Confidence: 0.4, Y: 150},
	}

	grouped := a.GroupRelated(blocks)
	require.Len(t, grouped, 1)

	g := grouped[0]
	assert.Equal(t, []int{0, 1}, g.UnderlineIndices)
	assert.Equal(t, "16", g.Identifier.Raw)
	assert.InDelta(t, 0.6, g.Confidence, 1e-9)
	assert.Equal(t, 125, g.Y)
	assert.Equal(t, "16 For God so loved the world entire", g.Text)
}

func TestGroupRelated_KeepsDistantBlocks(t *testing.T) {
	a := testAssembler()

	blocks := []Block{
		{Identifier: Identifier{Raw: "16"}, Confidence: 0.8, Y: 100, UnderlineIndices: []int{0}},
		{Identifier: Identifier{Raw: "23"}, Confidence: 0.7, Y: 350, UnderlineIndices: []int{1}},
	}

	grouped := a.GroupRelated(blocks)
	require.Len(t, grouped, 2)
	assert.Equal(t, "16", grouped[0].Identifier.Raw)
	assert.Equal(t, "23", grouped[1].Identifier.Raw)
}

func TestGroupRelated_Empty(t *testing.T) {
	a := testAssembler()
	assert.Nil(t, a.GroupRelated(nil))
}

func TestAnalyzeQuality(t *testing.T) {
	blocks := []Block{
		{Identifier: Identifier{Raw: "16"}, Content: "For God so loved the world, that he gave his only Son.", Confidence: 0.9},
		{Identifier: Identifier{Raw: "17"}, Content: "stub", Confidence: 0.9},
		{Identifier: Identifier{Raw: "18"}, Content: "He that believeth on him is not condemned...", Confidence: 0.9},
		{Identifier: Identifier{Raw: "19"}, Content: "And this is the condemnation, that light is come.", Confidence: 0.2},
	}

	analysis := AnalyzeQuality(blocks)
	assert.Equal(t, 4, analysis.TotalVerses)
	assert.InDelta(t, 0.725, analysis.AverageConfidence, 1e-9)
	assert.InDelta(t, (1.0+0.3+0.6+0.7)/4, analysis.CompletenessScore, 1e-9)
	require.Len(t, analysis.Issues, 3)
	assert.Contains(t, analysis.Issues[0], "very short content")
	assert.Contains(t, analysis.Issues[1], "incomplete ending")
	assert.Contains(t, analysis.Issues[2], "low confidence")
}

func TestAnalyzeQuality_Empty(t *testing.T) {
	analysis := AnalyzeQuality(nil)
	assert.Equal(t, 0, analysis.TotalVerses)
	assert.Empty(t, analysis.Issues)
}
