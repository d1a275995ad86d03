package ocr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty input",
			input:    "",
			expected: "",
		},
		{
			name:     "collapses whitespace",
			input:    "For   God\tso  loved",
			expected: "For God so loved",
		},
		{
			name:     "joins lines",
			input:    "For God so loved the world,\nthat he gave his only Son",
			expected: "For God so loved the world, that he gave his only Son",
		},
		{
			name:     "drops page number line",
			input:    "153\nFor God so loved the world",
			expected: "For God so loved the world",
		},
		{
			name:     "drops running header",
			input:    "Chapter 3\nFor God so loved the world",
			expected: "For God so loved the world",
		},
		{
			name:     "drops page footer",
			input:    "Page 12\nFor God so loved the world",
			expected: "For God so loved the world",
		},
		{
			name:     "drops all-caps book header",
			input:    "THE GOSPEL OF JOHN\nFor God so loved the world",
			expected: "For God so loved the world",
		},
		{
			name:     "drops stub lines",
			input:    "ly\nFor God so loved the world",
			expected: "For God so loved the world",
		},
		{
			name:     "keeps verse line with leading number",
			input:    "16 For God so loved the world",
			expected: "16 For God so loved the world",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestFixConfusions(t *testing.T) {
	// Pipe is always a misread capital I.
	assert.Equal(t, "In the beginning", fixConfusions("|n the beginning"))

	// Zero becomes O only between letters; verse numbers survive.
	assert.Equal(t, "GOd so loved", fixConfusions("G0d so loved"))
	assert.Equal(t, "verse 10 stands", fixConfusions("verse 10 stands"))
	assert.Equal(t, "10:30 remains", fixConfusions("10:30 remains"))
}

func TestRegionForBounds(t *testing.T) {
	// Expanded regions never leave the image.
	cfg := defaultExtractConfig()
	cfg.ExpandContext = true
	e := NewExtractor(cfg, nil, nil)

	u := underlineAt(0, 20, 0, 790)
	r := e.RegionFor(u, 800, 400)

	assert.GreaterOrEqual(t, r.X1, 0)
	assert.GreaterOrEqual(t, r.Y1, 0)
	assert.LessOrEqual(t, r.X2, 800)
	assert.LessOrEqual(t, r.Y2, 400)
}

func TestRegionForReachesAbove(t *testing.T) {
	cfg := defaultExtractConfig()
	cfg.ExpandContext = false
	e := NewExtractor(cfg, nil, nil)

	u := underlineAt(0, 200, 100, 500)
	r := e.RegionFor(u, 800, 400)

	assert.Equal(t, Region{X1: 100, Y1: 200 - cfg.SearchHeight, X2: 500, Y2: 200}, r)
}
