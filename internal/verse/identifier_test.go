package verse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkmark/versemark/internal/config"
)

func TestParseIdentifier(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		raw     string
		kind    Kind
		book    string
		chapter int
		verse   int
	}{
		{
			name:  "plain verse number",
			text:  "16 For God so loved the world",
			raw:   "16",
			kind:  KindNumber,
			verse: 16,
		},
		{
			name:    "chapter and verse",
			text:    "3:16 For God so loved the world",
			raw:     "3:16",
			kind:    KindChapterVerse,
			chapter: 3,
			verse:   16,
		},
		{
			name:    "book reference",
			text:    "John 3:16 For God so loved the world",
			raw:     "John 3:16",
			kind:    KindBookRef,
			book:    "John",
			chapter: 3,
			verse:   16,
		},
		{
			name:  "roman numeral",
			text:  "XIV And the evening and the morning",
			raw:   "XIV",
			kind:  KindRoman,
			verse: 14,
		},
		{
			name:    "chapter heading",
			text:    "Chapter 12 In those days there was",
			raw:     "Chapter 12",
			kind:    KindChapter,
			chapter: 12,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, found := ParseIdentifier(tt.text)
			require.True(t, found)
			assert.Equal(t, tt.raw, id.Raw)
			assert.Equal(t, tt.kind, id.Kind)
			assert.Equal(t, tt.book, id.Book)
			assert.Equal(t, tt.chapter, id.Chapter)
			assert.Equal(t, tt.verse, id.Verse)
		})
	}
}

func TestParseIdentifier_NoMatch(t *testing.T) {
	texts := []string{
		"",
		"For God so loved the world",
		"In the beginning was the Word", // "In" is not a roman numeral token
		"that whosoever believeth in him",
	}
	for _, text := range texts {
		_, found := ParseIdentifier(text)
		assert.False(t, found, "parsed an identifier from %q", text)
	}
}

func TestIdentifierIsValid(t *testing.T) {
	cfg := config.Default().Score

	tests := []struct {
		name  string
		id    Identifier
		valid bool
	}{
		{"common verse", Identifier{Kind: KindChapterVerse, Chapter: 3, Verse: 16}, true},
		{"last psalm verse", Identifier{Kind: KindChapterVerse, Chapter: 119, Verse: 176}, true},
		{"chapter beyond canon", Identifier{Kind: KindChapterVerse, Chapter: 151, Verse: 1}, false},
		{"verse beyond canon", Identifier{Kind: KindChapterVerse, Chapter: 1, Verse: 200}, false},
		{"bare number", Identifier{Kind: KindNumber, Verse: 16}, true},
		{"no numbers at all", Identifier{Kind: KindRoman}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.id.IsValid(cfg))
		})
	}
}

func TestStripContent(t *testing.T) {
	assert.Equal(t,
		"For God so loved the world.",
		StripContent("3:16 For God so loved the world.", "3:16"))

	assert.Equal(t,
		"For God so loved the world.",
		StripContent("16 - For God so loved the world.", "16"))

	// Only the first occurrence is stripped.
	assert.Equal(t,
		"For 16 sparrows",
		StripContent("16 For 16 sparrows", "16"))
}

func TestContainsBookName(t *testing.T) {
	assert.True(t, ContainsBookName("John 3:16"))
	assert.True(t, ContainsBookName("psalm 23"))

	// One character of OCR damage is tolerated on longer names.
	assert.True(t, ContainsBookName("Mathew 5:3"))

	assert.False(t, ContainsBookName("3:16"))
	assert.False(t, ContainsBookName("random words"))
}

func TestRomanValue(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"I", 1},
		{"IV", 4},
		{"IX", 9},
		{"XIV", 14},
		{"XXX", 30},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, romanValue(tt.in), "romanValue(%q)", tt.in)
	}
}
