package verse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/inkmark/versemark/internal/config"
)

// Kind classifies the shape of a parsed verse identifier.
type Kind string

const (
	KindNumber       Kind = "number"        // plain leading number: "16"
	KindChapterVerse Kind = "chapter_verse" // "3:16"
	KindBookRef      Kind = "book_ref"      // "John 3:16", "1 Kings 2:3"
	KindRoman        Kind = "roman"         // "IV"
	KindChapter      Kind = "chapter"       // "Chapter 12"
)

// Identifier is a parsed verse reference token. Chapter and Verse are
// zero when the form does not carry them.
type Identifier struct {
	Raw     string `json:"raw"`
	Kind    Kind   `json:"kind"`
	Book    string `json:"book,omitempty"`
	Chapter int    `json:"chapter,omitempty"`
	Verse   int    `json:"verse,omitempty"`
}

// Pattern attempts in order; the first match wins. The plain-number
// pattern cannot swallow "3:16" because it requires whitespace straight
// after the digits.
var identifierPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^\s*(\d+)\s+`),
	regexp.MustCompile(`(?i)^\s*(\d+:\d+)\s+`),
	regexp.MustCompile(`(?i)^\s*((?:[1-3]\s*)?[A-Za-z]+(?:\s+[A-Za-z]+)*\s+\d+:\d+)\s+`),
	regexp.MustCompile(`(?i)^\s*([IVX]+)\s+`),
	regexp.MustCompile(`(?i)^\s*(Chapter\s+\d+)\s+`),
}

// ParseIdentifier extracts a verse identifier from the start of a text
// line. The second return is false when no pattern matches.
func ParseIdentifier(text string) (Identifier, bool) {
	for _, pattern := range identifierPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.TrimSpace(m[1])
		return classify(raw), true
	}
	return Identifier{}, false
}

func classify(raw string) Identifier {
	id := Identifier{Raw: raw}

	switch {
	case strings.Contains(raw, ":"):
		fields := strings.Fields(raw)
		cv := fields[len(fields)-1]
		parts := strings.SplitN(cv, ":", 2)
		id.Chapter, _ = strconv.Atoi(parts[0])
		id.Verse, _ = strconv.Atoi(parts[1])
		if len(fields) > 1 {
			id.Kind = KindBookRef
			id.Book = strings.Join(fields[:len(fields)-1], " ")
		} else {
			id.Kind = KindChapterVerse
		}

	case isAllDigits(raw):
		id.Kind = KindNumber
		id.Verse, _ = strconv.Atoi(raw)

	case strings.HasPrefix(strings.ToLower(raw), "chapter"):
		id.Kind = KindChapter
		fields := strings.Fields(raw)
		id.Chapter, _ = strconv.Atoi(fields[len(fields)-1])

	default:
		id.Kind = KindRoman
		id.Verse = romanValue(raw)
	}

	return id
}

// IsValid checks the identifier's numbers against the heuristic
// canonical bounds. The bounds approximate real canons (150 chapters,
// 176 verses) and are configurable, not authoritative.
func (id Identifier) IsValid(cfg config.ScoreConfig) bool {
	if id.Chapter != 0 && (id.Chapter < 1 || id.Chapter > cfg.MaxChapter) {
		return false
	}
	if id.Verse != 0 && (id.Verse < 1 || id.Verse > cfg.MaxVerse) {
		return false
	}
	// A parsed identifier whose numbers both came out zero is garbage.
	if id.Chapter == 0 && id.Verse == 0 {
		return false
	}
	return true
}

// StripContent removes the first occurrence of the identifier token from
// the text and trims stray punctuation from both ends.
func StripContent(text, raw string) string {
	content := strings.Replace(text, raw, "", 1)
	content = strings.TrimSpace(content)
	content = leadingJunk.ReplaceAllString(content, "")
	content = trailingJunk.ReplaceAllString(content, "")
	return content
}

var (
	leadingJunk  = regexp.MustCompile(`^[^\w]*`)
	trailingJunk = regexp.MustCompile(`[^\w\s.,!?;:'"()-]*$`)
)

// canonicalBooks is the book-name vocabulary for the book-reference
// bonus. Lowercase, longest common names.
var canonicalBooks = []string{
	"genesis", "exodus", "leviticus", "numbers", "deuteronomy",
	"joshua", "judges", "ruth", "samuel", "kings", "chronicles",
	"ezra", "nehemiah", "esther", "job", "psalm", "psalms",
	"proverbs", "ecclesiastes", "isaiah", "jeremiah", "lamentations",
	"ezekiel", "daniel", "hosea", "joel", "amos", "obadiah", "jonah",
	"micah", "nahum", "habakkuk", "zephaniah", "haggai", "zechariah",
	"malachi", "matthew", "mark", "luke", "john", "acts", "romans",
	"corinthians", "galatians", "ephesians", "philippians",
	"colossians", "thessalonians", "timothy", "titus", "philemon",
	"hebrews", "james", "peter", "jude", "revelation",
}

// ContainsBookName reports whether any token of the identifier is a
// recognized book name. Tokens of four or more letters tolerate one
// character of OCR damage ("Mathew" for "Matthew") via edit distance.
func ContainsBookName(raw string) bool {
	for _, token := range strings.Fields(strings.ToLower(raw)) {
		for _, book := range canonicalBooks {
			if token == book {
				return true
			}
			if len(token) >= 4 && len(book) >= 4 &&
				levenshtein.ComputeDistance(token, book) <= 1 {
				return true
			}
		}
	}
	return false
}

// romanValue converts a roman numeral built from I, V, X. Unknown runes
// contribute nothing; subtractive pairs (IV, IX) are honored.
func romanValue(s string) int {
	values := map[rune]int{'I': 1, 'V': 5, 'X': 10}
	s = strings.ToUpper(s)

	total := 0
	runes := []rune(s)
	for i, r := range runes {
		v := values[r]
		if i+1 < len(runes) && v < values[runes[i+1]] {
			total -= v
		} else {
			total += v
		}
	}
	return total
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
