package verse

import (
	"math"
	"strings"

	"github.com/inkmark/versemark/internal/config"
)

// Metrics is the per-block breakdown behind a confidence score, kept for
// diagnostics. Purely derived; recomputed whenever the block changes.
type Metrics struct {
	Completeness   float64 `json:"completeness"`
	CharQuality    float64 `json:"char_quality"`
	Entropy        float64 `json:"entropy"`
	ContentQuality float64 `json:"content_quality"`
	OCRArtifact    bool    `json:"ocr_artifact"`
	PageBoundary   bool    `json:"page_boundary"`
}

// Scorer computes the composite confidence of a verse block from its
// content and identifier. All scores are clamped to [0, 1] no matter how
// extreme the inputs are.
type Scorer struct {
	cfg config.ScoreConfig
}

// NewScorer creates a scorer with the given weights and bounds.
func NewScorer(cfg config.ScoreConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// Score computes the confidence for stripped content and its identifier,
// with the detailed breakdown.
func (s *Scorer) Score(content string, id Identifier) (float64, Metrics) {
	confidence := 0.0
	n := len(content)

	if n > 20 {
		confidence += s.cfg.LengthBonusLong
	} else if n > 10 {
		confidence += s.cfg.LengthBonusShort
	}

	// Identifier-format bonus; first applicable rule wins.
	switch {
	case strings.Contains(id.Raw, ":"):
		confidence += s.cfg.ChapterVerseBonus
	case isAllDigits(id.Raw):
		confidence += s.cfg.BareNumberBonus
	case ContainsBookName(id.Raw):
		confidence += s.cfg.BookNameBonus
	}

	// An out-of-range identifier is strong evidence of a false positive.
	if id.IsValid(s.cfg) {
		confidence += s.cfg.ValidityBonus
		if id.Verse > 0 && id.Verse <= s.cfg.CommonVerseMax {
			confidence += s.cfg.CommonVerseBonus
		}
	} else {
		confidence -= s.cfg.InvalidPenalty
	}

	if n < 5 {
		confidence -= s.cfg.ShortPenalty
	}

	quality, metrics := s.ContentQuality(content)
	confidence += quality * s.cfg.QualityWeight

	if metrics.PageBoundary {
		confidence -= s.cfg.BoundaryPenalty
	}

	return clamp01(confidence), metrics
}

// ContentQuality estimates whether content reads like coherent prose
// rather than OCR noise, in [0, 1].
func (s *Scorer) ContentQuality(content string) (float64, Metrics) {
	metrics := Metrics{
		OCRArtifact:  s.IsOCRArtifact(content),
		PageBoundary: s.IsBoundaryFragment(content),
	}

	words := strings.Fields(content)
	if len(words) < 2 {
		return 0, metrics
	}

	// Word-count tiers scaled by average word length: many short
	// fragments score like few real words.
	tier := 0.0
	switch {
	case len(words) >= 8:
		tier = 0.3
	case len(words) >= 4:
		tier = 0.2
	default:
		tier = 0.1
	}

	totalLen := 0
	for _, w := range words {
		totalLen += len(w)
	}
	avgLen := float64(totalLen) / float64(len(words))
	factor := 0.5
	switch {
	case avgLen >= 4:
		factor = 1.0
	case avgLen >= 3:
		factor = 0.8
	}
	metrics.Completeness = tier * factor

	quality := metrics.Completeness

	// Alphabetic-plus-whitespace ratio: heavy symbol content is noise.
	alpha := 0
	for _, r := range content {
		if isLetter(r) || r == ' ' {
			alpha++
		}
	}
	ratio := float64(alpha) / float64(len(content))
	metrics.CharQuality = ratio
	switch {
	case ratio >= 0.8:
		quality += 0.2
	case ratio >= 0.6:
		quality += 0.1
	}

	// Natural prose carries more character entropy than repetitive OCR
	// garbage.
	metrics.Entropy = math.Min(shannonEntropy(strings.ToLower(content))/s.cfg.EntropyNormalizer, 1.0)
	quality += metrics.Entropy * s.cfg.EntropyWeight

	if metrics.OCRArtifact {
		quality -= s.cfg.ArtifactPenalty
	}
	if metrics.PageBoundary {
		quality -= s.cfg.QfBoundaryPenalty
	}

	metrics.ContentQuality = clamp01(quality)
	return metrics.ContentQuality, metrics
}

// IsOCRArtifact reports whether content looks like recognition garbage:
// one character dominating, symbol-heavy content, or a short pattern
// repeating far more often than prose would repeat it.
func (s *Scorer) IsOCRArtifact(content string) bool {
	n := len(content)
	if n == 0 {
		return false
	}

	freq := make(map[rune]int)
	for _, r := range content {
		freq[r]++
	}
	for _, count := range freq {
		if float64(count)/float64(n) > s.cfg.MaxCharFrequency {
			return true
		}
	}

	symbols := 0
	for _, r := range content {
		if !isLetter(r) && r != ' ' {
			symbols++
		}
	}
	if float64(symbols)/float64(n) > s.cfg.MaxSymbolRatio {
		return true
	}

	for patLen := 2; patLen <= 5 && patLen <= n/2; patLen++ {
		seen := make(map[string]bool)
		for i := 0; i+patLen <= n; i++ {
			pattern := content[i : i+patLen]
			if seen[pattern] {
				continue
			}
			seen[pattern] = true
			if strings.Count(content, pattern) > n/(patLen*2) {
				return true
			}
		}
	}

	return false
}

// IsBoundaryFragment reports whether content looks like a passage cut at
// a page or column break: too few words, a chapter-transition artifact
// (leading number followed by a stub word), or a short tail with no
// terminal punctuation.
func (s *Scorer) IsBoundaryFragment(content string) bool {
	words := strings.Fields(content)
	if len(words) <= 3 {
		return true
	}

	if isAllDigits(words[0]) {
		if len(words[1]) <= 4 {
			return true
		}
		if len(content) < 20 {
			return true
		}
	}

	terminal := strings.HasSuffix(content, ".") ||
		strings.HasSuffix(content, "!") ||
		strings.HasSuffix(content, "?") ||
		strings.HasSuffix(content, ";") ||
		strings.HasSuffix(content, ":")

	if len(words) < 6 && !terminal {
		return true
	}
	if len(content) < 40 && !terminal {
		return true
	}

	return false
}

// shannonEntropy computes character entropy in bits.
func shannonEntropy(s string) float64 {
	if s == "" {
		return 0
	}

	freq := make(map[rune]int)
	total := 0
	for _, r := range s {
		freq[r]++
		total++
	}

	entropy := 0.0
	for _, count := range freq {
		p := float64(count) / float64(total)
		entropy -= p * math.Log2(p)
	}
	return entropy
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
