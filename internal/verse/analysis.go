package verse

import (
	"fmt"
	"strings"
)

// Analysis summarizes the quality of a run's detected verses.
type Analysis struct {
	TotalVerses       int      `json:"total_verses"`
	AverageConfidence float64  `json:"average_confidence"`
	CompletenessScore float64  `json:"completeness_score"`
	Issues            []string `json:"issues,omitempty"`
}

// AnalyzeQuality inspects detected blocks for common completeness
// problems: stub content, hyphen or ellipsis endings that indicate a cut
// passage, and low-confidence detections.
func AnalyzeQuality(blocks []Block) Analysis {
	if len(blocks) == 0 {
		return Analysis{}
	}

	confidenceSum := 0.0
	completenessSum := 0.0
	issues := make([]string, 0)

	for _, b := range blocks {
		confidenceSum += b.Confidence

		switch {
		case len(b.Content) < 10:
			issues = append(issues, fmt.Sprintf("verse %s: very short content", b.Identifier.Raw))
			completenessSum += 0.3
		case strings.HasSuffix(b.Content, "-") || strings.HasSuffix(b.Content, "..."):
			issues = append(issues, fmt.Sprintf("verse %s: incomplete ending", b.Identifier.Raw))
			completenessSum += 0.6
		case b.Confidence < 0.5:
			issues = append(issues, fmt.Sprintf("verse %s: low confidence (%.2f)", b.Identifier.Raw, b.Confidence))
			completenessSum += 0.7
		default:
			completenessSum += 1.0
		}
	}

	n := float64(len(blocks))
	return Analysis{
		TotalVerses:       len(blocks),
		AverageConfidence: confidenceSum / n,
		CompletenessScore: completenessSum / n,
		Issues:            issues,
	}
}
