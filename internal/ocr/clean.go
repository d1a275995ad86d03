package ocr

import (
	"regexp"
	"strings"
)

var allCapsLine = regexp.MustCompile(`^[A-Z\s]+$`)

// CleanText normalizes raw OCR output for verse assembly: collapses
// whitespace, fixes the usual character confusions, and drops lines that
// are page furniture rather than verse text (page numbers, running
// "Chapter" headers, ALL-CAPS book headers).
func CleanText(text string) string {
	if text == "" {
		return ""
	}

	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		if len(line) < 3 {
			continue
		}
		if isDigits(line) {
			continue
		}
		if strings.HasPrefix(line, "Page") || strings.HasPrefix(line, "Chapter") {
			continue
		}
		if allCapsLine.MatchString(line) {
			continue
		}
		cleaned = append(cleaned, fixConfusions(line))
	}

	return strings.Join(cleaned, " ")
}

// fixConfusions repairs OCR character mistakes common in serif print:
// pipe read for capital I, and zero read for capital O inside words.
func fixConfusions(line string) string {
	line = strings.ReplaceAll(line, "|", "I")

	// Replace 0 with O only when it sits between letters, so verse
	// numbers like "10" survive.
	runes := []rune(line)
	for i, r := range runes {
		if r != '0' {
			continue
		}
		prevLetter := i > 0 && isLetter(runes[i-1])
		nextLetter := i+1 < len(runes) && isLetter(runes[i+1])
		if prevLetter || nextLetter {
			runes[i] = 'O'
		}
	}
	return string(runes)
}

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isDigits(s string) bool {
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
