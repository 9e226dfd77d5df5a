package markdown

import (
	"strings"
	"unicode/utf8"
)

const (
	// DefaultSummaryLimit caps derived descriptions, in characters.
	DefaultSummaryLimit = 150
	// Ellipsis marks a summary cut at the limit.
	Ellipsis = "..."
)

var summaryMarkers = strings.NewReplacer("#", "", "*", "", "`", "")

// ExtractSummary derives a plain-text description from a post's raw source:
// the first paragraph after the front-matter block, stripped of heading,
// emphasis and code markers, on a single line. Results longer than limit
// characters are cut so that, ellipsis included, they never exceed limit.
func ExtractSummary(source []byte, limit int) string {
	if limit <= 0 {
		limit = DefaultSummaryLimit
	}

	text := strings.ReplaceAll(string(source), "\r\n", "\n")
	text = stripFrontMatter(text)

	if idx := strings.Index(text, "\n\n"); idx >= 0 {
		text = text[:idx]
	}

	text = summaryMarkers.Replace(text)
	text = strings.ReplaceAll(text, "\n", " ")
	text = strings.TrimSpace(text)

	return truncateSummary(text, limit)
}

// stripFrontMatter drops everything up to the second Delimiter when the text
// opens with a front-matter fence; otherwise the whole text is the body.
func stripFrontMatter(text string) string {
	if !opensWithDelimiter(text) {
		return strings.TrimSpace(text)
	}

	segments := strings.Split(text, Delimiter)
	if len(segments) < 3 {
		return ""
	}
	return strings.TrimSpace(strings.Join(segments[2:], Delimiter))
}

func opensWithDelimiter(text string) bool {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		return trimmed == Delimiter
	}
	return false
}

func truncateSummary(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}

	keep := limit - utf8.RuneCountInString(Ellipsis)
	if keep < 0 {
		keep = 0
	}
	runes := []rune(text)
	return strings.TrimRight(string(runes[:keep]), " ") + Ellipsis
}
