package variant

import (
	"regexp"
	"strings"
)

var (
	lineEndings          = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	horizontalWhitespace = regexp.MustCompile(`[^\S\n]+`)
	newlineRuns          = regexp.MustCompile(`\n{3,}`)
	underscoreRuns       = regexp.MustCompile(`_{3,}`)
)

// NormalizeText canonicalizes whitespace and underscore blanks: line endings
// become \n, horizontal whitespace runs collapse to a single space, runs of
// three or more newlines collapse to exactly two, runs of three or more
// underscores collapse to exactly four, and the result is trimmed.
func NormalizeText(text string) string {
	normalized := lineEndings.Replace(text)
	normalized = horizontalWhitespace.ReplaceAllString(normalized, " ")
	normalized = newlineRuns.ReplaceAllString(normalized, "\n\n")
	normalized = underscoreRuns.ReplaceAllString(normalized, "____")
	return strings.TrimSpace(normalized)
}
