package browser

import (
	"html"
	"strings"
)

// CleanText unescapes HTML entities and collapses runs of whitespace so the
// extracted page text reads as plain prose.
func CleanText(s string) string {
	s = html.UnescapeString(s)
	return strings.Join(strings.Fields(s), " ")
}

// Truncate limits s to max runes, appending a marker when content was dropped.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "... [truncated]"
}
