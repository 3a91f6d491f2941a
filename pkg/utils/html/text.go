// ABOUTME: HTML text helpers for values scraped out of listing markup
// ABOUTME: Normalizes whitespace and non-breaking spaces left by templates

package html

import "strings"

// CollapseWhitespace trims text and folds every whitespace run, including
// non-breaking spaces, into a single space
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// FirstLine returns the first non-blank line of text, trimmed
func FirstLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
