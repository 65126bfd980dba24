package util

import "strings"

// CleanText collapses runs of whitespace (including the non-breaking spaces
// both boards pad their cells with) into single spaces.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
