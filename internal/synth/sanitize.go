// Package synth implements local feature synthesis: text sanitizing,
// assertion splitting, step classification, example table extraction,
// scenario naming, and outline rendering. Everything here is pure and
// deterministic.
package synth

import "strings"

// DefaultMaxLen is the truncation limit applied by Clean.
const DefaultMaxLen = 50

// Clean makes text safe for Gherkin table cells: pipes and newlines become
// spaces and the result is truncated to DefaultMaxLen characters.
func Clean(text string) string {
	return CleanN(text, DefaultMaxLen)
}

// CleanN is Clean with an explicit length limit. Truncation is rune-safe.
func CleanN(text string, maxLen int) string {
	s := strings.ReplaceAll(text, "|", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	if runes := []rune(s); len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return s
}
