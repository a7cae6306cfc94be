package domain

import "strings"

// NormalizeText prepares glossary text for storage and comparison:
//   - trims leading/trailing whitespace
//   - collapses every internal whitespace run into a single space
//
// Case, punctuation and the exact code points are preserved, so "V." and
// "v." stay distinct, and so do composed and decomposed spellings.
func NormalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
