// Package normalize provides utilities for normalizing and sanitizing data.
package normalize

import (
	"regexp"
	"strings"
)

// Matches runs of whitespace for collapsing.
var whitespaceRe = regexp.MustCompile(`\s+`)

// TagName converts raw user input to a canonical tag name.
// Display case is preserved; tag identity is decided case-insensitively
// via TagKey.
//
// Normalization rules:
//  1. Trim leading/trailing whitespace
//  2. Collapse internal whitespace runs to a single space
//
// Examples:
//
//	"  Fantasy "      → "Fantasy"
//	"slow   burn"     → "slow burn"
//	"\tSci\nFi\t"     → "Sci Fi"
func TagName(raw string) string {
	s := strings.TrimSpace(sanitizeString(raw))
	return whitespaceRe.ReplaceAllString(s, " ")
}

// TagKey returns the case-folded comparison key for a tag name.
// Two raw inputs name the same tag iff their keys are equal.
func TagKey(raw string) string {
	return strings.ToLower(TagName(raw))
}

// sanitizeString removes null bytes from strings, which can cause
// issues in databases and JSON parsing. Decoded barcode payloads and
// pasted text occasionally carry null terminators.
func sanitizeString(s string) string {
	return strings.Map(func(r rune) rune {
		if r == 0 { // null byte
			return -1 // drop it
		}
		return r
	}, s)
}
