// Package isbn provides ISBN normalization and classification.
package isbn

import "strings"

// Kind classifies a normalized ISBN candidate by length.
type Kind int

const (
	// Unknown means the candidate is neither 10 nor 13 characters long.
	Unknown Kind = iota
	// ISBN10 is a 10-character candidate.
	ISBN10
	// ISBN13 is a 13-character candidate.
	ISBN13
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case ISBN10:
		return "isbn10"
	case ISBN13:
		return "isbn13"
	default:
		return "unknown"
	}
}

// Normalize strips every character that is not a digit or X from raw and
// uppercases the result. Hyphens, spaces and any stray punctuation from
// typed or scanned input are dropped. The output contains only digits and
// uppercase X, so Normalize(Normalize(s)) == Normalize(s).
//
// Normalize never rejects input: callers that want to store partial input
// get the stripped string back regardless of length.
func Normalize(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == 'X' || r == 'x':
			b.WriteByte('X')
		}
	}
	return b.String()
}

// Classify reports the kind of a normalized candidate based on its length.
// It does not verify check digits; a 13-character string of the wrong
// checksum still classifies as ISBN13. See ValidISBN10 and ValidISBN13 for
// callers that want checksum verification.
func Classify(normalized string) Kind {
	switch len(normalized) {
	case 10:
		return ISBN10
	case 13:
		return ISBN13
	default:
		return Unknown
	}
}

// Usable reports whether the normalized candidate has a lookup-worthy
// length (exactly 10 or 13 characters).
func Usable(normalized string) bool {
	return Classify(normalized) != Unknown
}

// ValidISBN10 verifies the weighted modulo-11 check digit of a normalized
// 10-character candidate. The final position may be X (value 10).
//
// Nothing in the catalog pipeline rejects on checksum; this exists for
// callers that opt into strict validation.
func ValidISBN10(normalized string) bool {
	if len(normalized) != 10 {
		return false
	}
	sum := 0
	for i, r := range normalized {
		var v int
		switch {
		case r >= '0' && r <= '9':
			v = int(r - '0')
		case r == 'X' && i == 9:
			v = 10
		default:
			return false
		}
		sum += v * (10 - i)
	}
	return sum%11 == 0
}

// ValidISBN13 verifies the alternating 1/3-weighted modulo-10 check digit
// of a normalized 13-character candidate.
func ValidISBN13(normalized string) bool {
	if len(normalized) != 13 {
		return false
	}
	sum := 0
	for i, r := range normalized {
		if r < '0' || r > '9' {
			return false
		}
		v := int(r - '0')
		if i%2 == 1 {
			v *= 3
		}
		sum += v
	}
	return sum%10 == 0
}
