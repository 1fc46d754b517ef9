// Package metadata defines the normalized bibliographic record produced by
// external source lookups. Upstream response shapes never escape their
// provider packages; everything downstream of a lookup sees only Record.
package metadata

// Source identifies which bibliographic source produced a record.
type Source string

// Known sources, in fallback order.
const (
	SourceOpenLibrary Source = "openlibrary"
	SourceGoogleBooks Source = "googlebooks"
)

// Record is a normalized bibliographic record for a single ISBN.
//
// ISBN13 and ISBN10 echo the form the caller supplied; the non-matching
// form is empty. Author is the first listed author or empty. CoverURL is
// the best image variant the source offered, or empty.
type Record struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	CoverURL string `json:"cover_url"`
	ISBN13   string `json:"isbn13,omitempty"`
	ISBN10   string `json:"isbn10,omitempty"`
	Source   Source `json:"source"`
}
