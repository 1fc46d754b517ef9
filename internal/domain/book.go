// Package domain contains the core business entities and domain logic for the Shelfmark catalog.
package domain

import "time"

// Status is a book's reading status.
type Status string

// Reading statuses. There is no enforced transition graph; any status may
// move to any other. The finished timestamp side effect is handled by
// ApplyStatusChange.
const (
	StatusToRead   Status = "TO_READ"
	StatusRead     Status = "READ"
	StatusWishlist Status = "WISHLIST"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusToRead, StatusRead, StatusWishlist:
		return true
	}
	return false
}

// Rating bounds. Out-of-range input is clamped, not rejected.
const (
	MinRating = 1
	MaxRating = 5
)

// ClampRating forces a rating into [MinRating, MaxRating].
func ClampRating(r int) int {
	if r < MinRating {
		return MinRating
	}
	if r > MaxRating {
		return MaxRating
	}
	return r
}

// Book represents one copy in the catalog.
//
// Optional fields are pointers so that "absent" and "empty string" stay
// distinguishable at every call site.
type Book struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Author     *string    `json:"author,omitempty"`
	Status     Status     `json:"status"`
	Rating     *int       `json:"rating,omitempty"`
	Review     *string    `json:"review,omitempty"`
	CoverURL   *string    `json:"cover_url,omitempty"`
	ISBN       *string    `json:"isbn,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`

	// Tags in association order. Derived; loaded by the store.
	Tags []*Tag `json:"tags,omitempty"`
}

// InitTimestamps sets CreatedAt and UpdatedAt to now.
// Call this when creating a new book.
func (b *Book) InitTimestamps() {
	now := time.Now()
	b.CreatedAt = now
	b.UpdatedAt = now
}

// Touch updates the UpdatedAt timestamp to the current time.
func (b *Book) Touch() {
	b.UpdatedAt = time.Now()
}

// SetRating clamps and assigns a rating. A nil pointer clears it.
func (b *Book) SetRating(r *int) {
	if r == nil {
		b.Rating = nil
		return
	}
	clamped := ClampRating(*r)
	b.Rating = &clamped
}

// ApplyStatusChange moves the book from prev to next and applies the
// finished-timestamp rule:
//
//   - entering READ from a non-READ state sets FinishedAt to now
//   - leaving READ clears FinishedAt
//   - any other transition, including re-saving while READ, leaves
//     FinishedAt untouched
//
// The rule is evaluated once per edit by comparing prev to next; it is
// never recomputed on read. Creation counts as a transition from the
// zero-value status, so a book created as READ gets a finish date.
func (b *Book) ApplyStatusChange(prev, next Status) {
	b.Status = next
	switch {
	case next == StatusRead && prev != StatusRead:
		now := time.Now()
		b.FinishedAt = &now
	case next != StatusRead && prev == StatusRead:
		b.FinishedAt = nil
	}
}
