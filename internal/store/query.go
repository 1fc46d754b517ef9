package store

import "github.com/shelfmarkapp/shelfmark-server/internal/domain"

// Sort orders for catalog listings.
type Sort string

const (
	// SortCreatedDesc orders newest-first. This is the default.
	SortCreatedDesc Sort = "created_desc"
	// SortRatingDesc orders highest-rated first, unrated last,
	// newest-first as tiebreak.
	SortRatingDesc Sort = "rating_desc"
)

// Valid reports whether s is a known sort order.
func (s Sort) Valid() bool {
	return s == SortCreatedDesc || s == SortRatingDesc
}

// BookQuery filters and orders a catalog listing. Zero value lists the
// whole catalog newest-first.
type BookQuery struct {
	// Status filters by exact status when non-empty.
	Status domain.Status
	// Search is a case-insensitive substring match over title and author.
	Search string
	// TagID filters to books carrying the tag.
	TagID string
	// Sort defaults to SortCreatedDesc when empty.
	Sort Sort
}
