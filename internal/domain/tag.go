package domain

import "time"

// Tag is a catalog-wide label. Name keeps the display casing the user
// first typed; identity is the case-folded normalized name, so "Fantasy"
// and " fantasy " resolve to the same tag.
type Tag struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now()
}

// BookTag represents the many-to-many relationship between books and tags.
// The (BookID, TagID) pair is unique; it has no identity beyond the pair.
type BookTag struct {
	BookID    string    `json:"book_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
