package openlibrary

// bibkeyEntry is a single entry in the Open Library bibkeys response,
// keyed by "ISBN:<isbn>". Only the fields the resolver reads are mapped.
type bibkeyEntry struct {
	Title   string      `json:"title"`
	Authors []bibAuthor `json:"authors"`
	Cover   bibCover    `json:"cover"`
}

type bibAuthor struct {
	Name string `json:"name"`
}

// bibCover carries the three image variants Open Library offers.
type bibCover struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// best returns the largest available image variant.
func (c bibCover) best() string {
	switch {
	case c.Large != "":
		return c.Large
	case c.Medium != "":
		return c.Medium
	default:
		return c.Small
	}
}
