package googlebooks

// volumesResponse is the shape of a volumes search response. Only the
// fields the resolver reads are mapped.
type volumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []volume `json:"items"`
}

type volume struct {
	VolumeInfo volumeInfo `json:"volumeInfo"`
}

type volumeInfo struct {
	Title      string     `json:"title"`
	Authors    []string   `json:"authors"`
	ImageLinks imageLinks `json:"imageLinks"`
}

type imageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// best returns the larger available thumbnail.
func (l imageLinks) best() string {
	if l.Thumbnail != "" {
		return l.Thumbnail
	}
	return l.SmallThumbnail
}
