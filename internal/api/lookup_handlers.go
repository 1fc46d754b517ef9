package api

import (
	"net/http"

	"github.com/shelfmarkapp/shelfmark-server/internal/http/response"
	"github.com/shelfmarkapp/shelfmark-server/internal/metadata"
)

// lookupResponse is the wire shape of a resolved bibliographic record.
// The ISBN echo fields are null when the input length did not match that
// form, so clients can distinguish "absent" from "empty".
type lookupResponse struct {
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	CoverURL string  `json:"cover_url"`
	ISBN13   *string `json:"isbn13"`
	ISBN10   *string `json:"isbn10"`
	Source   string  `json:"source"`
}

func newLookupResponse(rec *metadata.Record) lookupResponse {
	resp := lookupResponse{
		Title:    rec.Title,
		Author:   rec.Author,
		CoverURL: rec.CoverURL,
		Source:   string(rec.Source),
	}
	if rec.ISBN13 != "" {
		resp.ISBN13 = &rec.ISBN13
	}
	if rec.ISBN10 != "" {
		resp.ISBN10 = &rec.ISBN10
	}
	return resp
}

// handleLookupISBN resolves ?isbn= to a bibliographic record.
func (s *Server) handleLookupISBN(w http.ResponseWriter, r *http.Request) {
	rec, err := s.services.Lookup.Lookup(r.Context(), r.URL.Query().Get("isbn"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, newLookupResponse(rec), s.logger)
}
