package openlibrary

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shelfmarkapp/shelfmark-server/internal/metadata"
)

// LookupISBN fetches the bibliographic record for an ISBN.
//
// Returns nil, nil when Open Library has no entry for the ISBN, or when
// the entry is too thin to trust: a record is accepted only if it has a
// title and at least one of author or cover image. Transport and decode
// failures return an error; the caller decides whether that is fatal.
func (c *Client) LookupISBN(ctx context.Context, isbn string) (*metadata.Record, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	key := "ISBN:" + isbn

	params := url.Values{}
	params.Set("bibkeys", key)
	params.Set("format", "json")
	params.Set("jscmd", "data")

	lookupURL := c.baseURL + "/api/books?" + params.Encode()

	c.logger.Debug("looking up Open Library",
		"isbn", isbn,
		"url", lookupURL,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, lookupURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup failed: status %d", resp.StatusCode)
	}

	// The response is an object keyed by bibkey; an unknown ISBN yields
	// an empty object, not an error status.
	var entries map[string]bibkeyEntry
	if err := json.UnmarshalRead(resp.Body, &entries); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	entry, ok := entries[key]
	if !ok {
		c.logger.Debug("Open Library has no entry", "isbn", isbn)
		return nil, nil
	}

	var author string
	if len(entry.Authors) > 0 {
		author = entry.Authors[0].Name
	}
	cover := entry.Cover.best()

	if entry.Title == "" || (author == "" && cover == "") {
		c.logger.Debug("Open Library entry too thin",
			"isbn", isbn,
			"has_title", entry.Title != "",
			"has_author", author != "",
			"has_cover", cover != "",
		)
		return nil, nil
	}

	return &metadata.Record{
		Title:    entry.Title,
		Author:   author,
		CoverURL: cover,
		Source:   metadata.SourceOpenLibrary,
	}, nil
}
