package googlebooks

import (
	"context"
	"encoding/json/v2"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shelfmarkapp/shelfmark-server/internal/metadata"
)

// SearchISBN fetches the bibliographic record for an ISBN.
//
// The first matching volume is trusted as-is, even when it is missing an
// author or cover. Returns ErrNoResults when the search matches nothing;
// any other error is a transport or decode failure.
func (c *Client) SearchISBN(ctx context.Context, isbn string) (*metadata.Record, error) {
	if err := c.wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	params := url.Values{}
	params.Set("q", "isbn:"+isbn)
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}

	searchURL := c.baseURL + "/volumes?" + params.Encode()

	c.logger.Debug("searching Google Books", "isbn", isbn)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search failed: status %d", resp.StatusCode)
	}

	var searchResp volumesResponse
	if err := json.UnmarshalRead(resp.Body, &searchResp); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}

	if len(searchResp.Items) == 0 {
		return nil, ErrNoResults
	}

	info := searchResp.Items[0].VolumeInfo

	var author string
	if len(info.Authors) > 0 {
		author = info.Authors[0]
	}

	return &metadata.Record{
		Title:    info.Title,
		Author:   author,
		CoverURL: info.ImageLinks.best(),
		Source:   metadata.SourceGoogleBooks,
	}, nil
}
