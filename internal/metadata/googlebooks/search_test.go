package googlebooks

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/shelfmarkapp/shelfmark-server/internal/metadata"
)

func newTestClient(t *testing.T, apiKey string, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient(apiKey, 0, slog.New(slog.NewTextHandler(os.Stderr, nil)))
	c.baseURL = srv.URL
	return c
}

func TestHasKey(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	if NewClient("", 0, logger).HasKey() {
		t.Error("empty key should report HasKey=false")
	}
	if !NewClient("secret", 0, logger).HasKey() {
		t.Error("non-empty key should report HasKey=true")
	}
}

func TestSearchISBN(t *testing.T) {
	c := newTestClient(t, "test-key", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/volumes" {
			t.Errorf("path: got %q", got)
		}
		q := r.URL.Query()
		if got := q.Get("q"); got != "isbn:9780553380958" {
			t.Errorf("q: got %q", got)
		}
		if got := q.Get("key"); got != "test-key" {
			t.Errorf("key: got %q", got)
		}
		w.Write([]byte(`{
			"totalItems": 1,
			"items": [{
				"volumeInfo": {
					"title": "Snow Crash",
					"authors": ["Neal Stephenson"],
					"imageLinks": {
						"smallThumbnail": "https://books.google.com/small.jpg",
						"thumbnail": "https://books.google.com/thumb.jpg"
					}
				}
			}]
		}`))
	})

	rec, err := c.SearchISBN(context.Background(), "9780553380958")
	if err != nil {
		t.Fatalf("SearchISBN: %v", err)
	}
	if rec.Title != "Snow Crash" {
		t.Errorf("Title: got %q", rec.Title)
	}
	if rec.Author != "Neal Stephenson" {
		t.Errorf("Author: got %q", rec.Author)
	}
	if rec.CoverURL != "https://books.google.com/thumb.jpg" {
		t.Errorf("CoverURL: got %q, want full thumbnail", rec.CoverURL)
	}
	if rec.Source != metadata.SourceGoogleBooks {
		t.Errorf("Source: got %q", rec.Source)
	}
}

func TestSearchISBN_FirstItemTrustedAsIs(t *testing.T) {
	c := newTestClient(t, "test-key", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"totalItems": 1,
			"items": [{"volumeInfo": {"title": "Sparse Volume"}}]
		}`))
	})

	rec, err := c.SearchISBN(context.Background(), "9780140328721")
	if err != nil {
		t.Fatalf("SearchISBN: %v", err)
	}
	if rec.Title != "Sparse Volume" {
		t.Errorf("Title: got %q", rec.Title)
	}
	if rec.Author != "" || rec.CoverURL != "" {
		t.Errorf("expected empty author and cover, got %+v", rec)
	}
}

func TestSearchISBN_NoResults(t *testing.T) {
	c := newTestClient(t, "test-key", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"totalItems": 0}`))
	})

	_, err := c.SearchISBN(context.Background(), "9780000000000")
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("expected ErrNoResults, got %v", err)
	}
}

func TestSearchISBN_ServerError(t *testing.T) {
	c := newTestClient(t, "test-key", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.SearchISBN(context.Background(), "9780553380958")
	if err == nil {
		t.Fatal("expected error for 502 response")
	}
	if errors.Is(err, ErrNoResults) {
		t.Error("transport failure must not look like a miss")
	}
}

func TestSearchISBN_NoKeyOmitsParam(t *testing.T) {
	c := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		if _, present := r.URL.Query()["key"]; present {
			t.Error("key param should be omitted when unset")
		}
		w.Write([]byte(`{"totalItems": 0}`))
	})

	_, err := c.SearchISBN(context.Background(), "9780553380958")
	if !errors.Is(err, ErrNoResults) {
		t.Errorf("expected ErrNoResults, got %v", err)
	}
}
