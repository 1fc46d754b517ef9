package service

import (
	"context"
	"log/slog"

	"github.com/shelfmarkapp/shelfmark-server/internal/errors"
	"github.com/shelfmarkapp/shelfmark-server/internal/isbn"
	"github.com/shelfmarkapp/shelfmark-server/internal/metadata"
	"github.com/shelfmarkapp/shelfmark-server/internal/metadata/googlebooks"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

// OpenLibrarySource is the first bibliographic source in the resolver
// chain. Its misses and failures are soft.
type OpenLibrarySource interface {
	LookupISBN(ctx context.Context, isbn string) (*metadata.Record, error)
}

// GoogleBooksSource is the fallback bibliographic source. It requires an
// API key and its failures are surfaced to the caller.
type GoogleBooksSource interface {
	SearchISBN(ctx context.Context, isbn string) (*metadata.Record, error)
	HasKey() bool
}

// LookupService resolves an ISBN to a bibliographic record by consulting
// sources in a fixed order with a persistent cache in front.
type LookupService struct {
	store       store.Store
	openLibrary OpenLibrarySource
	googleBooks GoogleBooksSource
	logger      *slog.Logger
}

// NewLookupService creates a new lookup service.
func NewLookupService(
	st store.Store,
	openLibrary OpenLibrarySource,
	googleBooks GoogleBooksSource,
	logger *slog.Logger,
) *LookupService {
	return &LookupService{
		store:       st,
		openLibrary: openLibrary,
		googleBooks: googleBooks,
		logger:      logger,
	}
}

// Lookup resolves raw ISBN input to a bibliographic record.
//
// The input is normalized first; input that normalizes to empty is
// rejected. Open Library is consulted first and any miss or failure there
// falls through silently to Google Books. Google Books outcomes are
// final: a missing API key, an empty result set, and a transport failure
// each map to a distinct error code.
func (s *LookupService) Lookup(ctx context.Context, rawISBN string) (*metadata.Record, error) {
	normalized := isbn.Normalize(rawISBN)
	if normalized == "" {
		return nil, errors.InvalidInput("Missing isbn")
	}

	if cached, err := s.store.GetCachedLookup(ctx, normalized); err != nil {
		s.logger.Warn("lookup cache read failed", "error", err, "isbn", normalized)
	} else if cached != nil {
		s.logger.Debug("lookup cache hit",
			"isbn", normalized,
			"source", cached.Record.Source,
			"fetched_at", cached.FetchedAt,
		)
		return cached.Record, nil
	}

	if rec, err := s.openLibrary.LookupISBN(ctx, normalized); err != nil {
		// Soft failure, the next source gets its chance.
		s.logger.Warn("Open Library lookup failed", "error", err, "isbn", normalized)
	} else if rec != nil {
		return s.finish(ctx, normalized, rec), nil
	}

	if !s.googleBooks.HasKey() {
		return nil, errors.ConfigurationMissing("Google Books API key is not configured")
	}

	rec, err := s.googleBooks.SearchISBN(ctx, normalized)
	if errors.Is(err, googlebooks.ErrNoResults) {
		return nil, errors.NotFound("No results for that ISBN")
	}
	if err != nil {
		return nil, errors.LookupFailed("ISBN lookup failed").WithCause(err)
	}

	return s.finish(ctx, normalized, rec), nil
}

// finish stamps the ISBN echo onto the record and caches it.
func (s *LookupService) finish(ctx context.Context, normalized string, rec *metadata.Record) *metadata.Record {
	switch isbn.Classify(normalized) {
	case isbn.ISBN13:
		rec.ISBN13 = normalized
	case isbn.ISBN10:
		rec.ISBN10 = normalized
	}

	if err := s.store.SetCachedLookup(ctx, normalized, rec); err != nil {
		s.logger.Warn("lookup cache write failed", "error", err, "isbn", normalized)
	}

	s.logger.Debug("resolved ISBN",
		"isbn", normalized,
		"source", rec.Source,
		"title", rec.Title,
	)
	return rec
}
