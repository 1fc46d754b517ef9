// Package store defines the persistence interface for the Shelfmark server.
package store

import (
	"context"
	"time"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	"github.com/shelfmarkapp/shelfmark-server/internal/metadata"
)

// Store defines the interface for all persistence operations.
type Store interface {
	// Lifecycle
	Close() error

	// Books
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id string) error
	ListBooks(ctx context.Context, q BookQuery) ([]*domain.Book, error)
	CountBooks(ctx context.Context) (int, error)

	// FindBookByISBN scans the catalog newest-first for an entry whose
	// normalized ISBN matches, skipping excludeID (so an edit does not
	// flag the book being edited). Returns nil, nil when there is no
	// match or the candidate is empty.
	FindBookByISBN(ctx context.Context, isbn, excludeID string) (*domain.Book, error)

	// Tags
	GetTagByID(ctx context.Context, tagID string) (*domain.Tag, error)
	GetTagByName(ctx context.Context, name string) (*domain.Tag, error)
	FindOrCreateTag(ctx context.Context, name string) (*domain.Tag, bool, error)
	ListAttachedTags(ctx context.Context) ([]*domain.Tag, error)
	AddTagToBook(ctx context.Context, bookID, tagID string) error
	RemoveTagFromBook(ctx context.Context, bookID, tagID string) error
	GetTagsForBook(ctx context.Context, bookID string) ([]*domain.Tag, error)

	// Lookup cache
	GetCachedLookup(ctx context.Context, isbn string) (*CachedLookup, error)
	SetCachedLookup(ctx context.Context, isbn string, rec *metadata.Record) error
}

// CachedLookup is a cached bibliographic record with its fetch time.
type CachedLookup struct {
	Record    *metadata.Record
	FetchedAt time.Time
}
