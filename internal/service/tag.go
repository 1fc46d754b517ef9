package service

import (
	"context"
	"log/slog"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	"github.com/shelfmarkapp/shelfmark-server/internal/errors"
	"github.com/shelfmarkapp/shelfmark-server/internal/normalize"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

// TagService orchestrates tag operations. Tags are catalog-wide; a tag
// exists independently of the books it is attached to.
type TagService struct {
	store  store.Store
	logger *slog.Logger
}

// NewTagService creates a new tag service.
func NewTagService(st store.Store, logger *slog.Logger) *TagService {
	return &TagService{
		store:  st,
		logger: logger,
	}
}

// ListTags returns every tag attached to at least one book.
func (s *TagService) ListTags(ctx context.Context) ([]*domain.Tag, error) {
	return s.store.ListAttachedTags(ctx)
}

// GetTagsForBook returns a book's tags in attach order.
func (s *TagService) GetTagsForBook(ctx context.Context, bookID string) ([]*domain.Tag, error) {
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, errors.NotFound("book not found")
		}
		return nil, err
	}
	return s.store.GetTagsForBook(ctx, bookID)
}

// AttachTag attaches a tag to a book, creating the tag on first use.
//
// The raw name is normalized for display; identity is case-insensitive,
// so "Sci-Fi" and "sci-fi" resolve to one tag with the first writer's
// casing. Attaching a tag that is already on the book is a no-op. The
// second return reports whether the tag was newly created.
func (s *TagService) AttachTag(ctx context.Context, bookID, rawName string) (*domain.Tag, bool, error) {
	name := normalize.TagName(rawName)
	if name == "" {
		return nil, false, errors.Validation("tag name is empty")
	}

	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return nil, false, errors.NotFound("book not found")
		}
		return nil, false, err
	}

	tag, created, err := s.store.FindOrCreateTag(ctx, name)
	if err != nil {
		return nil, false, err
	}

	if err := s.store.AddTagToBook(ctx, bookID, tag.ID); err != nil {
		return nil, false, err
	}

	s.logger.Debug("tag attached",
		"book_id", bookID,
		"tag_id", tag.ID,
		"created", created,
	)
	return tag, created, nil
}

// DetachTag removes a tag from a book. The tag record survives even when
// this was its last association. Detaching a tag that is not attached is
// a no-op.
func (s *TagService) DetachTag(ctx context.Context, bookID, tagID string) error {
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrBookNotFound) {
			return errors.NotFound("book not found")
		}
		return err
	}
	if _, err := s.store.GetTagByID(ctx, tagID); err != nil {
		if errors.Is(err, store.ErrTagNotFound) {
			return errors.NotFound("tag not found")
		}
		return err
	}
	return s.store.RemoveTagFromBook(ctx, bookID, tagID)
}
