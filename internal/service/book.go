package service

import (
	"context"
	"log/slog"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	"github.com/shelfmarkapp/shelfmark-server/internal/errors"
	"github.com/shelfmarkapp/shelfmark-server/internal/id"
	"github.com/shelfmarkapp/shelfmark-server/internal/isbn"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

// BookService orchestrates catalog operations on books.
type BookService struct {
	store  store.Store
	logger *slog.Logger
}

// NewBookService creates a new book service.
func NewBookService(st store.Store, logger *slog.Logger) *BookService {
	return &BookService{
		store:  st,
		logger: logger,
	}
}

// BookInput carries the mutable fields of a book for create and update.
// Optional fields are pointers; nil means "absent" on create and "clear"
// on update.
type BookInput struct {
	Title    string
	Author   *string
	Status   domain.Status
	Rating   *int
	Review   *string
	CoverURL *string
	ISBN     *string
}

func (in BookInput) resolveStatus() (domain.Status, error) {
	status := in.Status
	if status == "" {
		status = domain.StatusToRead
	}
	if !status.Valid() {
		return "", errors.Validationf("unknown status %q", status)
	}
	return status, nil
}

// CreateBook adds a book to the catalog.
//
// The ISBN is stored in normalized form. A duplicate ISBN does not block
// creation; use CheckDuplicate for the advisory warning.
func (s *BookService) CreateBook(ctx context.Context, input BookInput) (*domain.Book, error) {
	if input.Title == "" {
		return nil, errors.Validation("title is required")
	}
	status, err := input.resolveStatus()
	if err != nil {
		return nil, err
	}

	book := &domain.Book{
		ID:       id.MustGenerate("book"),
		Title:    input.Title,
		Author:   input.Author,
		Review:   input.Review,
		CoverURL: input.CoverURL,
		ISBN:     normalizeISBNField(input.ISBN),
		Tags:     []*domain.Tag{},
	}
	book.SetRating(input.Rating)
	book.InitTimestamps()
	book.ApplyStatusChange("", status)

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book created",
		"book_id", book.ID,
		"title", book.Title,
		"status", book.Status,
	)
	return book, nil
}

// GetBook returns a book with its tags.
func (s *BookService) GetBook(ctx context.Context, bookID string) (*domain.Book, error) {
	book, err := s.store.GetBook(ctx, bookID)
	if errors.Is(err, store.ErrBookNotFound) {
		return nil, errors.NotFound("book not found")
	}
	return book, err
}

// UpdateBook replaces the mutable fields of a book. The finished
// timestamp follows the status transition, compared against the stored
// status.
func (s *BookService) UpdateBook(ctx context.Context, bookID string, input BookInput) (*domain.Book, error) {
	if input.Title == "" {
		return nil, errors.Validation("title is required")
	}
	status, err := input.resolveStatus()
	if err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, bookID)
	if errors.Is(err, store.ErrBookNotFound) {
		return nil, errors.NotFound("book not found")
	}
	if err != nil {
		return nil, err
	}

	prev := book.Status
	book.Title = input.Title
	book.Author = input.Author
	book.Review = input.Review
	book.CoverURL = input.CoverURL
	book.ISBN = normalizeISBNField(input.ISBN)
	book.SetRating(input.Rating)
	book.ApplyStatusChange(prev, status)
	book.Touch()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// UpdateStatus changes only the reading status of a book.
func (s *BookService) UpdateStatus(ctx context.Context, bookID string, status domain.Status) (*domain.Book, error) {
	if !status.Valid() {
		return nil, errors.Validationf("unknown status %q", status)
	}

	book, err := s.store.GetBook(ctx, bookID)
	if errors.Is(err, store.ErrBookNotFound) {
		return nil, errors.NotFound("book not found")
	}
	if err != nil {
		return nil, err
	}

	prev := book.Status
	book.ApplyStatusChange(prev, status)
	book.Touch()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, err
	}

	s.logger.Info("book status changed",
		"book_id", book.ID,
		"from", prev,
		"to", status,
	)
	return book, nil
}

// DeleteBook removes a book and its tag associations.
func (s *BookService) DeleteBook(ctx context.Context, bookID string) error {
	err := s.store.DeleteBook(ctx, bookID)
	if errors.Is(err, store.ErrBookNotFound) {
		return errors.NotFound("book not found")
	}
	return err
}

// ListBooks returns books matching the query.
func (s *BookService) ListBooks(ctx context.Context, q store.BookQuery) ([]*domain.Book, error) {
	if q.Status != "" && !q.Status.Valid() {
		return nil, errors.Validationf("unknown status %q", q.Status)
	}
	return s.store.ListBooks(ctx, q)
}

// CountBooks returns the catalog size.
func (s *BookService) CountBooks(ctx context.Context) (int, error) {
	return s.store.CountBooks(ctx)
}

// CheckDuplicate reports the newest existing book sharing the candidate
// ISBN, excluding excludeID so an edit never flags itself. The result is
// advisory; nothing blocks saving a duplicate. Returns nil, nil when the
// candidate normalizes to empty or nothing matches.
func (s *BookService) CheckDuplicate(ctx context.Context, rawISBN, excludeID string) (*domain.Book, error) {
	normalized := isbn.Normalize(rawISBN)
	if normalized == "" {
		return nil, nil
	}
	return s.store.FindBookByISBN(ctx, normalized, excludeID)
}

// normalizeISBNField normalizes an optional ISBN, mapping input that
// normalizes to empty to absent.
func normalizeISBNField(raw *string) *string {
	if raw == nil {
		return nil
	}
	normalized := isbn.Normalize(*raw)
	if normalized == "" {
		return nil
	}
	return &normalized
}
