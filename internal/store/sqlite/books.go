package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

// bookColumns is the ordered list of columns selected in book queries.
// Must match the scan order in scanBook.
const bookColumns = `id, title, author, status, rating, review, cover_url, isbn,
	created_at, updated_at, finished_at`

// scanBook scans a sql.Row (or sql.Rows via its Scan method) into a domain.Book.
// Tags are not loaded here; see loadBookTags.
func scanBook(scanner interface{ Scan(dest ...any) error }) (*domain.Book, error) {
	var b domain.Book

	var (
		author     sql.NullString
		rating     sql.NullInt64
		review     sql.NullString
		coverURL   sql.NullString
		isbn       sql.NullString
		status     string
		createdAt  string
		updatedAt  string
		finishedAt sql.NullString
	)

	err := scanner.Scan(
		&b.ID,
		&b.Title,
		&author,
		&status,
		&rating,
		&review,
		&coverURL,
		&isbn,
		&createdAt,
		&updatedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}

	b.Status = domain.Status(status)

	if author.Valid {
		b.Author = &author.String
	}
	if rating.Valid {
		r := int(rating.Int64)
		b.Rating = &r
	}
	if review.Valid {
		b.Review = &review.String
	}
	if coverURL.Valid {
		b.CoverURL = &coverURL.String
	}
	if isbn.Valid {
		b.ISBN = &isbn.String
	}

	b.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	b.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	b.FinishedAt, err = parseNullableTime(finishedAt)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

// CreateBook inserts a new book into the catalog.
func (s *Store) CreateBook(ctx context.Context, book *domain.Book) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO books (id, title, author, status, rating, review, cover_url, isbn,
			created_at, updated_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		book.ID,
		book.Title,
		nullableString(book.Author),
		string(book.Status),
		nullableInt(book.Rating),
		nullableString(book.Review),
		nullableString(book.CoverURL),
		nullableString(book.ISBN),
		formatTime(book.CreatedAt),
		formatTime(book.UpdatedAt),
		formatNullableTime(book.FinishedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return store.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetBook retrieves a book by ID with its tags in association order.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *Store) GetBook(ctx context.Context, id string) (*domain.Book, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+bookColumns+` FROM books WHERE id = ?`, id)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrBookNotFound
	}
	if err != nil {
		return nil, err
	}

	b.Tags, err = s.GetTagsForBook(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	return b, nil
}

// UpdateBook replaces all mutable fields of a book.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *Store) UpdateBook(ctx context.Context, book *domain.Book) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE books
		SET title = ?, author = ?, status = ?, rating = ?, review = ?,
			cover_url = ?, isbn = ?, updated_at = ?, finished_at = ?
		WHERE id = ?`,
		book.Title,
		nullableString(book.Author),
		string(book.Status),
		nullableInt(book.Rating),
		nullableString(book.Review),
		nullableString(book.CoverURL),
		nullableString(book.ISBN),
		formatTime(book.UpdatedAt),
		formatNullableTime(book.FinishedAt),
		book.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrBookNotFound
	}
	return nil
}

// DeleteBook removes a book. Its book_tags rows cascade; tags themselves
// are never deleted by catalog operations.
// Returns store.ErrBookNotFound if the book does not exist.
func (s *Store) DeleteBook(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM books WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrBookNotFound
	}
	return nil
}

// CountBooks returns the number of books in the catalog.
func (s *Store) CountBooks(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM books`).Scan(&count)
	return count, err
}

// ListBooks returns books matching the query, tags loaded, in the
// requested order.
func (s *Store) ListBooks(ctx context.Context, q store.BookQuery) ([]*domain.Book, error) {
	var (
		where []string
		args  []any
	)

	if q.Status != "" {
		where = append(where, `status = ?`)
		args = append(args, string(q.Status))
	}
	if q.Search != "" {
		needle := "%" + escapeLike(strings.ToLower(q.Search)) + "%"
		where = append(where, `(lower(title) LIKE ? ESCAPE '\' OR lower(coalesce(author, '')) LIKE ? ESCAPE '\')`)
		args = append(args, needle, needle)
	}
	if q.TagID != "" {
		where = append(where, `EXISTS (SELECT 1 FROM book_tags bt WHERE bt.book_id = books.id AND bt.tag_id = ?)`)
		args = append(args, q.TagID)
	}

	query := `SELECT ` + bookColumns + ` FROM books`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}

	switch q.Sort {
	case store.SortRatingDesc:
		// NULL ratings sort after any numeric rating in SQLite DESC order.
		query += ` ORDER BY rating DESC, created_at DESC`
	default:
		query += ` ORDER BY created_at DESC`
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []*domain.Book
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, b := range books {
		b.Tags, err = s.GetTagsForBook(ctx, b.ID)
		if err != nil {
			return nil, fmt.Errorf("load tags for %s: %w", b.ID, err)
		}
	}

	if books == nil {
		books = []*domain.Book{}
	}
	return books, nil
}

// FindBookByISBN scans the catalog newest-first for a book whose ISBN
// matches the candidate case-insensitively, skipping excludeID.
// Returns nil, nil when the candidate is empty or nothing matches.
func (s *Store) FindBookByISBN(ctx context.Context, isbn, excludeID string) (*domain.Book, error) {
	if isbn == "" {
		return nil, nil
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT `+bookColumns+` FROM books
		WHERE isbn IS NOT NULL AND isbn <> ''
			AND isbn = ? COLLATE NOCASE
			AND (? = '' OR id <> ?)
		ORDER BY created_at DESC
		LIMIT 1`,
		isbn, excludeID, excludeID)

	b, err := scanBook(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// escapeLike escapes LIKE wildcards in user-supplied search input.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
