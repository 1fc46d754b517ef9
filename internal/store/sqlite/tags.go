package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/shelfmarkapp/shelfmark-server/internal/domain"
	"github.com/shelfmarkapp/shelfmark-server/internal/id"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

const tagColumns = `id, name, created_at, updated_at`

func scanTag(scanner interface{ Scan(dest ...any) error }) (*domain.Tag, error) {
	var t domain.Tag
	var createdAt, updatedAt string

	err := scanner.Scan(&t.ID, &t.Name, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	t.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	t.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// GetTagByID returns a tag by primary key.
// Returns store.ErrTagNotFound if no tag exists.
func (s *Store) GetTagByID(ctx context.Context, tagID string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE id = ?`, tagID)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTagNotFound
	}
	return t, err
}

// GetTagByName returns the tag whose name matches case-insensitively.
// Returns store.ErrTagNotFound if no tag exists.
func (s *Store) GetTagByName(ctx context.Context, name string) (*domain.Tag, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+tagColumns+` FROM tags WHERE name = ? COLLATE NOCASE`, name)

	t, err := scanTag(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrTagNotFound
	}
	return t, err
}

// FindOrCreateTag returns the existing tag matching name case-insensitively,
// or creates one preserving the given display casing. The second return
// reports whether a new tag was created.
func (s *Store) FindOrCreateTag(ctx context.Context, name string) (*domain.Tag, bool, error) {
	existing, err := s.GetTagByName(ctx, name)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, store.ErrTagNotFound) {
		return nil, false, err
	}

	now := time.Now().UTC()
	t := &domain.Tag{
		ID:        id.MustGenerate("tag"),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO tags (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)`,
		t.ID, t.Name, formatTime(t.CreatedAt), formatTime(t.UpdatedAt))
	if err != nil {
		// Concurrent insert of the same name races on the nocase unique
		// index. Recover by reading the winner.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			winner, lookupErr := s.GetTagByName(ctx, name)
			if lookupErr != nil {
				return nil, false, lookupErr
			}
			return winner, false, nil
		}
		return nil, false, err
	}

	return t, true, nil
}

// ListAttachedTags returns every tag attached to at least one book,
// ordered by name.
func (s *Store) ListAttachedTags(ctx context.Context) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT t.id, t.name, t.created_at, t.updated_at
		FROM tags t
		JOIN book_tags bt ON bt.tag_id = t.id
		ORDER BY t.name COLLATE NOCASE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTags(rows)
}

// AddTagToBook attaches a tag to a book. Attaching an already attached
// tag is a no-op.
func (s *Store) AddTagToBook(ctx context.Context, bookID, tagID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO book_tags (book_id, tag_id, created_at)
		VALUES (?, ?, ?)`,
		bookID, tagID, formatTime(time.Now().UTC()))
	if err != nil {
		if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
			return store.ErrNotFound
		}
		return err
	}
	return nil
}

// RemoveTagFromBook detaches a tag from a book. Detaching a tag that is
// not attached is a no-op. The tag itself is never deleted.
func (s *Store) RemoveTagFromBook(ctx context.Context, bookID, tagID string) error {
	_, err := s.db.ExecContext(ctx, `
		DELETE FROM book_tags WHERE book_id = ? AND tag_id = ?`,
		bookID, tagID)
	return err
}

// GetTagsForBook returns a book's tags in the order they were attached.
func (s *Store) GetTagsForBook(ctx context.Context, bookID string) ([]*domain.Tag, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT t.id, t.name, t.created_at, t.updated_at
		FROM tags t
		JOIN book_tags bt ON bt.tag_id = t.id
		WHERE bt.book_id = ?
		ORDER BY bt.created_at, t.id`, bookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTags(rows)
}

func collectTags(rows *sql.Rows) ([]*domain.Tag, error) {
	tags := []*domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}
