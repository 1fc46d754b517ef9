package sqlite

import (
	"context"
	"database/sql"
	"encoding/json/v2"
	"errors"
	"fmt"
	"time"

	"github.com/shelfmarkapp/shelfmark-server/internal/metadata"
	"github.com/shelfmarkapp/shelfmark-server/internal/store"
)

// lookupCacheTTL bounds how long a resolved bibliographic record is
// served from the cache before the upstream sources are consulted again.
const lookupCacheTTL = time.Hour

// GetCachedLookup returns the cached record for an ISBN, or nil, nil on a
// miss or when the entry has expired.
func (s *Store) GetCachedLookup(ctx context.Context, isbn string) (*store.CachedLookup, error) {
	var (
		data      []byte
		fetchedAt string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT data, fetched_at FROM lookup_cache WHERE isbn = ?`, isbn).
		Scan(&data, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	at, err := parseTime(fetchedAt)
	if err != nil {
		return nil, fmt.Errorf("parse cache timestamp: %w", err)
	}
	if time.Since(at) > lookupCacheTTL {
		return nil, nil
	}

	var rec metadata.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal cached record: %w", err)
	}

	return &store.CachedLookup{Record: &rec, FetchedAt: at}, nil
}

// SetCachedLookup stores or refreshes the cached record for an ISBN.
func (s *Store) SetCachedLookup(ctx context.Context, isbn string, rec *metadata.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO lookup_cache (isbn, data, fetched_at)
		VALUES (?, ?, ?)
		ON CONFLICT(isbn) DO UPDATE SET data = excluded.data, fetched_at = excluded.fetched_at`,
		isbn, data, formatTime(time.Now().UTC()))
	return err
}
