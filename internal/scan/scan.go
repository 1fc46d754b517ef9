// Package scan consumes decoded barcode events and applies the ISBN
// acceptance filter. The decoding device itself is a collaborator; it
// delivers raw strings, one per detected code, through a Source.
//
// The server does not construct a Listener itself. Device integration
// (camera, hardware scanner) lives in the client; a host embedding one
// wires its Source to a Listener and feeds the accepted ISBN into the
// lookup flow.
package scan

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/shelfmarkapp/shelfmark-server/internal/isbn"
)

// ErrSourceClosed is returned when the source stops producing events
// before a usable ISBN arrives.
var ErrSourceClosed = errors.New("scan: source closed")

// Source produces decoded barcode strings.
type Source interface {
	// Events returns the stream of decoded strings. The channel is
	// closed when the device stops.
	Events() <-chan string
	// Release stops the device and frees its resources. Safe to call
	// more than once.
	Release() error
}

// Listener filters a source's events down to the first usable ISBN.
type Listener struct {
	logger *slog.Logger
}

// NewListener creates a new scan listener.
func NewListener(logger *slog.Logger) *Listener {
	return &Listener{logger: logger}
}

// WaitForISBN consumes events from src until one normalizes to a 10- or
// 13-character ISBN and returns it in normalized form. Events of any
// other length are ignored and scanning continues.
//
// The source is released on every exit path, including cancellation.
// Returns ctx.Err() when the context is cancelled and ErrSourceClosed
// when the event stream ends without a match. An abandoned scan never
// writes catalog state; acting on the result is the caller's decision.
func (l *Listener) WaitForISBN(ctx context.Context, src Source) (string, error) {
	sessionID := uuid.NewString()

	defer func() {
		if err := src.Release(); err != nil {
			l.logger.Warn("scan source release failed",
				"session_id", sessionID,
				"error", err,
			)
		}
	}()

	l.logger.Debug("scan session started", "session_id", sessionID)

	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("scan session cancelled", "session_id", sessionID)
			return "", ctx.Err()
		case raw, ok := <-src.Events():
			if !ok {
				return "", ErrSourceClosed
			}
			normalized := isbn.Normalize(raw)
			if !isbn.Usable(normalized) {
				l.logger.Debug("ignoring decoded event",
					"session_id", sessionID,
					"length", len(normalized),
				)
				continue
			}
			l.logger.Info("scan accepted ISBN",
				"session_id", sessionID,
				"isbn", normalized,
			)
			return normalized, nil
		}
	}
}
