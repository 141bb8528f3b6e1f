// Package store is the persistence boundary for normalized events.
package store

import (
	"context"
	"errors"

	"github.com/ukfit/eventscrape/internal/model"
)

// ErrUnavailable wraps store connectivity failures. The batch driver
// skips and logs the affected record; it never aborts the batch.
var ErrUnavailable = errors.New("store unavailable")

// EventStore is the persistence collaborator contract. Lookups only
// consider published, non-deleted records.
type EventStore interface {
	// FindExisting returns the record id of an already-ingested event,
	// or "" when none exists. Lookup order is source URL (exact, then
	// content-text fallback), then name + exact calendar date.
	FindExisting(ctx context.Context, url, name, date string) (string, error)

	// Insert persists a normalized event and returns its record id.
	Insert(ctx context.Context, ev *model.NormalizedEvent) (string, error)
}
