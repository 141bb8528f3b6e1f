// Package dedup decides whether a candidate record has already been
// seen this run or already exists in the persisted store.
package dedup

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ukfit/eventscrape/internal/store"
)

// Gate tracks in-run identity and delegates store-existence checks.
// A Gate is owned by exactly one run and injected into every task; its
// sets grow monotonically and are never evicted.
//
// Updates are linearizable: a record's check observes every
// prior-completed insertion from the same run.
type Gate struct {
	mu        sync.Mutex
	urls      map[string]struct{}
	nameDates map[string]struct{}

	store  store.EventStore
	logger *slog.Logger
}

// NewGate creates a run-scoped gate. The store may be nil when
// persistence is disabled; ExistsInStore then always reports absent.
func NewGate(st store.EventStore, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{
		urls:      make(map[string]struct{}),
		nameDates: make(map[string]struct{}),
		store:     st,
		logger:    logger,
	}
}

// SeenURL reports whether the source URL was already processed this
// run, recording it on first ask. This is the cheap check that runs
// before any parsing or geocoding work.
func (g *Gate) SeenURL(url string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, seen := g.urls[url]; seen {
		return true
	}
	g.urls[url] = struct{}{}
	return false
}

// SeenNameDate reports whether the name|date composite key was already
// processed this run, recording it on first ask. Callers use this as a
// warning signal only: two genuinely distinct events can share name
// and date on different URLs, so it never suppresses a record on its
// own.
func (g *Gate) SeenNameDate(name, date string) bool {
	key := name + "|" + date
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, seen := g.nameDates[key]; seen {
		return true
	}
	g.nameDates[key] = struct{}{}
	return false
}

// ExistsInStore returns the persisted record id for the candidate, or
// "" when the store has never seen it. Runs before geocoding so a
// re-scraped event costs zero provider calls.
func (g *Gate) ExistsInStore(ctx context.Context, url, name, date string) (string, error) {
	if g.store == nil {
		return "", nil
	}
	return g.store.FindExisting(ctx, url, name, date)
}
