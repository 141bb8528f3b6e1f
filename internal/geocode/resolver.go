package geocode

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/ukfit/eventscrape/internal/model"
)

var (
	reLocationPrefix = regexp.MustCompile(`(?i)^location:?\s*`)
	reSpaces         = regexp.MustCompile(`\s+`)
)

// Resolver resolves a free-text address into coordinates via ordered
// providers. A Resolver is owned by exactly one run; its cache and
// single-flight state never outlive the run.
type Resolver struct {
	providers []Provider
	bounds    BoundingBox
	cache     *runCache
	logger    *slog.Logger
}

// NewResolver creates a resolver trying providers in the given order.
// Nil providers are skipped, so a key-gated provider can be passed
// unconditionally.
func NewResolver(bounds BoundingBox, logger *slog.Logger, providers ...Provider) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	kept := make([]Provider, 0, len(providers))
	for _, p := range providers {
		if p != nil && !isNilProvider(p) {
			kept = append(kept, p)
		}
	}
	return &Resolver{
		providers: kept,
		bounds:    bounds,
		cache:     newRunCache(),
		logger:    logger,
	}
}

// isNilProvider catches typed-nil interface values such as a nil
// *LocationIQ from NewLocationIQ without a key.
func isNilProvider(p Provider) bool {
	switch v := p.(type) {
	case *LocationIQ:
		return v == nil
	case *Nominatim:
		return v == nil
	default:
		return false
	}
}

// NormalizeAddress strips scraped "Location:" prefixes and collapses
// whitespace. The result is the cache key.
func NormalizeAddress(address string) string {
	addr := strings.TrimSpace(address)
	addr = reLocationPrefix.ReplaceAllString(addr, "")
	addr = reSpaces.ReplaceAllString(addr, " ")
	return strings.TrimSpace(addr)
}

// Resolve turns an address into geofence-valid coordinates, or nil
// when it cannot. Exhausting all providers is never an error for the
// caller; the only errors surfaced are context cancellations.
//
// knownID is the record id of an event already present in the
// persisted store. When non-empty, Resolve returns immediately without
// touching any provider: re-scraping a known event must cost zero
// geocoding quota.
func (r *Resolver) Resolve(ctx context.Context, address string, knownID string) (*model.Coordinates, error) {
	if knownID != "" {
		return nil, nil
	}

	addr := NormalizeAddress(address)
	if addr == "" {
		return nil, nil
	}

	for {
		if coords, found := r.cache.get(addr); found {
			return coords, nil
		}

		done, wait, ok := r.cache.beginFlight(addr)
		if !ok {
			if wait == nil {
				continue // result landed between get and beginFlight
			}
			select {
			case <-wait:
				continue // re-check the cache
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		coords, err := r.search(ctx, addr)
		if err != nil {
			// Cancellation only: leave the cache untouched so a later
			// run of the same address can still resolve.
			r.cache.endFlight(addr, done)
			return nil, err
		}
		r.cache.set(addr, coords)
		r.cache.endFlight(addr, done)
		return coords, nil
	}
}

// search walks the provider chain. Every per-provider failure mode
// (auth, rate-limit rejection, empty results, malformed response,
// out-of-bounds point) is absorbed here; only exhaustion surfaces, as
// a nil result.
func (r *Resolver) search(ctx context.Context, addr string) (*model.Coordinates, error) {
	for _, p := range r.providers {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		candidates, err := p.Search(ctx, addr)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			r.logger.Debug("geocode provider failed",
				"provider", p.Name(), "address", addr, "error", err)
			continue
		}

		for _, c := range candidates {
			if r.bounds.Contains(c) {
				coords := c
				return &coords, nil
			}
		}
		r.logger.Warn("geocode result outside fence, trying next provider",
			"provider", p.Name(), "address", addr)
	}
	return nil, nil
}
