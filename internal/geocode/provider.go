// Package geocode resolves free-text addresses into coordinates via
// ordered providers, with per-run caching, per-provider rate limiting
// and a geographic validity fence.
package geocode

import (
	"context"
	"errors"

	"github.com/ukfit/eventscrape/internal/model"
)

// Provider is one geocoding backend. Search returns candidate points
// for an address, best first. Implementations apply their own rate
// limit as a blocking wait on the calling path before any network I/O;
// skipping the wait risks a provider ban.
type Provider interface {
	// Name identifies the provider in logs.
	Name() string

	// Search geocodes an address restricted to the configured country.
	Search(ctx context.Context, address string) ([]model.Coordinates, error)
}

// ErrNoResults is returned by a provider when the address resolved to
// an empty result set. The resolver treats it like any other provider
// failure and moves on.
var ErrNoResults = errors.New("geocode: no results")
