// Package adapters defines the contract between per-site scrapers and
// the normalization pipeline. The DOM extraction itself lives outside
// this repository; a Source only has to deliver RawFields.
package adapters

import (
	"context"

	"github.com/ukfit/eventscrape/internal/model"
	"github.com/ukfit/eventscrape/internal/pipeline"
)

// Source produces raw records for one site.
type Source interface {
	// SiteID identifies the site in records and logs.
	SiteID() string

	// Fetch returns every raw record the source currently lists.
	Fetch(ctx context.Context) ([]model.RawFields, error)

	// Override returns the site's forced classification, or nil when
	// records should be classified by content. Some sites list only
	// one kind of event; forcing the category at the source beats
	// keyword guessing.
	Override() *pipeline.CategoryOverride
}

// Registry holds the configured sources in registration order.
type Registry struct {
	sources []Source
	byID    map[string]Source
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byID: make(map[string]Source)}
}

// Register adds a source; a later registration with the same site id
// replaces the earlier one.
func (r *Registry) Register(src Source) {
	if _, exists := r.byID[src.SiteID()]; !exists {
		r.sources = append(r.sources, src)
	} else {
		for i, s := range r.sources {
			if s.SiteID() == src.SiteID() {
				r.sources[i] = src
				break
			}
		}
	}
	r.byID[src.SiteID()] = src
}

// Lookup returns the source for a site id, or nil.
func (r *Registry) Lookup(siteID string) Source {
	return r.byID[siteID]
}

// Sources returns all sources in registration order.
func (r *Registry) Sources() []Source {
	return r.sources
}
