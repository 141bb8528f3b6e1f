package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/ukfit/eventscrape/internal/model"
	"github.com/ukfit/eventscrape/internal/pipeline"
)

// FixtureSource reads raw records from a JSON file: an array of
// RawFields objects. It backs file-driven runs and lets the pipeline
// be exercised without any live scraping.
type FixtureSource struct {
	siteID   string
	path     string
	override *pipeline.CategoryOverride
}

// NewFixtureSource creates a file-backed source. The override may be
// nil.
func NewFixtureSource(siteID, path string, override *pipeline.CategoryOverride) *FixtureSource {
	return &FixtureSource{siteID: siteID, path: path, override: override}
}

// SiteID returns the configured site id.
func (s *FixtureSource) SiteID() string {
	return s.siteID
}

// Override returns the configured forced classification, if any.
func (s *FixtureSource) Override() *pipeline.CategoryOverride {
	return s.override
}

// Fetch reads and decodes the fixture file. Records missing a site id
// inherit the source's.
func (s *FixtureSource) Fetch(ctx context.Context) ([]model.RawFields, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}

	var records []model.RawFields
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", s.path, err)
	}

	for i := range records {
		if records[i].SiteID == "" {
			records[i].SiteID = s.siteID
		}
	}
	return records, nil
}
