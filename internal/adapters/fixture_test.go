package adapters

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/ukfit/eventscrape/internal/pipeline"
)

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFixtureSource_Fetch(t *testing.T) {
	path := writeFixture(t, `[
		{"title": "Hyde Park 5K", "source_url": "https://x/e1"},
		{"title": "Brighton Marathon", "source_url": "https://x/e2", "site_id": "override-site"}
	]`)

	src := NewFixtureSource("x", path, nil)
	records, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].SiteID != "x" {
		t.Errorf("record without site id must inherit source's, got %q", records[0].SiteID)
	}
	if records[1].SiteID != "override-site" {
		t.Errorf("explicit site id must survive, got %q", records[1].SiteID)
	}
}

func TestFixtureSource_BadJSON(t *testing.T) {
	path := writeFixture(t, `{not json`)
	src := NewFixtureSource("x", path, nil)
	if _, err := src.Fetch(context.Background()); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	r.Register(NewFixtureSource("a", "a.json", nil))
	r.Register(NewFixtureSource("b", "b.json", &pipeline.CategoryOverride{Category: "Charity", Subcategory: "Fundraising"}))

	if got := r.Lookup("a"); got == nil || got.SiteID() != "a" {
		t.Errorf("Lookup(a) = %v", got)
	}
	if r.Lookup("missing") != nil {
		t.Error("Lookup(missing) must be nil")
	}
	if len(r.Sources()) != 2 {
		t.Errorf("expected 2 sources, got %d", len(r.Sources()))
	}

	// Re-registering a site id replaces in place.
	r.Register(NewFixtureSource("a", "a2.json", nil))
	if len(r.Sources()) != 2 {
		t.Errorf("expected 2 sources after replacement, got %d", len(r.Sources()))
	}
	if r.Lookup("b").Override() == nil {
		t.Error("expected override on source b")
	}
}
