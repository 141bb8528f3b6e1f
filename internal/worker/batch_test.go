package worker

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/ukfit/eventscrape/internal/model"
	"github.com/ukfit/eventscrape/internal/pipeline"
)

// fakeNormalizer maps URLs to canned outcomes and tracks seen URLs.
type fakeNormalizer struct {
	mu   sync.Mutex
	seen map[string]bool
}

func (f *fakeNormalizer) Process(ctx context.Context, raw model.RawFields, override *pipeline.CategoryOverride) pipeline.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	switch {
	case f.seen[raw.SourceURL]:
		return pipeline.Outcome{Status: pipeline.StatusDuplicateURL}
	case strings.Contains(raw.SourceURL, "broken"):
		return pipeline.Outcome{Status: pipeline.StatusFailed, Err: errors.New("store unavailable")}
	default:
		f.seen[raw.SourceURL] = true
		return pipeline.Outcome{Status: pipeline.StatusAccepted}
	}
}

func TestBatchProcessor_AggregatesOutcomes(t *testing.T) {
	records := []model.RawFields{
		{SourceURL: "https://x/e1"},
		{SourceURL: "https://x/e2"},
		{SourceURL: "https://x/e1"}, // duplicate
		{SourceURL: "https://x/broken"},
	}

	b := NewBatchProcessor(&fakeNormalizer{}, 2)
	report, results := b.Process(context.Background(), records, nil)

	if report.Total != 4 {
		t.Errorf("total = %d, want 4", report.Total)
	}
	if report.Accepted != 2 {
		t.Errorf("accepted = %d, want 2", report.Accepted)
	}
	if report.Duplicate != 1 {
		t.Errorf("duplicate = %d, want 1", report.Duplicate)
	}
	if report.Failed != 1 {
		t.Errorf("failed = %d, want 1", report.Failed)
	}
	if len(results) != 4 {
		t.Errorf("results = %d, want 4", len(results))
	}
}

func TestBatchProcessor_EmptyInput(t *testing.T) {
	b := NewBatchProcessor(&fakeNormalizer{}, 2)
	report, results := b.Process(context.Background(), nil, nil)
	if report.Total != 0 || results != nil {
		t.Errorf("expected empty report, got %+v with %d results", report, len(results))
	}
}
