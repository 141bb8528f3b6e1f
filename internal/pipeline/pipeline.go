// Package pipeline composes the date normalizer, category classifier,
// deduplication gate and geocode resolver into the per-record
// normalization flow every site adapter funnels raw fields through.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ukfit/eventscrape/internal/classify"
	"github.com/ukfit/eventscrape/internal/dedup"
	"github.com/ukfit/eventscrape/internal/geocode"
	"github.com/ukfit/eventscrape/internal/llm"
	"github.com/ukfit/eventscrape/internal/metrics"
	"github.com/ukfit/eventscrape/internal/model"
	"github.com/ukfit/eventscrape/internal/normalize"
	"github.com/ukfit/eventscrape/internal/store"
	"github.com/ukfit/eventscrape/internal/util"
)

// CategoryOverride forces a fixed classification for every record of a
// site, regardless of content. It is an adapter-level decision passed
// in explicitly so the precedence is visible at the call site.
type CategoryOverride struct {
	Category    string
	Subcategory string
}

// Pipeline runs the full normalization state machine for one run.
// All shared mutable state (geocode cache, seen sets) is owned here
// and injected into the components; nothing is process-global.
type Pipeline struct {
	classifier *classify.Classifier
	geocoder   *geocode.Resolver
	gate       *dedup.Gate
	store      store.EventStore
	summarizer *llm.Summarizer
	metrics    *metrics.BatchMetrics
	bounds     geocode.BoundingBox
	logger     *slog.Logger
}

// Options wires the pipeline's collaborators. Store, Metrics and
// Logger may be nil. Geocoder, when set, replaces the resolver built
// from configuration (used by tests to point at fake providers).
type Options struct {
	Config   *model.Config
	Store    store.EventStore
	Metrics  *metrics.BatchMetrics
	Logger   *slog.Logger
	Geocoder *geocode.Resolver
}

// New creates a pipeline for one run from configuration.
func New(opts Options) (*Pipeline, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = model.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	taxonomy := classify.DefaultTaxonomy()
	if cfg.Taxonomy.File != "" {
		var err error
		taxonomy, err = classify.Load(cfg.Taxonomy.File)
		if err != nil {
			return nil, fmt.Errorf("load taxonomy: %w", err)
		}
	}

	var summarizer *llm.Summarizer
	if cfg.LLM.Enabled {
		s, err := llm.NewSummarizer(cfg.LLM)
		if err != nil {
			logger.Warn("failed to initialize llm summarizer, continuing without", "error", err)
		} else {
			summarizer = s
		}
	}

	bounds := geocode.BoundingBox{
		MinLat: cfg.Geocode.MinLat,
		MaxLat: cfg.Geocode.MaxLat,
		MinLon: cfg.Geocode.MinLon,
		MaxLon: cfg.Geocode.MaxLon,
	}

	resolver := opts.Geocoder
	if resolver == nil {
		resolver = newResolverFromConfig(cfg, bounds, logger)
	}

	return &Pipeline{
		classifier: classify.NewClassifier(taxonomy),
		geocoder:   resolver,
		gate:       dedup.NewGate(opts.Store, logger),
		store:      opts.Store,
		summarizer: summarizer,
		metrics:    opts.Metrics,
		bounds:     bounds,
		logger:     logger,
	}, nil
}

func newResolverFromConfig(cfg *model.Config, bounds geocode.BoundingBox, logger *slog.Logger) *geocode.Resolver {
	return geocode.NewResolver(bounds, logger,
		geocode.NewLocationIQ(geocode.LocationIQOptions{
			Key:         cfg.Geocode.LocationIQKey,
			CountryCode: cfg.Geocode.CountryCode,
			Timeout:     cfg.Geocode.Timeout,
			RPS:         cfg.Geocode.LocationIQRPS,
			UserAgent:   cfg.Geocode.UserAgent,
		}),
		geocode.NewNominatim(geocode.NominatimOptions{
			CountryCode: cfg.Geocode.CountryCode,
			Timeout:     cfg.Geocode.Timeout,
			RPS:         cfg.Geocode.NominatimRPS,
			UserAgent:   cfg.Geocode.UserAgent,
		}),
	)
}

// Process runs one raw record through the state machine:
// Extracted → DateResolved → Classified → DedupChecked →
// GeocodePending → GeocodeResolved → Accepted | Rejected.
// Component failures below this point never propagate upward; only
// store connectivity surfaces, as a StatusFailed outcome.
func (p *Pipeline) Process(ctx context.Context, raw model.RawFields, override *CategoryOverride) Outcome {
	out := p.process(ctx, raw, override)
	p.metrics.Record(metricLabel(out.Status))
	return out
}

func (p *Pipeline) process(ctx context.Context, raw model.RawFields, override *CategoryOverride) Outcome {
	// 1. Cheap in-run URL check, before any parsing work.
	if raw.SourceURL != "" && p.gate.SeenURL(raw.SourceURL) {
		p.logger.Debug("duplicate url this run", "url", raw.SourceURL, "site", raw.SiteID)
		return Outcome{Status: StatusDuplicateURL}
	}

	// 2. Date normalization. Failure leaves the field absent; the raw
	// text is always retained.
	name := strings.TrimSpace(util.StripTags(raw.Title))
	rawDate := strings.TrimSpace(raw.RawDateText)
	date, ok := normalize.Date(rawDate)
	if !ok && rawDate == "" {
		// Some sites run the date into the listing title
		// ("Sat, 15th Nov, 2025 — Hyde Park 5K").
		if d, dateText, rest, found := splitTitleDate(name); found {
			date, rawDate, name = d, dateText, rest
		}
	}

	// 3. Classification, unless the site adapter forces a category.
	var category, subcategory string
	if override != nil {
		category, subcategory = override.Category, override.Subcategory
	} else {
		category, subcategory = p.classifier.Classify(name, raw.DescriptionParts)
	}

	// 4. Composite-key signal; warning only, never suppression.
	if p.gate.SeenNameDate(name, date) {
		p.logger.Warn("name+date already seen this run",
			"name", name, "date", date, "url", raw.SourceURL)
	}

	// 5. Store existence, before any geocoding so a re-scraped event
	// costs zero provider calls.
	knownID, err := p.gate.ExistsInStore(ctx, raw.SourceURL, name, date)
	if err != nil {
		p.logger.Error("store existence check failed", "url", raw.SourceURL, "error", err)
		return Outcome{Status: StatusFailed, Err: fmt.Errorf("%w: %v", store.ErrUnavailable, err)}
	}
	if knownID != "" {
		p.logger.Debug("event already in store", "url", raw.SourceURL, "record_id", knownID)
		return Outcome{Status: StatusDuplicateStore, RecordID: knownID}
	}

	// 6. Coordinates: adapter-extracted values are trusted only inside
	// the fence; otherwise the address is resolved. There is no
	// maybe-valid coordinate state.
	address := geocode.NormalizeAddress(raw.AddressText)
	coords, invalid := p.resolveCoordinates(ctx, raw, address, knownID)
	if errors.Is(ctx.Err(), context.Canceled) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return Outcome{Status: StatusFailed, Err: ctx.Err()}
	}
	if invalid {
		p.logger.Warn("extracted coordinates outside fence, no valid replacement",
			"url", raw.SourceURL, "lat", raw.RawCoordinates.Lat, "lon", raw.RawCoordinates.Lon)
		return Outcome{Status: StatusInvalidCoordinates}
	}

	short, full := descriptions(raw.DescriptionParts)
	if short == "" && p.summarizer != nil {
		summary, err := p.summarizer.ShortDescription(ctx, name, full)
		if err != nil {
			p.logger.Warn("summarizer failed, keeping extracted description", "error", err)
		} else {
			short = summary
		}
	}

	event := &model.NormalizedEvent{
		Name:             name,
		Date:             date,
		RawDate:          rawDate,
		ShortDescription: short,
		FullDescription:  full,
		Address:          address,
		Coordinates:      coords,
		Category:         category,
		Subcategory:      subcategory,
		SourceURL:        raw.SourceURL,
		SiteID:           raw.SiteID,
	}

	// 7. Hand off to the persistence collaborator.
	recordID := ""
	if p.store != nil {
		recordID, err = p.store.Insert(ctx, event)
		if err != nil {
			p.logger.Error("insert failed", "url", raw.SourceURL, "error", err)
			return Outcome{Status: StatusFailed, Event: event, Err: err}
		}
	}

	p.logger.Info("event accepted",
		"name", name, "date", date, "category", category, "record_id", recordID)
	return Outcome{Status: StatusAccepted, RecordID: recordID, Event: event}
}

// resolveCoordinates produces geofence-valid coordinates or nil. The
// second return value reports that the adapter extracted coordinates
// which failed the fence and no valid replacement was found; the
// record carries a validation-breaking value and is rejected.
func (p *Pipeline) resolveCoordinates(ctx context.Context, raw model.RawFields, address, knownID string) (*model.Coordinates, bool) {
	if raw.RawCoordinates != nil && p.bounds.Contains(*raw.RawCoordinates) {
		c := *raw.RawCoordinates
		return &c, false
	}

	var coords *model.Coordinates
	if address != "" {
		resolved, err := p.geocoder.Resolve(ctx, address, knownID)
		if err != nil {
			// Cancellation; the caller inspects ctx.
			return nil, false
		}
		p.metrics.RecordGeocode(resolved == nil)
		coords = resolved
	}

	if coords == nil && raw.RawCoordinates != nil {
		return nil, true
	}
	return coords, false
}

// titleSeparators are tried in order; plain hyphen requires
// surrounding spaces so hyphenated event names survive.
var titleSeparators = []string{"—", "–", " - ", "|"}

// splitTitleDate tries to read a leading date out of a listing title.
// It only succeeds when the segment before a separator parses fully as
// a date; anything else leaves the title alone.
func splitTitleDate(title string) (canonical, dateText, rest string, found bool) {
	for _, sep := range titleSeparators {
		idx := strings.Index(title, sep)
		if idx <= 0 {
			continue
		}
		left := strings.TrimSpace(title[:idx])
		right := strings.TrimSpace(title[idx+len(sep):])
		if right == "" {
			continue
		}
		if d, ok := normalize.Date(left); ok {
			return d, left, right, true
		}
	}
	return "", "", "", false
}

// descriptions splits the extracted fragments into a short form (first
// fragment) and the full text, with HTML tags stripped.
func descriptions(parts []string) (string, string) {
	cleaned := make([]string, 0, len(parts))
	for _, part := range parts {
		if text := strings.TrimSpace(util.StripTags(part)); text != "" {
			cleaned = append(cleaned, text)
		}
	}
	if len(cleaned) == 0 {
		return "", ""
	}
	return cleaned[0], strings.Join(cleaned, "\n\n")
}

func metricLabel(s Status) string {
	switch s {
	case StatusDuplicateURL, StatusDuplicateStore:
		return "duplicate"
	default:
		return string(s)
	}
}
