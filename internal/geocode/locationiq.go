package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ukfit/eventscrape/internal/model"
)

const locationIQBaseURL = "https://eu1.locationiq.com/v1/search"

// LocationIQ is the keyed primary provider. It is only constructed
// when a credential is configured; an unkeyed deployment runs on the
// free fallback alone.
type LocationIQ struct {
	key         string
	baseURL     string
	countryCode string
	client      *http.Client
	limiter     *rate.Limiter
	userAgent   string
}

// LocationIQOptions configures the provider.
type LocationIQOptions struct {
	Key         string
	BaseURL     string // override for tests; defaults to the eu1 endpoint
	CountryCode string
	Timeout     time.Duration
	RPS         float64
	UserAgent   string
}

// NewLocationIQ creates the keyed provider. Returns nil when no key is
// configured so callers can skip it entirely.
func NewLocationIQ(opts LocationIQOptions) *LocationIQ {
	if opts.Key == "" {
		return nil
	}
	if opts.BaseURL == "" {
		opts.BaseURL = locationIQBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RPS <= 0 {
		opts.RPS = 2
	}

	return &LocationIQ{
		key:         opts.Key,
		baseURL:     opts.BaseURL,
		countryCode: opts.CountryCode,
		client:      &http.Client{Timeout: opts.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(opts.RPS), 1),
		userAgent:   opts.UserAgent,
	}
}

// Name returns the provider name
func (p *LocationIQ) Name() string {
	return "locationiq"
}

// Search geocodes an address via the LocationIQ search API.
func (p *LocationIQ) Search(ctx context.Context, address string) ([]model.Coordinates, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := map[string]string{
		"key":    p.key,
		"q":      address,
		"format": "json",
		"limit":  "1",
	}
	if p.countryCode != "" {
		params["countrycodes"] = p.countryCode
	}

	return searchJSON(ctx, p.client, p.baseURL, params, p.userAgent)
}
