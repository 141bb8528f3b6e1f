package geocode

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/ukfit/eventscrape/internal/model"
)

const nominatimBaseURL = "https://nominatim.openstreetmap.org/search"

// Nominatim is the free fallback provider. The public instance's usage
// policy allows at most one request per second, enforced here as a
// blocking wait shared by all callers of this instance.
type Nominatim struct {
	baseURL     string
	countryCode string
	client      *http.Client
	limiter     *rate.Limiter
	userAgent   string
}

// NominatimOptions configures the provider.
type NominatimOptions struct {
	BaseURL     string // override for tests; defaults to the public instance
	CountryCode string
	Timeout     time.Duration
	RPS         float64
	UserAgent   string
}

// NewNominatim creates the fallback provider.
func NewNominatim(opts NominatimOptions) *Nominatim {
	if opts.BaseURL == "" {
		opts.BaseURL = nominatimBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RPS <= 0 || opts.RPS > 1 {
		// Usage policy cap for the public instance.
		opts.RPS = 1
	}

	return &Nominatim{
		baseURL:     opts.BaseURL,
		countryCode: opts.CountryCode,
		client:      &http.Client{Timeout: opts.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(opts.RPS), 1),
		userAgent:   opts.UserAgent,
	}
}

// Name returns the provider name
func (p *Nominatim) Name() string {
	return "nominatim"
}

// Search geocodes an address via the Nominatim search API.
func (p *Nominatim) Search(ctx context.Context, address string) ([]model.Coordinates, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := map[string]string{
		"q":      address,
		"format": "json",
		"limit":  "1",
	}
	if p.countryCode != "" {
		params["countrycodes"] = p.countryCode
	}

	return searchJSON(ctx, p.client, p.baseURL, params, p.userAgent)
}
