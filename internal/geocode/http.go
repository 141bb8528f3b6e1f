package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/ukfit/eventscrape/internal/model"
)

const maxResponseBytes = 1 << 20

// searchResult is the wire shape both providers share; coordinates
// arrive as strings.
type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// searchJSON performs a GET against a Nominatim-compatible search
// endpoint and decodes the result list. Auth failures, rate-limit
// rejections, empty result sets and malformed responses all surface as
// errors; the resolver treats every one the same way.
func searchJSON(ctx context.Context, client *http.Client, baseURL string, params map[string]string, userAgent string) ([]model.Coordinates, error) {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var results []searchResult
	if err := json.Unmarshal(body, &results); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrNoResults
	}

	coords := make([]model.Coordinates, 0, len(results))
	for _, r := range results {
		lat, latErr := strconv.ParseFloat(r.Lat, 64)
		lon, lonErr := strconv.ParseFloat(r.Lon, 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		coords = append(coords, model.Coordinates{Lat: lat, Lon: lon})
	}
	if len(coords) == 0 {
		return nil, fmt.Errorf("no parsable coordinates in response")
	}
	return coords, nil
}
