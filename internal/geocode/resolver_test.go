package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/ukfit/eventscrape/internal/model"
)

func serveResults(t *testing.T, calls *int32, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls != nil {
			atomic.AddInt32(calls, 1)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
}

const (
	londonJSON  = `[{"lat":"51.5074","lon":"-0.1278"}]`
	newYorkJSON = `[{"lat":"40.7","lon":"-74.0"}]`
)

func testProvider(url string) *Nominatim {
	return NewNominatim(NominatimOptions{BaseURL: url, RPS: 1})
}

func TestNormalizeAddress(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Location: Hyde Park, London", "Hyde Park, London"},
		{"location Hyde Park", "Hyde Park"},
		{"  10   Downing Street,\tLondon ", "10 Downing Street, London"},
		{"Location:", ""},
	}
	for _, tt := range tests {
		if got := NormalizeAddress(tt.input); got != tt.want {
			t.Errorf("NormalizeAddress(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestResolve_CacheHitAvoidsNetwork(t *testing.T) {
	var calls int32
	server := serveResults(t, &calls, londonJSON)
	defer server.Close()

	r := NewResolver(UKBounds(), nil, testProvider(server.URL))

	for i := 0; i < 2; i++ {
		coords, err := r.Resolve(context.Background(), "10 Downing Street, London", "")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if coords == nil || coords.Lat != 51.5074 {
			t.Fatalf("unexpected coordinates: %+v", coords)
		}
	}

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected exactly 1 provider call, got %d", n)
	}
}

func TestResolve_CachesMisses(t *testing.T) {
	var calls int32
	server := serveResults(t, &calls, `[]`)
	defer server.Close()

	r := NewResolver(UKBounds(), nil, testProvider(server.URL))

	for i := 0; i < 2; i++ {
		coords, err := r.Resolve(context.Background(), "Nowhere At All", "")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if coords != nil {
			t.Fatalf("expected absent coordinates, got %+v", coords)
		}
	}

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected exactly 1 provider call for a cached miss, got %d", n)
	}
}

func TestResolve_KnownRecordSkipsProviders(t *testing.T) {
	var calls int32
	server := serveResults(t, &calls, londonJSON)
	defer server.Close()

	r := NewResolver(UKBounds(), nil, testProvider(server.URL))

	coords, err := r.Resolve(context.Background(), "Hyde Park, London", "existing-record-id")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if coords != nil {
		t.Errorf("expected absent coordinates for known record, got %+v", coords)
	}
	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("expected 0 provider calls for known record, got %d", n)
	}
}

func TestResolve_GeofenceRejectsOutOfBoxResult(t *testing.T) {
	server := serveResults(t, nil, newYorkJSON)
	defer server.Close()

	r := NewResolver(UKBounds(), nil, testProvider(server.URL))

	coords, err := r.Resolve(context.Background(), "New York Marathon Start", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if coords != nil {
		t.Errorf("out-of-fence point must not be returned, got %+v", coords)
	}
}

func TestResolve_FallsBackWhenPrimaryOutOfBox(t *testing.T) {
	primary := serveResults(t, nil, newYorkJSON)
	defer primary.Close()
	fallback := serveResults(t, nil, londonJSON)
	defer fallback.Close()

	liq := NewLocationIQ(LocationIQOptions{Key: "test-key", BaseURL: primary.URL, RPS: 100})
	r := NewResolver(UKBounds(), nil, liq, testProvider(fallback.URL))

	coords, err := r.Resolve(context.Background(), "Hyde Park, London", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if coords == nil || coords.Lat != 51.5074 {
		t.Errorf("expected fallback result, got %+v", coords)
	}
}

func TestResolve_FallsBackOnProviderError(t *testing.T) {
	primary := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer primary.Close()
	fallback := serveResults(t, nil, londonJSON)
	defer fallback.Close()

	liq := NewLocationIQ(LocationIQOptions{Key: "bad-key", BaseURL: primary.URL, RPS: 100})
	r := NewResolver(UKBounds(), nil, liq, testProvider(fallback.URL))

	coords, err := r.Resolve(context.Background(), "Hyde Park, London", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if coords == nil {
		t.Fatal("expected coordinates from fallback provider")
	}
}

func TestNewLocationIQ_NoKeyIsSkipped(t *testing.T) {
	if p := NewLocationIQ(LocationIQOptions{}); p != nil {
		t.Fatal("expected nil provider without a key")
	}

	server := serveResults(t, nil, londonJSON)
	defer server.Close()

	// A typed-nil primary must not panic the resolver.
	r := NewResolver(UKBounds(), nil, NewLocationIQ(LocationIQOptions{}), testProvider(server.URL))
	coords, err := r.Resolve(context.Background(), "Hyde Park", "")
	if err != nil || coords == nil {
		t.Fatalf("Resolve with skipped primary: coords=%+v err=%v", coords, err)
	}
}

func TestResolve_ConcurrentSameAddressSingleCall(t *testing.T) {
	var calls int32
	server := serveResults(t, &calls, londonJSON)
	defer server.Close()

	r := NewResolver(UKBounds(), nil, testProvider(server.URL))

	var wg sync.WaitGroup
	results := make([]*model.Coordinates, 8)
	for i := 0; i < len(results); i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			coords, err := r.Resolve(context.Background(), "Hyde Park, London", "")
			if err != nil {
				t.Errorf("Resolve: %v", err)
			}
			results[i] = coords
		}(i)
	}
	wg.Wait()

	for i, coords := range results {
		if coords == nil {
			t.Errorf("goroutine %d got nil coordinates", i)
		}
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected single-flight to collapse to 1 call, got %d", n)
	}
}
