package geocode

import (
	"sync"

	gocache "github.com/patrickmn/go-cache"

	"github.com/ukfit/eventscrape/internal/model"
)

// runCache memoizes address → coordinates results for the lifetime of
// one run. Misses are cached too, so a failing address costs at most
// one provider chain per run. The cache is never persisted: a fresh
// run starts cold, deliberately.
//
// The inflight map gives best-effort single-flight: two tasks racing
// to geocode the identical address issue at most one provider call in
// the common case, but the guarantee is not hard.
type runCache struct {
	store *gocache.Cache

	mu       sync.Mutex
	inflight map[string]chan struct{}
}

func newRunCache() *runCache {
	return &runCache{
		store:    gocache.New(gocache.NoExpiration, 0),
		inflight: make(map[string]chan struct{}),
	}
}

// get returns the cached result for a normalized address. The inner
// pointer is nil for a cached miss.
func (c *runCache) get(addr string) (*model.Coordinates, bool) {
	if val, found := c.store.Get(addr); found {
		coords, _ := val.(*model.Coordinates)
		return coords, true
	}
	return nil, false
}

// set records a result. The cache is append-only within a run; a task
// abandoned mid-flight leaves it merely incomplete, never inconsistent.
func (c *runCache) set(addr string, coords *model.Coordinates) {
	c.store.Set(addr, coords, gocache.NoExpiration)
}

// beginFlight claims the in-flight slot for an address. When another
// task already holds it, the second return value carries a channel to
// wait on and ok is false. The cache is re-checked under the lock:
// set() happens before endFlight() takes it, so a finished flight is
// always visible here.
func (c *runCache) beginFlight(addr string) (done chan struct{}, wait <-chan struct{}, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, found := c.store.Get(addr); found {
		return nil, nil, false
	}
	if ch, exists := c.inflight[addr]; exists {
		return nil, ch, false
	}
	ch := make(chan struct{})
	c.inflight[addr] = ch
	return ch, nil, true
}

// endFlight releases the slot and wakes waiters.
func (c *runCache) endFlight(addr string, done chan struct{}) {
	c.mu.Lock()
	delete(c.inflight, addr)
	c.mu.Unlock()
	close(done)
}
