package dedup

import (
	"context"
	"sync"
	"testing"
)

func TestGate_SeenURL(t *testing.T) {
	g := NewGate(nil, nil)

	if g.SeenURL("https://x/e1") {
		t.Error("first ask must report unseen")
	}
	if !g.SeenURL("https://x/e1") {
		t.Error("second ask must report seen")
	}
	if g.SeenURL("https://x/e2") {
		t.Error("different URL must report unseen")
	}
}

func TestGate_SeenNameDate(t *testing.T) {
	g := NewGate(nil, nil)

	if g.SeenNameDate("Hyde Park 5K", "11/15/2025") {
		t.Error("first ask must report unseen")
	}
	if !g.SeenNameDate("Hyde Park 5K", "11/15/2025") {
		t.Error("second ask must report seen")
	}
	if g.SeenNameDate("Hyde Park 5K", "11/16/2025") {
		t.Error("different date must report unseen")
	}
}

func TestGate_NilStoreReportsAbsent(t *testing.T) {
	g := NewGate(nil, nil)

	id, err := g.ExistsInStore(context.Background(), "https://x/e1", "Hyde Park 5K", "11/15/2025")
	if err != nil {
		t.Fatalf("ExistsInStore: %v", err)
	}
	if id != "" {
		t.Errorf("expected absent, got %q", id)
	}
}

// A record's check must observe all prior-completed insertions: with N
// workers racing on one URL, exactly one may win.
func TestGate_ConcurrentURLChecksSingleWinner(t *testing.T) {
	g := NewGate(nil, nil)

	const workers = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if !g.SeenURL("https://x/contested") {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if winners != 1 {
		t.Errorf("expected exactly 1 winner, got %d", winners)
	}
}
