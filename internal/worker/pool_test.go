package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

type countJob struct {
	counter *int32
	err     error
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(ctx context.Context) Result {
	atomic.AddInt32(j.counter, 1)
	return &countResult{err: j.err}
}

func TestPool_RunsAllJobs(t *testing.T) {
	pool := NewPool(context.Background(), 4)
	pool.Start()

	var counter int32
	const jobs = 20
	go func() {
		defer pool.Close()
		for i := 0; i < jobs; i++ {
			pool.Submit(&countJob{counter: &counter})
		}
	}()

	results := pool.Wait()
	if len(results) != jobs {
		t.Errorf("expected %d results, got %d", jobs, len(results))
	}
	if n := atomic.LoadInt32(&counter); n != jobs {
		t.Errorf("expected %d executions, got %d", jobs, n)
	}
}

func TestPool_DefaultsToOneWorker(t *testing.T) {
	pool := NewPool(context.Background(), 0)
	if pool.workers != 1 {
		t.Errorf("expected 1 worker, got %d", pool.workers)
	}
}

func TestPool_ErrorsSurfaceInResults(t *testing.T) {
	pool := NewPool(context.Background(), 2)
	pool.Start()

	wantErr := errors.New("boom")
	var counter int32
	pool.Submit(&countJob{counter: &counter, err: wantErr})
	pool.Submit(&countJob{counter: &counter})
	pool.Close()

	results := pool.Wait()
	failed := 0
	for _, r := range results {
		if r.GetError() != nil {
			failed++
		}
	}
	if failed != 1 {
		t.Errorf("expected 1 failed result, got %d", failed)
	}
}

type slowJob struct{ started *int32 }

func (j *slowJob) Execute(ctx context.Context) Result {
	atomic.AddInt32(j.started, 1)
	select {
	case <-ctx.Done():
	case <-time.After(50 * time.Millisecond):
	}
	return &countResult{}
}

func TestPool_ShutdownStopsNewWork(t *testing.T) {
	pool := NewPool(context.Background(), 1)
	pool.Start()

	var started int32
	pool.Submit(&slowJob{started: &started})
	pool.Shutdown()

	// Submissions after shutdown are dropped, not queued.
	pool.Submit(&slowJob{started: &started})

	if n := atomic.LoadInt32(&started); n > 1 {
		t.Errorf("expected at most 1 started job after shutdown, got %d", n)
	}
}
