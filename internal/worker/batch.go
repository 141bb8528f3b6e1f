package worker

import (
	"context"

	"github.com/ukfit/eventscrape/internal/model"
	"github.com/ukfit/eventscrape/internal/pipeline"
)

// Normalizer runs one raw record through the normalization pipeline.
type Normalizer interface {
	Process(ctx context.Context, raw model.RawFields, override *pipeline.CategoryOverride) pipeline.Outcome
}

// NormalizeJob carries one raw record through the pipeline.
type NormalizeJob struct {
	Raw        model.RawFields
	Override   *pipeline.CategoryOverride
	Normalizer Normalizer
}

// Execute runs the job.
func (j *NormalizeJob) Execute(ctx context.Context) Result {
	return &NormalizeResult{
		SourceURL: j.Raw.SourceURL,
		Outcome:   j.Normalizer.Process(ctx, j.Raw, j.Override),
	}
}

// NormalizeResult is the pool result for one record.
type NormalizeResult struct {
	SourceURL string
	Outcome   pipeline.Outcome
}

// GetError returns the record's error, set for failed outcomes only.
func (r *NormalizeResult) GetError() error {
	return r.Outcome.Err
}

// BatchProcessor normalizes many records concurrently and folds their
// outcomes into one report.
type BatchProcessor struct {
	normalizer  Normalizer
	concurrency int
}

// NewBatchProcessor creates a batch processor.
func NewBatchProcessor(normalizer Normalizer, concurrency int) *BatchProcessor {
	return &BatchProcessor{
		normalizer:  normalizer,
		concurrency: concurrency,
	}
}

// Process runs all records through the pool and returns the aggregated
// report with the per-record results. A bad record never stops the
// batch.
func (b *BatchProcessor) Process(ctx context.Context, records []model.RawFields, override *pipeline.CategoryOverride) (pipeline.Report, []*NormalizeResult) {
	var report pipeline.Report
	if len(records) == 0 {
		return report, nil
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	// Submit from a separate goroutine so results can be drained below
	// while the queue fills; batches are larger than the pool buffers.
	go func() {
		defer pool.Close()
		for _, raw := range records {
			pool.Submit(&NormalizeJob{
				Raw:        raw,
				Override:   override,
				Normalizer: b.normalizer,
			})
		}
	}()

	results := pool.Wait()

	normResults := make([]*NormalizeResult, 0, len(results))
	for _, result := range results {
		nr := result.(*NormalizeResult)
		report.Add(nr.Outcome)
		normResults = append(normResults, nr)
	}
	return report, normResults
}
