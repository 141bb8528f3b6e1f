package pipeline

import "github.com/ukfit/eventscrape/internal/model"

// Status is the terminal state of one record's trip through the
// pipeline.
type Status string

const (
	// StatusAccepted means a NormalizedEvent was produced and handed
	// to the store.
	StatusAccepted Status = "accepted"

	// StatusDuplicateURL means the source URL was already processed
	// this run.
	StatusDuplicateURL Status = "duplicate_url"

	// StatusDuplicateStore means the persisted store already holds the
	// event.
	StatusDuplicateStore Status = "duplicate_store"

	// StatusInvalidCoordinates means the extracted coordinates failed
	// the geofence and no valid replacement could be resolved.
	StatusInvalidCoordinates Status = "invalid_coordinates"

	// StatusFailed means the store was unreachable for this record.
	// The record is skipped and logged; the batch continues.
	StatusFailed Status = "failed"
)

// Outcome is the result of processing one RawFields value.
type Outcome struct {
	Status   Status
	RecordID string // set on acceptance, or the existing id on a store duplicate
	Event    *model.NormalizedEvent
	Err      error // set for StatusFailed only
}

// Report aggregates outcome counts for one batch. A batch never hard
// stops on a single bad record; these counts are the user-visible
// result.
type Report struct {
	Total              int
	Accepted           int
	Duplicate          int
	InvalidCoordinates int
	Failed             int
}

// Add folds one outcome into the report.
func (r *Report) Add(o Outcome) {
	r.Total++
	switch o.Status {
	case StatusAccepted:
		r.Accepted++
	case StatusDuplicateURL, StatusDuplicateStore:
		r.Duplicate++
	case StatusInvalidCoordinates:
		r.InvalidCoordinates++
	case StatusFailed:
		r.Failed++
	}
}
