package queue

import "time"

// Kind identifies the work a job represents.
type Kind string

const (
	// KindTagging asks the enrichment pipeline to infer and attach tags.
	KindTagging Kind = "tagging"
	// KindIndex asks the search indexer to refresh a bookmark's document.
	KindIndex Kind = "index"
)

// Status represents the lifecycle of a queue job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

var allStatuses = []Status{
	StatusPending,
	StatusProcessing,
	StatusCompleted,
	StatusFailed,
}

// ValidStatus reports whether the value is a known job status.
func ValidStatus(status Status) bool {
	for _, s := range allStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Job is a row in the queue. BookmarkID is the only payload the pipeline
// needs; everything else is bookkeeping.
type Job struct {
	ID            int64
	Kind          Kind
	BookmarkID    string
	Status        Status
	ErrorMessage  string
	Attempts      int
	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastHeartbeat *time.Time
}

// HealthSummary aggregates queue state for diagnostic output.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Completed  int
	Failed     int
}
