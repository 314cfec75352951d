package domain

import "time"

// IngestionJobStatus tracks the lifecycle of a corpus ingestion job.
type IngestionJobStatus string

const (
	IngestionJobStatusPending    IngestionJobStatus = "pending"
	IngestionJobStatusProcessing IngestionJobStatus = "processing"
	IngestionJobStatusCompleted  IngestionJobStatus = "completed"
	IngestionJobStatusFailed     IngestionJobStatus = "failed"
)

// IsValid returns true if the status is a known value
func (s IngestionJobStatus) IsValid() bool {
	switch s {
	case IngestionJobStatusPending, IngestionJobStatusProcessing,
		IngestionJobStatusCompleted, IngestionJobStatusFailed:
		return true
	}
	return false
}

// IngestionJob records a source document waiting to be chunked, embedded and
// upserted into the vector index by the background worker. The document body
// itself lives in object storage under ObjectKey.
type IngestionJob struct {
	ID          string
	SectionID   string
	SourceFile  string
	ObjectKey   string
	Status      IngestionJobStatus
	Retries     int
	Error       string
	CreatedAt   time.Time
	ProcessedAt *time.Time
}
