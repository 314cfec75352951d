package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/umoyo-health/umoyoai/internal/domain"
)

const (
	// MaxRetries is the maximum number of retries for a failed job
	MaxRetries = 3

	// pendingBatchSize bounds how many jobs one poll picks up
	pendingBatchSize = 10
)

// IngestionJobRepository defines the interface for ingestion job persistence
type IngestionJobRepository interface {
	GetPending(ctx context.Context, limit int) ([]*domain.IngestionJob, error)
	UpdateStatus(ctx context.Context, jobID string, status domain.IngestionJobStatus, errMsg string) error
	IncrementRetries(ctx context.Context, jobID string) (int, error)
}

// DocumentFetcher retrieves a source document body from object storage
type DocumentFetcher interface {
	GetDocument(ctx context.Context, key string) ([]byte, error)
}

// Ingestor chunks and embeds one document into a section's corpus
type Ingestor interface {
	IngestDocument(ctx context.Context, sectionID, sourceFile, content string) (int, error)
}

// IngestionWorker processes queued document ingestion jobs
type IngestionWorker struct {
	repo   IngestionJobRepository
	store  DocumentFetcher
	ingest Ingestor
}

// NewIngestionWorker creates a new IngestionWorker instance
func NewIngestionWorker(repo IngestionJobRepository, store DocumentFetcher, ingest Ingestor) *IngestionWorker {
	return &IngestionWorker{
		repo:   repo,
		store:  store,
		ingest: ingest,
	}
}

// ProcessJobs implements the JobProcessor interface
func (w *IngestionWorker) ProcessJobs(ctx context.Context) error {
	jobs, err := w.repo.GetPending(ctx, pendingBatchSize)
	if err != nil {
		return fmt.Errorf("failed to fetch pending jobs: %w", err)
	}

	if len(jobs) == 0 {
		return nil
	}

	log.Printf("Processing %d pending ingestion jobs", len(jobs))

	for _, job := range jobs {
		if err := w.processJob(ctx, job); err != nil {
			log.Printf("Error processing job %s: %v", job.ID, err)
		}
	}

	return nil
}

func (w *IngestionWorker) processJob(ctx context.Context, job *domain.IngestionJob) error {
	log.Printf("Processing job %s for document %s", job.ID, job.SourceFile)

	if err := w.repo.UpdateStatus(ctx, job.ID, domain.IngestionJobStatusProcessing, ""); err != nil {
		return fmt.Errorf("failed to mark job processing: %w", err)
	}

	body, err := w.store.GetDocument(ctx, job.ObjectKey)
	if err != nil {
		return w.handleJobFailure(ctx, job, err)
	}

	count, err := w.ingest.IngestDocument(ctx, job.SectionID, job.SourceFile, string(body))
	if err != nil {
		return w.handleJobFailure(ctx, job, err)
	}

	if err := w.repo.UpdateStatus(ctx, job.ID, domain.IngestionJobStatusCompleted, ""); err != nil {
		return fmt.Errorf("failed to update job status to completed: %w", err)
	}

	log.Printf("Job %s completed: %d chunks indexed", job.ID, count)
	return nil
}

// handleJobFailure handles a failed job with retry logic
func (w *IngestionWorker) handleJobFailure(ctx context.Context, job *domain.IngestionJob, jobErr error) error {
	log.Printf("Job %s failed: %v", job.ID, jobErr)

	retries, err := w.repo.IncrementRetries(ctx, job.ID)
	if err != nil {
		return fmt.Errorf("failed to increment retries: %w", err)
	}

	if retries >= MaxRetries {
		log.Printf("Job %s exceeded max retries (%d), marking as failed", job.ID, MaxRetries)
		errMsg := fmt.Sprintf("max retries exceeded: %v", jobErr)
		if err := w.repo.UpdateStatus(ctx, job.ID, domain.IngestionJobStatusFailed, errMsg); err != nil {
			return fmt.Errorf("failed to update job status to failed: %w", err)
		}
		return nil
	}

	log.Printf("Job %s will be retried (attempt %d/%d)", job.ID, retries, MaxRetries)
	errMsg := fmt.Sprintf("retry %d: %v", retries, jobErr)
	if err := w.repo.UpdateStatus(ctx, job.ID, domain.IngestionJobStatusPending, errMsg); err != nil {
		return fmt.Errorf("failed to reset job status to pending: %w", err)
	}

	return nil
}
