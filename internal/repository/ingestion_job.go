package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/umoyo-health/umoyoai/internal/domain"
)

type IngestionJobRepository struct {
	db dbtx
}

func NewIngestionJobRepository(pool *pgxpool.Pool) *IngestionJobRepository {
	return &IngestionJobRepository{db: pool}
}

func NewIngestionJobRepositoryWithTx(tx pgx.Tx) *IngestionJobRepository {
	return &IngestionJobRepository{db: tx}
}

func (r *IngestionJobRepository) Create(ctx context.Context, job *domain.IngestionJob) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO ingestion_jobs (id, section_id, source_file, object_key, status, retries, error, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		job.ID, job.SectionID, job.SourceFile, job.ObjectKey, job.Status, job.Retries,
		nullableString(job.Error), job.CreatedAt,
	)
	return err
}

func (r *IngestionJobRepository) GetByID(ctx context.Context, id string) (*domain.IngestionJob, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, section_id, source_file, object_key, status, retries, error, created_at, processed_at
		 FROM ingestion_jobs WHERE id = $1`,
		id,
	)
	job, err := scanIngestionJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrIngestionJobNotFound
		}
		return nil, err
	}
	return job, nil
}

// GetPending returns up to limit pending jobs, oldest first.
func (r *IngestionJobRepository) GetPending(ctx context.Context, limit int) ([]*domain.IngestionJob, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, section_id, source_file, object_key, status, retries, error, created_at, processed_at
		 FROM ingestion_jobs
		 WHERE status = $1
		 ORDER BY created_at ASC
		 LIMIT $2`,
		domain.IngestionJobStatusPending, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*domain.IngestionJob
	for rows.Next() {
		job, err := scanIngestionJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}

// UpdateStatus transitions a job, recording the error message on failure and
// stamping processed_at on terminal states.
func (r *IngestionJobRepository) UpdateStatus(ctx context.Context, id string, status domain.IngestionJobStatus, jobErr string) error {
	var processedAt *time.Time
	if status == domain.IngestionJobStatusCompleted || status == domain.IngestionJobStatusFailed {
		now := time.Now().UTC()
		processedAt = &now
	}
	cmdTag, err := r.db.Exec(ctx,
		`UPDATE ingestion_jobs SET status = $2, error = $3, processed_at = $4 WHERE id = $1`,
		id, status, nullableString(jobErr), processedAt,
	)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrIngestionJobNotFound
	}
	return nil
}

func (r *IngestionJobRepository) IncrementRetries(ctx context.Context, id string) (int, error) {
	var retries int
	err := r.db.QueryRow(ctx,
		`UPDATE ingestion_jobs SET retries = retries + 1 WHERE id = $1 RETURNING retries`,
		id,
	).Scan(&retries)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrIngestionJobNotFound
		}
		return 0, err
	}
	return retries, nil
}

func scanIngestionJob(row pgx.Row) (*domain.IngestionJob, error) {
	var (
		job         domain.IngestionJob
		jobErr      pgtype.Text
		processedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&job.ID, &job.SectionID, &job.SourceFile, &job.ObjectKey,
		&job.Status, &job.Retries, &jobErr, &job.CreatedAt, &processedAt,
	)
	if err != nil {
		return nil, err
	}
	if jobErr.Valid {
		job.Error = jobErr.String
	}
	if processedAt.Valid {
		t := processedAt.Time
		job.ProcessedAt = &t
	}
	return &job, nil
}
