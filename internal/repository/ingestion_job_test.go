//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umoyo-health/umoyoai/internal/domain"
	"github.com/umoyo-health/umoyoai/internal/testutil"
)

func seedJob(ctx context.Context, t *testing.T, repo *IngestionJobRepository, sectionID string, createdAt time.Time) *domain.IngestionJob {
	t.Helper()
	job := &domain.IngestionJob{
		ID:         uuid.NewString(),
		SectionID:  sectionID,
		SourceFile: "guidelines.md",
		ObjectKey:  "uploads/guidelines.md",
		Status:     domain.IngestionJobStatusPending,
		CreatedAt:  createdAt,
	}
	require.NoError(t, repo.Create(ctx, job))
	return job
}

func TestIngestionJobRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	section := seedSection(ctx, t, pool, "Cholera Response")
	repo := NewIngestionJobRepository(pool)
	job := seedJob(ctx, t, repo, section.ID, time.Now().UTC().Truncate(time.Microsecond))

	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ObjectKey, got.ObjectKey)
	assert.Equal(t, domain.IngestionJobStatusPending, got.Status)
	assert.Empty(t, got.Error)
	assert.Nil(t, got.ProcessedAt)
}

func TestIngestionJobRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewIngestionJobRepository(pool)
	_, err := repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrIngestionJobNotFound)
}

func TestIngestionJobRepository_GetPending_OldestFirst(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	section := seedSection(ctx, t, pool, "Cholera Response")
	repo := NewIngestionJobRepository(pool)

	base := time.Now().UTC().Truncate(time.Microsecond)
	oldest := seedJob(ctx, t, repo, section.ID, base)
	middle := seedJob(ctx, t, repo, section.ID, base.Add(time.Second))
	newest := seedJob(ctx, t, repo, section.ID, base.Add(2*time.Second))

	// Completed jobs are not pending
	require.NoError(t, repo.UpdateStatus(ctx, newest.ID, domain.IngestionJobStatusCompleted, ""))

	jobs, err := repo.GetPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, oldest.ID, jobs[0].ID)
	assert.Equal(t, middle.ID, jobs[1].ID)

	limited, err := repo.GetPending(ctx, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, oldest.ID, limited[0].ID)
}

func TestIngestionJobRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	section := seedSection(ctx, t, pool, "Cholera Response")
	repo := NewIngestionJobRepository(pool)
	job := seedJob(ctx, t, repo, section.ID, time.Now().UTC().Truncate(time.Microsecond))

	require.NoError(t, repo.UpdateStatus(ctx, job.ID, domain.IngestionJobStatusProcessing, ""))
	got, err := repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IngestionJobStatusProcessing, got.Status)
	assert.Nil(t, got.ProcessedAt)

	require.NoError(t, repo.UpdateStatus(ctx, job.ID, domain.IngestionJobStatusFailed, "fetch failed"))
	got, err = repo.GetByID(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.IngestionJobStatusFailed, got.Status)
	assert.Equal(t, "fetch failed", got.Error)
	require.NotNil(t, got.ProcessedAt)
}

func TestIngestionJobRepository_UpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewIngestionJobRepository(pool)
	err := repo.UpdateStatus(ctx, uuid.NewString(), domain.IngestionJobStatusCompleted, "")
	assert.ErrorIs(t, err, domain.ErrIngestionJobNotFound)
}

func TestIngestionJobRepository_IncrementRetries(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	section := seedSection(ctx, t, pool, "Cholera Response")
	repo := NewIngestionJobRepository(pool)
	job := seedJob(ctx, t, repo, section.ID, time.Now().UTC().Truncate(time.Microsecond))

	retries, err := repo.IncrementRetries(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, retries)

	retries, err = repo.IncrementRetries(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, retries)

	_, err = repo.IncrementRetries(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrIngestionJobNotFound)
}
