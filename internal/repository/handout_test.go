//go:build integration

package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/umoyo-health/umoyoai/internal/domain"
	"github.com/umoyo-health/umoyoai/internal/service"
	"github.com/umoyo-health/umoyoai/internal/testutil"
)

func seedHandout(ctx context.Context, t *testing.T, pool interface{}, repo *HandoutRepository, sectionID, createdByID, title string, createdAt time.Time) *domain.Handout {
	t.Helper()
	h := &domain.Handout{
		ID:          uuid.NewString(),
		SectionID:   sectionID,
		CreatedByID: createdByID,
		Title:       title,
		Body:        "Slide one\n\n---\n\nSlide two",
		CreatedAt:   createdAt,
	}
	require.NoError(t, repo.Create(ctx, h))
	return h
}

func TestHandoutRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	section := seedSection(ctx, t, pool, "Cholera Response")
	user := seedUser(ctx, t, pool, "instructor@example.org", domain.RoleInstructor)

	repo := NewHandoutRepository(pool)
	h := seedHandout(ctx, t, nil, repo, section.ID, user.ID, "Oral Rehydration", time.Now().UTC().Truncate(time.Microsecond))

	got, err := repo.GetByID(ctx, h.ID)
	require.NoError(t, err)
	assert.Equal(t, h.Title, got.Title)
	assert.Equal(t, h.Body, got.Body)
	assert.Equal(t, user.ID, got.CreatedByID)
}

func TestHandoutRepository_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewHandoutRepository(pool)
	_, err := repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrHandoutNotFound)
}

func TestHandoutRepository_Delete(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	section := seedSection(ctx, t, pool, "Cholera Response")
	user := seedUser(ctx, t, pool, "instructor@example.org", domain.RoleInstructor)

	repo := NewHandoutRepository(pool)
	h := seedHandout(ctx, t, nil, repo, section.ID, user.ID, "To Delete", time.Now().UTC().Truncate(time.Microsecond))

	require.NoError(t, repo.Delete(ctx, h.ID))

	_, err := repo.GetByID(ctx, h.ID)
	assert.ErrorIs(t, err, domain.ErrHandoutNotFound)

	err = repo.Delete(ctx, h.ID)
	assert.ErrorIs(t, err, domain.ErrHandoutNotFound)
}

func TestHandoutRepository_List_FiltersAndPaging(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	cholera := seedSection(ctx, t, pool, "Cholera Response")
	malaria := seedSection(ctx, t, pool, "Malaria Prevention")
	alice := seedUser(ctx, t, pool, "alice@example.org", domain.RoleInstructor)
	bob := seedUser(ctx, t, pool, "bob@example.org", domain.RoleInstructor)

	repo := NewHandoutRepository(pool)
	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 3; i++ {
		seedHandout(ctx, t, nil, repo, cholera.ID, alice.ID,
			fmt.Sprintf("Cholera Handout %d", i), base.Add(time.Duration(i)*time.Second))
	}
	seedHandout(ctx, t, nil, repo, malaria.ID, bob.ID, "Bed Net Usage", base.Add(10*time.Second))

	bySection, err := repo.List(ctx, service.HandoutFilter{SectionID: cholera.ID, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, bySection, 3)

	byCreator, err := repo.List(ctx, service.HandoutFilter{CreatedByID: bob.ID, Limit: 10})
	require.NoError(t, err)
	require.Len(t, byCreator, 1)
	assert.Equal(t, "Bed Net Usage", byCreator[0].Title)

	bySearch, err := repo.List(ctx, service.HandoutFilter{Search: "bed net", Limit: 10})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "Bed Net Usage", bySearch[0].Title)

	// Default order is newest first
	desc, err := repo.List(ctx, service.HandoutFilter{SectionID: cholera.ID, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "Cholera Handout 2", desc[0].Title)

	asc, err := repo.List(ctx, service.HandoutFilter{SectionID: cholera.ID, Order: domain.SortAsc, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, "Cholera Handout 0", asc[0].Title)

	page, err := repo.List(ctx, service.HandoutFilter{SectionID: cholera.ID, Order: domain.SortAsc, Offset: 1, Limit: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Cholera Handout 1", page[0].Title)
}

func TestHandoutRepository_Count(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	section := seedSection(ctx, t, pool, "Cholera Response")
	user := seedUser(ctx, t, pool, "instructor@example.org", domain.RoleInstructor)

	repo := NewHandoutRepository(pool)
	base := time.Now().UTC().Truncate(time.Microsecond)
	for i := 0; i < 4; i++ {
		seedHandout(ctx, t, nil, repo, section.ID, user.ID,
			fmt.Sprintf("Handout %d", i), base.Add(time.Duration(i)*time.Second))
	}

	count, err := repo.Count(ctx, service.HandoutFilter{SectionID: section.ID})
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	count, err = repo.Count(ctx, service.HandoutFilter{SectionID: uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
