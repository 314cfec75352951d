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

func TestUserRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewUserRepository(pool)

	u := &domain.User{
		ID:        uuid.NewString(),
		FullName:  "Amara Banda",
		Email:     "amara@example.org",
		Role:      domain.RoleInstructor,
		TokenHash: "deadbeefcafe",
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Create(ctx, u))

	byID, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.Email, byID.Email)
	assert.Equal(t, domain.RoleInstructor, byID.Role)

	byEmail, err := repo.GetByEmail(ctx, "amara@example.org")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byEmail.ID)

	byHash, err := repo.GetByTokenHash(ctx, "deadbeefcafe")
	require.NoError(t, err)
	assert.Equal(t, u.ID, byHash.ID)
}

func TestUserRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	repo := NewUserRepository(pool)

	_, err := repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.GetByEmail(ctx, "nobody@example.org")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = repo.GetByTokenHash(ctx, "ffffffff")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserRepository_List(t *testing.T) {
	ctx := context.Background()
	pc := testutil.NewPostgresContainer(ctx, t)
	defer pc.Terminate(ctx)

	pool := testutil.NewTestPool(ctx, t, pc, "../../migrations")
	defer pool.Close()

	seedUser(ctx, t, pool, "first@example.org", domain.RoleAdmin)
	seedUser(ctx, t, pool, "second@example.org", domain.RoleFieldWorker)

	repo := NewUserRepository(pool)
	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
