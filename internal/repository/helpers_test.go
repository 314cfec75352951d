//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/umoyo-health/umoyoai/internal/domain"
)

func seedSection(ctx context.Context, t *testing.T, pool *pgxpool.Pool, name string) *domain.Section {
	t.Helper()
	repo := NewSectionRepository(pool)
	s := &domain.Section{
		ID:          uuid.NewString(),
		Name:        name,
		Description: "Seed section",
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Create(ctx, s))
	return s
}

func seedUser(ctx context.Context, t *testing.T, pool *pgxpool.Pool, email string, role domain.Role) *domain.User {
	t.Helper()
	repo := NewUserRepository(pool)
	u := &domain.User{
		ID:        uuid.NewString(),
		FullName:  "Seed User",
		Email:     email,
		Role:      role,
		TokenHash: uuid.NewString(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	require.NoError(t, repo.Create(ctx, u))
	return u
}

// basisVec returns a 1536-dimensional unit vector along axis i. Distinct
// axes are orthogonal, so cosine similarity is 1 for the same axis and 0
// otherwise.
func basisVec(i int) []float32 {
	v := make([]float32, 1536)
	v[i] = 1
	return v
}
