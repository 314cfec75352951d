package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/umoyo-health/umoyoai/internal/domain"
)

type SectionRepository struct {
	db dbtx
}

func NewSectionRepository(pool *pgxpool.Pool) *SectionRepository {
	return &SectionRepository{db: pool}
}

func NewSectionRepositoryWithTx(tx pgx.Tx) *SectionRepository {
	return &SectionRepository{db: tx}
}

func (r *SectionRepository) Create(ctx context.Context, s *domain.Section) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sections (id, name, description, created_at)
		 VALUES ($1, $2, $3, $4)`,
		s.ID, s.Name, s.Description, s.CreatedAt,
	)
	return err
}

func (r *SectionRepository) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	var s domain.Section
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM sections WHERE id = $1`,
		id,
	).Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSectionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepository) GetByName(ctx context.Context, name string) (*domain.Section, error) {
	var s domain.Section
	err := r.db.QueryRow(ctx,
		`SELECT id, name, description, created_at FROM sections WHERE name = $1`,
		name,
	).Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSectionNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SectionRepository) List(ctx context.Context) ([]*domain.Section, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, name, description, created_at FROM sections ORDER BY name ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []*domain.Section
	for rows.Next() {
		var s domain.Section
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.CreatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, &s)
	}
	return sections, rows.Err()
}
