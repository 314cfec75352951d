package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/umoyo-health/umoyoai/internal/domain"
	"github.com/umoyo-health/umoyoai/internal/service"
)

type HandoutRepository struct {
	db dbtx
}

func NewHandoutRepository(pool *pgxpool.Pool) *HandoutRepository {
	return &HandoutRepository{db: pool}
}

func NewHandoutRepositoryWithTx(tx pgx.Tx) *HandoutRepository {
	return &HandoutRepository{db: tx}
}

func (r *HandoutRepository) Create(ctx context.Context, h *domain.Handout) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO handouts (id, section_id, created_by_id, title, body, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		h.ID, h.SectionID, h.CreatedByID, h.Title, h.Body, h.CreatedAt,
	)
	return err
}

func (r *HandoutRepository) GetByID(ctx context.Context, id string) (*domain.Handout, error) {
	var h domain.Handout
	err := r.db.QueryRow(ctx,
		`SELECT id, section_id, created_by_id, title, body, created_at
		 FROM handouts WHERE id = $1`,
		id,
	).Scan(&h.ID, &h.SectionID, &h.CreatedByID, &h.Title, &h.Body, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrHandoutNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *HandoutRepository) Delete(ctx context.Context, id string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM handouts WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrHandoutNotFound
	}
	return nil
}

// List returns a filtered page of handouts ordered by creation time.
func (r *HandoutRepository) List(ctx context.Context, filter service.HandoutFilter) ([]*domain.Handout, error) {
	query := `SELECT id, section_id, created_by_id, title, body, created_at FROM handouts`
	where, args := handoutFilterClauses(filter)
	query += where

	if filter.Order == domain.SortAsc {
		query += " ORDER BY created_at ASC"
	} else {
		query += " ORDER BY created_at DESC"
	}

	query += fmt.Sprintf(" OFFSET $%d LIMIT $%d", len(args)+1, len(args)+2)
	args = append(args, filter.Offset, filter.Limit)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var handouts []*domain.Handout
	for rows.Next() {
		var h domain.Handout
		if err := rows.Scan(&h.ID, &h.SectionID, &h.CreatedByID, &h.Title, &h.Body, &h.CreatedAt); err != nil {
			return nil, err
		}
		handouts = append(handouts, &h)
	}
	return handouts, rows.Err()
}

// Count returns the number of handouts matching the filter, ignoring paging.
func (r *HandoutRepository) Count(ctx context.Context, filter service.HandoutFilter) (int, error) {
	query := `SELECT COUNT(*) FROM handouts`
	where, args := handoutFilterClauses(filter)
	query += where

	var count int
	err := r.db.QueryRow(ctx, query, args...).Scan(&count)
	return count, err
}

func handoutFilterClauses(filter service.HandoutFilter) (string, []any) {
	var clauses []string
	var args []any

	if filter.SectionID != "" {
		args = append(args, filter.SectionID)
		clauses = append(clauses, fmt.Sprintf("section_id = $%d", len(args)))
	}
	if filter.CreatedByID != "" {
		args = append(args, filter.CreatedByID)
		clauses = append(clauses, fmt.Sprintf("created_by_id = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		clauses = append(clauses, fmt.Sprintf("(title ILIKE $%d OR body ILIKE $%d)", len(args), len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}

	where := " WHERE " + clauses[0]
	for _, c := range clauses[1:] {
		where += " AND " + c
	}
	return where, args
}
