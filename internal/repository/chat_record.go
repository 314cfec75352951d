package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/umoyo-health/umoyoai/internal/domain"
)

type ChatRecordRepository struct {
	db dbtx
}

func NewChatRecordRepository(pool *pgxpool.Pool) *ChatRecordRepository {
	return &ChatRecordRepository{db: pool}
}

func NewChatRecordRepositoryWithTx(tx pgx.Tx) *ChatRecordRepository {
	return &ChatRecordRepository{db: tx}
}

func (r *ChatRecordRepository) Create(ctx context.Context, c *domain.ChatRecord) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO chat_records (id, section_id, user_id, question, answer, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.SectionID, c.UserID, c.Question, c.Answer, c.CreatedAt,
	)
	return err
}

// Recent returns the user's most recent chats for a section, newest first.
func (r *ChatRecordRepository) Recent(ctx context.Context, userID, sectionID string, limit int) ([]*domain.ChatRecord, error) {
	if limit <= 0 {
		limit = 5
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, section_id, user_id, question, answer, created_at
		 FROM chat_records
		 WHERE user_id = $1 AND section_id = $2
		 ORDER BY created_at DESC
		 LIMIT $3`,
		userID, sectionID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChatRows(rows)
}

// SampleQuestions returns up to n random questions previously asked in a
// section, across all users.
func (r *ChatRecordRepository) SampleQuestions(ctx context.Context, sectionID string, n int) ([]string, error) {
	if n <= 0 {
		n = 3
	}
	rows, err := r.db.Query(ctx,
		`SELECT question FROM chat_records
		 WHERE section_id = $1
		 ORDER BY random()
		 LIMIT $2`,
		sectionID, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	questions := make([]string, 0, n)
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func scanChatRows(rows pgx.Rows) ([]*domain.ChatRecord, error) {
	var records []*domain.ChatRecord
	for rows.Next() {
		var c domain.ChatRecord
		if err := rows.Scan(&c.ID, &c.SectionID, &c.UserID, &c.Question, &c.Answer, &c.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, &c)
	}
	return records, rows.Err()
}
