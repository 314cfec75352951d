package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pgvector/pgvector-go"
	"github.com/umoyo-health/umoyoai/internal/domain"
)

// DocumentChunkRepository is the vector index: persistence and cosine
// nearest-neighbor search over embedded document chunks, partitioned by
// section.
type DocumentChunkRepository struct {
	db dbtx
}

func NewDocumentChunkRepository(pool *pgxpool.Pool) *DocumentChunkRepository {
	return &DocumentChunkRepository{db: pool}
}

func NewDocumentChunkRepositoryWithTx(tx pgx.Tx) *DocumentChunkRepository {
	return &DocumentChunkRepository{db: tx}
}

// ReplaceSource deletes existing chunks for a (section, source file) pair and
// inserts the new ones. Chunks are immutable, so re-ingesting a document is
// always a wholesale replacement.
func (r *DocumentChunkRepository) ReplaceSource(ctx context.Context, sectionID, sourceFile string, chunks []domain.DocumentChunk) error {
	_, err := r.db.Exec(ctx,
		`DELETE FROM document_chunks WHERE section_id = $1 AND source_file = $2`,
		sectionID, sourceFile,
	)
	if err != nil {
		return err
	}

	for _, c := range chunks {
		createdAt := c.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err := r.db.Exec(ctx,
			`INSERT INTO document_chunks
				(id, section_id, source_file, chunk_index, content, embedding, created_at)
			 VALUES
				($1, $2, $3, $4, $5, $6, $7)`,
			c.ID,
			c.SectionID,
			c.SourceFile,
			c.ChunkIndex,
			c.Content,
			pgvector.NewVector(c.Embedding),
			createdAt,
		)
		if err != nil {
			return err
		}
	}

	return nil
}

// Search returns up to k chunks from the given section whose cosine
// similarity to the query embedding is at least threshold, ordered by
// descending similarity. Ties break on chunk id so results are deterministic
// for a fixed index state. An unknown section yields an empty result, not an
// error.
func (r *DocumentChunkRepository) Search(ctx context.Context, embedding []float32, sectionID string, k int, threshold float32) ([]domain.ScoredChunk, error) {
	if k <= 0 {
		return []domain.ScoredChunk{}, nil
	}

	vec := pgvector.NewVector(embedding)

	rows, err := r.db.Query(ctx,
		`SELECT id, section_id, source_file, chunk_index, content, created_at, score
		 FROM (
			SELECT id, section_id, source_file, chunk_index, content, created_at,
			       1 - (embedding <=> $1) AS score
			FROM document_chunks
			WHERE section_id = $2
		 ) scored
		 WHERE score >= $3
		 ORDER BY score DESC, id ASC
		 LIMIT $4`,
		vec, sectionID, threshold, k,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	results := make([]domain.ScoredChunk, 0, k)
	for rows.Next() {
		var sc domain.ScoredChunk
		if err := rows.Scan(
			&sc.Chunk.ID,
			&sc.Chunk.SectionID,
			&sc.Chunk.SourceFile,
			&sc.Chunk.ChunkIndex,
			&sc.Chunk.Content,
			&sc.Chunk.CreatedAt,
			&sc.Score,
		); err != nil {
			return nil, err
		}
		results = append(results, sc)
	}

	return results, rows.Err()
}

// CountBySection returns the number of indexed chunks for a section.
func (r *DocumentChunkRepository) CountBySection(ctx context.Context, sectionID string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM document_chunks WHERE section_id = $1`,
		sectionID,
	).Scan(&count)
	return count, err
}
