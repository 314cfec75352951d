package service

import (
	"context"
	"strings"
	"time"

	"github.com/umoyo-health/umoyoai/internal/domain"
	"github.com/umoyo-health/umoyoai/internal/telemetry"
)

// ChunkWriter defines the vector index interface for chunk persistence
type ChunkWriter interface {
	ReplaceSource(ctx context.Context, sectionID, sourceFile string, chunks []domain.DocumentChunk) error
	CountBySection(ctx context.Context, sectionID string) (int, error)
}

// IngestionJobRepositoryInterface defines the repository interface for ingestion job persistence
type IngestionJobRepositoryInterface interface {
	Create(ctx context.Context, job *domain.IngestionJob) error
}

// IngestionService turns source documents into embedded chunks in the vector
// index, either synchronously or by queuing a job for the background worker.
type IngestionService struct {
	sectionRepo SectionRepositoryInterface
	chunkStore  ChunkWriter
	jobRepo     IngestionJobRepositoryInterface
	embedder    EmbeddingClient
	chunkCfg    ChunkConfig
	uuidGen     UUIDGenerator
}

func NewIngestionService(
	sectionRepo SectionRepositoryInterface,
	chunkStore ChunkWriter,
	jobRepo IngestionJobRepositoryInterface,
	embedder EmbeddingClient,
	chunkCfg ChunkConfig,
) *IngestionService {
	if chunkCfg.MaxChars <= 0 {
		chunkCfg = DefaultChunkConfig()
	}
	return &IngestionService{
		sectionRepo: sectionRepo,
		chunkStore:  chunkStore,
		jobRepo:     jobRepo,
		embedder:    embedder,
		chunkCfg:    chunkCfg,
		uuidGen:     &DefaultUUIDGenerator{},
	}
}

// NewIngestionServiceWithUUIDGen creates an IngestionService with a custom UUID generator (for testing)
func NewIngestionServiceWithUUIDGen(
	sectionRepo SectionRepositoryInterface,
	chunkStore ChunkWriter,
	jobRepo IngestionJobRepositoryInterface,
	embedder EmbeddingClient,
	chunkCfg ChunkConfig,
	uuidGen UUIDGenerator,
) *IngestionService {
	svc := NewIngestionService(sectionRepo, chunkStore, jobRepo, embedder, chunkCfg)
	svc.uuidGen = uuidGen
	return svc
}

// IngestDocument chunks and embeds one source document into a section's
// corpus, replacing any chunks from a previous ingestion of the same file.
// Returns the number of chunks written.
func (s *IngestionService) IngestDocument(ctx context.Context, sectionID, sourceFile, content string) (int, error) {
	ctx, span := telemetry.StartSpan(ctx, "IngestionService.IngestDocument", telemetry.SpanAttributes{
		SectionID: sectionID,
		Operation: "ingest",
	})
	defer span.End()

	if strings.TrimSpace(sourceFile) == "" {
		return 0, domain.NewDomainError(domain.ErrCodeValidation, "source file name is required")
	}

	if _, err := s.sectionRepo.GetByID(ctx, sectionID); err != nil {
		return 0, err
	}

	pieces := chunkText(content, s.chunkCfg)
	if len(pieces) == 0 {
		return 0, domain.NewDomainError(domain.ErrCodeValidation, "document has no embeddable content")
	}

	now := time.Now().UTC()
	chunks := make([]domain.DocumentChunk, 0, len(pieces))
	for i, piece := range pieces {
		embedding, err := s.embedder.GenerateEmbedding(ctx, piece)
		if err != nil {
			span.SetError(err)
			return 0, domain.NewDomainErrorWithCause(domain.ErrCodeUpstreamUnavailable, "embedding provider call failed", err)
		}
		chunks = append(chunks, domain.DocumentChunk{
			ID:         s.uuidGen.NewString(),
			SectionID:  sectionID,
			SourceFile: sourceFile,
			ChunkIndex: i,
			Content:    piece,
			Embedding:  embedding,
			CreatedAt:  now,
		})
	}

	if err := s.chunkStore.ReplaceSource(ctx, sectionID, sourceFile, chunks); err != nil {
		span.SetError(err)
		return 0, err
	}

	return len(chunks), nil
}

// Enqueue records a pending ingestion job for a document already uploaded to
// object storage. The background worker picks it up.
func (s *IngestionService) Enqueue(ctx context.Context, sectionID, sourceFile, objectKey string) (*domain.IngestionJob, error) {
	if strings.TrimSpace(sourceFile) == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "source file name is required")
	}
	if strings.TrimSpace(objectKey) == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "object key is required")
	}

	if _, err := s.sectionRepo.GetByID(ctx, sectionID); err != nil {
		return nil, err
	}

	job := &domain.IngestionJob{
		ID:         s.uuidGen.NewString(),
		SectionID:  sectionID,
		SourceFile: sourceFile,
		ObjectKey:  objectKey,
		Status:     domain.IngestionJobStatusPending,
		CreatedAt:  time.Now().UTC(),
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, err
	}

	return job, nil
}

// ChunkCount reports how many chunks a section's corpus currently holds.
func (s *IngestionService) ChunkCount(ctx context.Context, sectionID string) (int, error) {
	return s.chunkStore.CountBySection(ctx, sectionID)
}
