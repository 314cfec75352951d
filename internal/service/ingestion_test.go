package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/umoyo-health/umoyoai/internal/domain"
)

func TestIngestDocument(t *testing.T) {
	sectionRepo := new(MockSectionRepository)
	chunkStore := new(MockChunkWriter)
	jobRepo := new(MockIngestionJobRepository)
	embedder := new(MockEmbeddingClient)
	svc := NewIngestionServiceWithUUIDGen(sectionRepo, chunkStore, jobRepo, embedder,
		DefaultChunkConfig(), NewMockUUIDGenerator("c1", "c2", "c3", "c4", "c5"))

	sectionRepo.On("GetByID", mock.Anything, "sec1").Return(testSection(), nil)
	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return([]float32{0.1, 0.2}, nil)
	chunkStore.On("ReplaceSource", mock.Anything, "sec1", "guide.txt", mock.MatchedBy(func(chunks []domain.DocumentChunk) bool {
		for i, c := range chunks {
			if c.SectionID != "sec1" || c.SourceFile != "guide.txt" || c.ChunkIndex != i {
				return false
			}
		}
		return len(chunks) > 1
	})).Return(nil)

	content := strings.Repeat("guideline text for surveillance ", 60)
	count, err := svc.IngestDocument(context.Background(), "sec1", "guide.txt", content)
	require.NoError(t, err)
	assert.Greater(t, count, 1)
	chunkStore.AssertExpectations(t)
}

func TestIngestDocumentEmptyContent(t *testing.T) {
	sectionRepo := new(MockSectionRepository)
	svc := NewIngestionService(sectionRepo, new(MockChunkWriter), new(MockIngestionJobRepository),
		new(MockEmbeddingClient), DefaultChunkConfig())

	sectionRepo.On("GetByID", mock.Anything, "sec1").Return(testSection(), nil)

	_, err := svc.IngestDocument(context.Background(), "sec1", "empty.txt", "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no embeddable content")
}

func TestIngestDocumentMissingSourceName(t *testing.T) {
	svc := NewIngestionService(new(MockSectionRepository), new(MockChunkWriter),
		new(MockIngestionJobRepository), new(MockEmbeddingClient), DefaultChunkConfig())

	_, err := svc.IngestDocument(context.Background(), "sec1", "  ", "content")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "source file")
}

func TestIngestDocumentEmbeddingFailure(t *testing.T) {
	sectionRepo := new(MockSectionRepository)
	chunkStore := new(MockChunkWriter)
	embedder := new(MockEmbeddingClient)
	svc := NewIngestionService(sectionRepo, chunkStore, new(MockIngestionJobRepository),
		embedder, DefaultChunkConfig())

	sectionRepo.On("GetByID", mock.Anything, "sec1").Return(testSection(), nil)
	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).
		Return(nil, errors.New("rate limited"))

	_, err := svc.IngestDocument(context.Background(), "sec1", "guide.txt", "some content")
	require.Error(t, err)
	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeUpstreamUnavailable, de.Code)
	chunkStore.AssertNotCalled(t, "ReplaceSource", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEnqueue(t *testing.T) {
	sectionRepo := new(MockSectionRepository)
	jobRepo := new(MockIngestionJobRepository)
	svc := NewIngestionServiceWithUUIDGen(sectionRepo, new(MockChunkWriter), jobRepo,
		new(MockEmbeddingClient), DefaultChunkConfig(), NewMockUUIDGenerator("job-1"))

	sectionRepo.On("GetByID", mock.Anything, "sec1").Return(testSection(), nil)
	jobRepo.On("Create", mock.Anything, mock.MatchedBy(func(j *domain.IngestionJob) bool {
		return j.ID == "job-1" && j.Status == domain.IngestionJobStatusPending &&
			j.ObjectKey == "sections/sec1/guide.txt"
	})).Return(nil)

	job, err := svc.Enqueue(context.Background(), "sec1", "guide.txt", "sections/sec1/guide.txt")
	require.NoError(t, err)
	assert.Equal(t, domain.IngestionJobStatusPending, job.Status)
	jobRepo.AssertExpectations(t)
}

func TestEnqueueMissingObjectKey(t *testing.T) {
	svc := NewIngestionService(new(MockSectionRepository), new(MockChunkWriter),
		new(MockIngestionJobRepository), new(MockEmbeddingClient), DefaultChunkConfig())

	_, err := svc.Enqueue(context.Background(), "sec1", "guide.txt", " ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "object key")
}
