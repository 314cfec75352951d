package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/umoyo-health/umoyoai/internal/domain"
)

func TestRetrieve(t *testing.T) {
	embedder := new(MockEmbeddingClient)
	index := new(MockChunkIndex)
	retriever := NewRetriever(embedder, index)

	embedding := []float32{0.1, 0.2, 0.3}
	want := scoredChunks("relevant text")

	embedder.On("GenerateEmbedding", mock.Anything, "query").Return(embedding, nil)
	index.On("Search", mock.Anything, embedding, "sec1", 5, float32(0.8)).Return(want, nil)

	got, err := retriever.Retrieve(context.Background(), "query", "sec1", 5, 0.8)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRetrieveEmptyResultIsNotError(t *testing.T) {
	embedder := new(MockEmbeddingClient)
	index := new(MockChunkIndex)
	retriever := NewRetriever(embedder, index)

	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).Return([]float32{0.1}, nil)
	index.On("Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.ScoredChunk{}, nil)

	got, err := retriever.Retrieve(context.Background(), "query", "sec1", 5, 0.8)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieveEmbeddingFailureWrapped(t *testing.T) {
	embedder := new(MockEmbeddingClient)
	index := new(MockChunkIndex)
	retriever := NewRetriever(embedder, index)

	embedder.On("GenerateEmbedding", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := retriever.Retrieve(context.Background(), "query", "sec1", 5, 0.8)
	require.Error(t, err)
	var de *domain.DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, domain.ErrCodeUpstreamUnavailable, de.Code)
	index.AssertNotCalled(t, "Search", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
