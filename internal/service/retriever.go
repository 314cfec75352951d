package service

import (
	"context"

	"github.com/umoyo-health/umoyoai/internal/domain"
)

// EmbeddingClient defines the interface for query and document embedding
type EmbeddingClient interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

// ChunkIndex defines the vector index interface for similarity search
type ChunkIndex interface {
	Search(ctx context.Context, embedding []float32, sectionID string, k int, threshold float32) ([]domain.ScoredChunk, error)
}

// Retriever embeds a query and searches the vector index within a section.
type Retriever struct {
	embedder EmbeddingClient
	index    ChunkIndex
}

func NewRetriever(embedder EmbeddingClient, index ChunkIndex) *Retriever {
	return &Retriever{embedder: embedder, index: index}
}

// Retrieve returns the top-k chunks from the section at or above the score
// threshold. A threshold of 0 disables filtering. An empty result is a valid
// outcome, not an error; only embedding or index failures surface as errors.
func (r *Retriever) Retrieve(ctx context.Context, query, sectionID string, k int, threshold float32) ([]domain.ScoredChunk, error) {
	embedding, err := r.embedder.GenerateEmbedding(ctx, query)
	if err != nil {
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeUpstreamUnavailable, "embedding provider call failed", err)
	}

	chunks, err := r.index.Search(ctx, embedding, sectionID, k, threshold)
	if err != nil {
		return nil, err
	}

	return chunks, nil
}
