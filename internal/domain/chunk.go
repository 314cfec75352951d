package domain

import "time"

// DocumentChunk is a bounded span of guideline text stored in the vector
// index. Chunks are immutable once created; the ingestion job replaces a
// source document's chunks wholesale rather than editing them in place.
type DocumentChunk struct {
	ID         string
	SectionID  string
	SourceFile string
	ChunkIndex int
	Content    string
	Embedding  []float32
	CreatedAt  time.Time
}

// ScoredChunk pairs a retrieved chunk with its cosine similarity to the
// query embedding. Retrieval results are ordered by descending score.
type ScoredChunk struct {
	Chunk DocumentChunk
	Score float32
}
