package service

import (
	"context"
	"strings"

	"github.com/umoyo-health/umoyoai/internal/domain"
	"github.com/umoyo-health/umoyoai/internal/telemetry"
)

// CompletionClient defines the interface for text generation
type CompletionClient interface {
	GenerateText(ctx context.Context, prompt string, temperature float32) (string, error)
}

// ChunkRetriever defines the retrieval step of the pipeline
type ChunkRetriever interface {
	Retrieve(ctx context.Context, query, sectionID string, k int, threshold float32) ([]domain.ScoredChunk, error)
}

// RAGConfig carries the retrieval and generation knobs for the pipeline.
type RAGConfig struct {
	AnswerK         int
	AnswerThreshold float32
	HandoutK        int
	TitleK          int
	Temperature     float32
}

// DefaultRAGConfig mirrors the tuning the corpus was validated with.
func DefaultRAGConfig() RAGConfig {
	return RAGConfig{
		AnswerK:         5,
		AnswerThreshold: 0.8,
		HandoutK:        5,
		TitleK:          3,
		Temperature:     0.1,
	}
}

// HandoutDraft is the unsaved output of handout generation.
type HandoutDraft struct {
	Title string
	Body  string
}

// RAGService runs the retrieval-augmented generation pipeline for both the
// question-answering and handout-generation flows.
type RAGService struct {
	retriever ChunkRetriever
	generator CompletionClient
	cfg       RAGConfig
}

func NewRAGService(retriever ChunkRetriever, generator CompletionClient, cfg RAGConfig) *RAGService {
	if cfg.AnswerK <= 0 {
		cfg.AnswerK = 5
	}
	if cfg.HandoutK <= 0 {
		cfg.HandoutK = 5
	}
	if cfg.TitleK <= 0 {
		cfg.TitleK = 3
	}
	return &RAGService{
		retriever: retriever,
		generator: generator,
		cfg:       cfg,
	}
}

// Answer runs the scoped question-answering pipeline. When retrieval yields
// no chunk at or above the threshold the fixed refusal answer is returned
// without calling the model at all.
func (s *RAGService) Answer(ctx context.Context, question, sectionID string) (string, error) {
	ctx, span := telemetry.StartSpan(ctx, "RAGService.Answer", telemetry.SpanAttributes{
		SectionID: sectionID,
		Operation: "answer",
	})
	defer span.End()

	if strings.TrimSpace(question) == "" {
		return "", domain.ErrEmptyQuestion
	}

	chunks, err := s.retriever.Retrieve(ctx, question, sectionID, s.cfg.AnswerK, s.cfg.AnswerThreshold)
	if err != nil {
		span.SetError(err)
		return "", err
	}

	if len(chunks) == 0 {
		telemetry.AddBreadcrumb(ctx, "rag", "no chunks above threshold, refusing")
		return RefusalAnswer, nil
	}

	prompt := BuildAnswerPrompt(chunks, question)
	answer, err := s.generator.GenerateText(ctx, prompt, s.cfg.Temperature)
	if err != nil {
		span.SetError(err)
		return "", domain.NewDomainErrorWithCause(domain.ErrCodeGenerationFailed, "language model call failed", err)
	}

	answer = strings.TrimSpace(answer)
	if answer == "" {
		return RefusalAnswer, nil
	}
	return answer, nil
}

// Handout runs the long-form generation pipeline: one retrieval round-trip
// for the body and a separate, smaller one for the title. Handout retrieval
// uses no score threshold; thin context still produces a handout.
func (s *RAGService) Handout(ctx context.Context, topic, sectionID string) (*HandoutDraft, error) {
	ctx, span := telemetry.StartSpan(ctx, "RAGService.Handout", telemetry.SpanAttributes{
		SectionID: sectionID,
		Operation: "handout",
	})
	defer span.End()

	if strings.TrimSpace(topic) == "" {
		return nil, domain.ErrEmptyTopic
	}

	bodyChunks, err := s.retriever.Retrieve(ctx, topic, sectionID, s.cfg.HandoutK, 0)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	body, err := s.generator.GenerateText(ctx, BuildHandoutPrompt(bodyChunks, topic), s.cfg.Temperature)
	if err != nil {
		span.SetError(err)
		return nil, domain.NewDomainErrorWithCause(domain.ErrCodeGenerationFailed, "language model call failed", err)
	}
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.ErrGenerationFailed
	}

	title := s.generateTitle(ctx, topic, sectionID)

	return &HandoutDraft{Title: title, Body: body}, nil
}

// generateTitle is best-effort: any failure or empty completion falls back
// to the fixed placeholder rather than failing the handout.
func (s *RAGService) generateTitle(ctx context.Context, topic, sectionID string) string {
	const fallback = "Untitled Handout"

	titleChunks, err := s.retriever.Retrieve(ctx, topic, sectionID, s.cfg.TitleK, 0)
	if err != nil {
		telemetry.CaptureError(ctx, err)
		return fallback
	}

	title, err := s.generator.GenerateText(ctx, BuildTitlePrompt(titleChunks), s.cfg.Temperature)
	if err != nil {
		telemetry.CaptureError(ctx, err)
		return fallback
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return fallback
	}
	return title
}
