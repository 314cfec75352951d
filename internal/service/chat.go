package service

import (
	"context"
	"strings"
	"time"

	"github.com/umoyo-health/umoyoai/internal/domain"
	"github.com/umoyo-health/umoyoai/internal/telemetry"
)

// DefaultRecentChatLimit bounds how much history the ask flow returns.
const DefaultRecentChatLimit = 5

// DefaultSampleQuestionCount is how many example questions a section surfaces.
const DefaultSampleQuestionCount = 3

// SectionRepositoryInterface defines the repository interface for section lookups
type SectionRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*domain.Section, error)
	List(ctx context.Context) ([]*domain.Section, error)
}

// ChatRecordRepositoryInterface defines the repository interface for chat history persistence
type ChatRecordRepositoryInterface interface {
	Create(ctx context.Context, c *domain.ChatRecord) error
	Recent(ctx context.Context, userID, sectionID string, limit int) ([]*domain.ChatRecord, error)
	SampleQuestions(ctx context.Context, sectionID string, n int) ([]string, error)
}

// AnswerGenerator defines the question-answering pipeline
type AnswerGenerator interface {
	Answer(ctx context.Context, question, sectionID string) (string, error)
}

// ChatService handles the ask flow: section-scoped question answering with
// per-user history.
type ChatService struct {
	sectionRepo SectionRepositoryInterface
	chatRepo    ChatRecordRepositoryInterface
	rag         AnswerGenerator
	uuidGen     UUIDGenerator
}

func NewChatService(
	sectionRepo SectionRepositoryInterface,
	chatRepo ChatRecordRepositoryInterface,
	rag AnswerGenerator,
) *ChatService {
	return &ChatService{
		sectionRepo: sectionRepo,
		chatRepo:    chatRepo,
		rag:         rag,
		uuidGen:     &DefaultUUIDGenerator{},
	}
}

// NewChatServiceWithUUIDGen creates a ChatService with a custom UUID generator (for testing)
func NewChatServiceWithUUIDGen(
	sectionRepo SectionRepositoryInterface,
	chatRepo ChatRecordRepositoryInterface,
	rag AnswerGenerator,
	uuidGen UUIDGenerator,
) *ChatService {
	return &ChatService{
		sectionRepo: sectionRepo,
		chatRepo:    chatRepo,
		rag:         rag,
		uuidGen:     uuidGen,
	}
}

// AskOutput is the result of one ask round-trip, including the refreshed
// recent history in ascending time order.
type AskOutput struct {
	Record      *domain.ChatRecord
	RecentChats []*domain.ChatRecord
}

// Ask answers a question against a section's corpus and records the exchange.
// The refusal answer is recorded like any other; history reflects what the
// user actually saw.
func (s *ChatService) Ask(ctx context.Context, userID, sectionID, question string) (*AskOutput, error) {
	ctx, span := telemetry.StartSpan(ctx, "ChatService.Ask", telemetry.SpanAttributes{
		SectionID: sectionID,
		UserID:    userID,
		Operation: "ask",
	})
	defer span.End()

	question = strings.TrimSpace(question)
	if question == "" {
		return nil, domain.ErrEmptyQuestion
	}

	if _, err := s.sectionRepo.GetByID(ctx, sectionID); err != nil {
		return nil, err
	}

	answer, err := s.rag.Answer(ctx, question, sectionID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	record := &domain.ChatRecord{
		ID:        s.uuidGen.NewString(),
		SectionID: sectionID,
		UserID:    userID,
		Question:  question,
		Answer:    answer,
		CreatedAt: time.Now().UTC(),
	}
	if err := domain.ValidateChatRecord(record); err != nil {
		return nil, err
	}
	if err := s.chatRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	recent, err := s.RecentChats(ctx, userID, sectionID, DefaultRecentChatLimit)
	if err != nil {
		return nil, err
	}

	return &AskOutput{Record: record, RecentChats: recent}, nil
}

// RecentChats returns the user's most recent exchanges in a section in
// ascending time order, oldest of the window first.
func (s *ChatService) RecentChats(ctx context.Context, userID, sectionID string, limit int) ([]*domain.ChatRecord, error) {
	if limit <= 0 {
		limit = DefaultRecentChatLimit
	}

	records, err := s.chatRepo.Recent(ctx, userID, sectionID, limit)
	if err != nil {
		return nil, err
	}

	// Fetched newest-first; present oldest-first.
	for i, j := 0, len(records)-1; i < j; i, j = i+1, j-1 {
		records[i], records[j] = records[j], records[i]
	}
	return records, nil
}

// SampleQuestions returns up to n random previously asked questions for a
// section, across all users.
func (s *ChatService) SampleQuestions(ctx context.Context, sectionID string, n int) ([]string, error) {
	if n <= 0 {
		n = DefaultSampleQuestionCount
	}

	if _, err := s.sectionRepo.GetByID(ctx, sectionID); err != nil {
		return nil, err
	}

	return s.chatRepo.SampleQuestions(ctx, sectionID, n)
}

// ListSections returns all sections, for section pickers.
func (s *ChatService) ListSections(ctx context.Context) ([]*domain.Section, error) {
	return s.sectionRepo.List(ctx)
}
