package service

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/umoyo-health/umoyoai/internal/domain"
)

// MockSectionRepository is a mock implementation of SectionRepositoryInterface
type MockSectionRepository struct {
	mock.Mock
}

func (m *MockSectionRepository) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Section), args.Error(1)
}

func (m *MockSectionRepository) List(ctx context.Context) ([]*domain.Section, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Section), args.Error(1)
}

// MockChatRecordRepository is a mock implementation of ChatRecordRepositoryInterface
type MockChatRecordRepository struct {
	mock.Mock
}

func (m *MockChatRecordRepository) Create(ctx context.Context, c *domain.ChatRecord) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockChatRecordRepository) Recent(ctx context.Context, userID, sectionID string, limit int) ([]*domain.ChatRecord, error) {
	args := m.Called(ctx, userID, sectionID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.ChatRecord), args.Error(1)
}

func (m *MockChatRecordRepository) SampleQuestions(ctx context.Context, sectionID string, n int) ([]string, error) {
	args := m.Called(ctx, sectionID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// MockHandoutRepository is a mock implementation of HandoutRepositoryInterface
type MockHandoutRepository struct {
	mock.Mock
}

func (m *MockHandoutRepository) Create(ctx context.Context, h *domain.Handout) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockHandoutRepository) GetByID(ctx context.Context, id string) (*domain.Handout, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Handout), args.Error(1)
}

func (m *MockHandoutRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockHandoutRepository) List(ctx context.Context, filter HandoutFilter) ([]*domain.Handout, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Handout), args.Error(1)
}

func (m *MockHandoutRepository) Count(ctx context.Context, filter HandoutFilter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByTokenHash(ctx context.Context, hash string) (*domain.User, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.User), args.Error(1)
}

// MockRetriever is a mock implementation of ChunkRetriever
type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) Retrieve(ctx context.Context, query, sectionID string, k int, threshold float32) ([]domain.ScoredChunk, error) {
	args := m.Called(ctx, query, sectionID, k, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScoredChunk), args.Error(1)
}

// MockCompletionClient is a mock implementation of CompletionClient
type MockCompletionClient struct {
	mock.Mock
}

func (m *MockCompletionClient) GenerateText(ctx context.Context, prompt string, temperature float32) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}

// MockEmbeddingClient is a mock implementation of EmbeddingClient
type MockEmbeddingClient struct {
	mock.Mock
}

func (m *MockEmbeddingClient) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockChunkIndex is a mock implementation of ChunkIndex
type MockChunkIndex struct {
	mock.Mock
}

func (m *MockChunkIndex) Search(ctx context.Context, embedding []float32, sectionID string, k int, threshold float32) ([]domain.ScoredChunk, error) {
	args := m.Called(ctx, embedding, sectionID, k, threshold)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ScoredChunk), args.Error(1)
}

// MockChunkWriter is a mock implementation of ChunkWriter
type MockChunkWriter struct {
	mock.Mock
}

func (m *MockChunkWriter) ReplaceSource(ctx context.Context, sectionID, sourceFile string, chunks []domain.DocumentChunk) error {
	args := m.Called(ctx, sectionID, sourceFile, chunks)
	return args.Error(0)
}

func (m *MockChunkWriter) CountBySection(ctx context.Context, sectionID string) (int, error) {
	args := m.Called(ctx, sectionID)
	return args.Int(0), args.Error(1)
}

// MockIngestionJobRepository is a mock implementation of IngestionJobRepositoryInterface
type MockIngestionJobRepository struct {
	mock.Mock
}

func (m *MockIngestionJobRepository) Create(ctx context.Context, job *domain.IngestionJob) error {
	args := m.Called(ctx, job)
	return args.Error(0)
}

// MockAnswerGenerator is a mock implementation of AnswerGenerator
type MockAnswerGenerator struct {
	mock.Mock
}

func (m *MockAnswerGenerator) Answer(ctx context.Context, question, sectionID string) (string, error) {
	args := m.Called(ctx, question, sectionID)
	return args.String(0), args.Error(1)
}

// MockHandoutGenerator is a mock implementation of HandoutGenerator
type MockHandoutGenerator struct {
	mock.Mock
}

func (m *MockHandoutGenerator) Handout(ctx context.Context, topic, sectionID string) (*HandoutDraft, error) {
	args := m.Called(ctx, topic, sectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*HandoutDraft), args.Error(1)
}

// MockUUIDGenerator returns a fixed sequence of IDs
type MockUUIDGenerator struct {
	callCount int
	uuids     []string
}

func NewMockUUIDGenerator(uuids ...string) *MockUUIDGenerator {
	return &MockUUIDGenerator{uuids: uuids}
}

func (m *MockUUIDGenerator) NewString() string {
	if m.callCount < len(m.uuids) {
		uuid := m.uuids[m.callCount]
		m.callCount++
		return uuid
	}
	return "default-uuid"
}
