package openai

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockEmbeddingAPI is a mock for the embedding API
type MockEmbeddingAPI struct {
	mock.Mock
}

func (m *MockEmbeddingAPI) CreateEmbeddings(ctx context.Context, text string) ([]float32, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]float32), args.Error(1)
}

// MockCompletionAPI is a mock for the completion API
type MockCompletionAPI struct {
	mock.Mock
}

func (m *MockCompletionAPI) CreateCompletion(ctx context.Context, prompt string, temperature float32) (string, error) {
	args := m.Called(ctx, prompt, temperature)
	return args.String(0), args.Error(1)
}

func testClient(embeddings EmbeddingAPI, completions CompletionAPI) *Client {
	return &Client{
		embeddings:      embeddings,
		completions:     completions,
		dimensions:      DefaultEmbeddingDimensions,
		embedTimeout:    time.Second,
		generateTimeout: time.Second,
	}
}

func TestClient_GenerateEmbedding_Success(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	client := testClient(mockAPI, nil)

	text := "Case definition for suspected cholera."
	expectedEmbedding := make([]float32, 1536)
	for i := range expectedEmbedding {
		expectedEmbedding[i] = float32(i) * 0.001
	}

	mockAPI.On("CreateEmbeddings", mock.Anything, text).Return(expectedEmbedding, nil)

	embedding, err := client.GenerateEmbedding(context.Background(), text)

	assert.NoError(t, err)
	assert.Len(t, embedding, 1536)
	assert.Equal(t, expectedEmbedding, embedding)
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateEmbedding_EmptyText(t *testing.T) {
	client := NewClient("")

	embedding, err := client.GenerateEmbedding(context.Background(), "")

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.Equal(t, ErrEmptyText, err)
}

func TestClient_GenerateEmbedding_APIError(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	client := testClient(mockAPI, nil)

	apiErr := errors.New("API rate limit exceeded")
	mockAPI.On("CreateEmbeddings", mock.Anything, "Test text").Return(nil, apiErr)

	embedding, err := client.GenerateEmbedding(context.Background(), "Test text")

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.Contains(t, err.Error(), "failed to create embedding")
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateEmbedding_WrongDimensions(t *testing.T) {
	mockAPI := new(MockEmbeddingAPI)
	client := testClient(mockAPI, nil)

	wrongEmbedding := make([]float32, 512)
	mockAPI.On("CreateEmbeddings", mock.Anything, "Test text").Return(wrongEmbedding, nil)

	embedding, err := client.GenerateEmbedding(context.Background(), "Test text")

	assert.Error(t, err)
	assert.Nil(t, embedding)
	assert.ErrorIs(t, err, ErrWrongDimensions)
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateText_Success(t *testing.T) {
	mockAPI := new(MockCompletionAPI)
	client := testClient(nil, mockAPI)

	mockAPI.On("CreateCompletion", mock.Anything, "prompt text", float32(0.1)).
		Return("generated answer", nil)

	text, err := client.GenerateText(context.Background(), "prompt text", 0.1)

	assert.NoError(t, err)
	assert.Equal(t, "generated answer", text)
	mockAPI.AssertExpectations(t)
}

func TestClient_GenerateText_EmptyPrompt(t *testing.T) {
	client := NewClient("")

	_, err := client.GenerateText(context.Background(), "", 0.1)

	assert.Error(t, err)
	assert.Equal(t, ErrEmptyPrompt, err)
}

func TestClient_GenerateText_EmptyCompletionPassesThrough(t *testing.T) {
	mockAPI := new(MockCompletionAPI)
	client := testClient(nil, mockAPI)

	mockAPI.On("CreateCompletion", mock.Anything, "prompt", float32(0.1)).Return("", nil)

	text, err := client.GenerateText(context.Background(), "prompt", 0.1)

	// Empty completion is the caller's call: body treats it as a failure,
	// title falls back to a placeholder.
	assert.NoError(t, err)
	assert.Empty(t, text)
}

func TestClient_GenerateText_APIError(t *testing.T) {
	mockAPI := new(MockCompletionAPI)
	client := testClient(nil, mockAPI)

	mockAPI.On("CreateCompletion", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("model overloaded"))

	_, err := client.GenerateText(context.Background(), "prompt", 0.1)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create completion")
}

func TestNewClient(t *testing.T) {
	client := NewClient("test-api-key")

	assert.NotNil(t, client)
	assert.NotNil(t, client.embeddings)
	assert.NotNil(t, client.completions)
	assert.Equal(t, DefaultEmbeddingDimensions, client.dimensions)
}

func TestNewClientFromEnv_NoAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	client, err := NewClientFromEnv()

	assert.Nil(t, client)
	assert.Error(t, err)
	assert.Equal(t, ErrNoAPIKey, err)
}

func TestNewClientFromEnv_WithAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "test-api-key")

	client, err := NewClientFromEnv()

	assert.NotNil(t, client)
	assert.NoError(t, err)
}
