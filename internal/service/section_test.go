package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/umoyo-health/umoyoai/internal/domain"
)

// MockSectionWriter is a mock implementation of SectionWriterInterface
type MockSectionWriter struct {
	MockSectionRepository
}

func (m *MockSectionWriter) Create(ctx context.Context, s *domain.Section) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockSectionWriter) GetByName(ctx context.Context, name string) (*domain.Section, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Section), args.Error(1)
}

func TestCreateSection(t *testing.T) {
	repo := new(MockSectionWriter)
	svc := NewSectionService(repo, NewMockUUIDGenerator("sec-1"))

	repo.On("GetByName", mock.Anything, "Cholera").Return(nil, domain.ErrSectionNotFound)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(s *domain.Section) bool {
		return s.ID == "sec-1" && s.Name == "Cholera" && s.Description == "Acute watery diarrhoea"
	})).Return(nil)

	section, err := svc.Create(context.Background(), "Cholera", "Acute watery diarrhoea")
	require.NoError(t, err)
	assert.Equal(t, "Cholera", section.Name)
	repo.AssertExpectations(t)
}

func TestCreateSectionDuplicateName(t *testing.T) {
	repo := new(MockSectionWriter)
	svc := NewSectionService(repo, NewMockUUIDGenerator())

	repo.On("GetByName", mock.Anything, "Cholera").Return(testSection(), nil)

	_, err := svc.Create(context.Background(), "Cholera", "")
	assert.ErrorIs(t, err, domain.ErrSectionAlreadyExists)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateSectionEmptyName(t *testing.T) {
	svc := NewSectionService(new(MockSectionWriter), NewMockUUIDGenerator())

	_, err := svc.Create(context.Background(), "", "desc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")
}
