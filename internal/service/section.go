package service

import (
	"context"
	"time"

	"github.com/umoyo-health/umoyoai/internal/domain"
)

// SectionWriterInterface extends section lookups with creation, for admin tooling
type SectionWriterInterface interface {
	SectionRepositoryInterface
	Create(ctx context.Context, s *domain.Section) error
	GetByName(ctx context.Context, name string) (*domain.Section, error)
}

// SectionService manages curricular sections. Sections are created by admin
// tooling, not over the HTTP API.
type SectionService struct {
	sectionRepo SectionWriterInterface
	uuidGen     UUIDGenerator
}

func NewSectionService(sectionRepo SectionWriterInterface, uuidGen UUIDGenerator) *SectionService {
	return &SectionService{
		sectionRepo: sectionRepo,
		uuidGen:     uuidGen,
	}
}

func (s *SectionService) Create(ctx context.Context, name, description string) (*domain.Section, error) {
	if name == "" {
		return nil, domain.NewDomainError(domain.ErrCodeValidation, "section name is required")
	}

	if _, err := s.sectionRepo.GetByName(ctx, name); err == nil {
		return nil, domain.ErrSectionAlreadyExists
	} else if err != domain.ErrSectionNotFound {
		return nil, err
	}

	section := &domain.Section{
		ID:          s.uuidGen.NewString(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := domain.ValidateSection(section); err != nil {
		return nil, err
	}

	if err := s.sectionRepo.Create(ctx, section); err != nil {
		return nil, err
	}

	return section, nil
}

func (s *SectionService) GetByID(ctx context.Context, id string) (*domain.Section, error) {
	return s.sectionRepo.GetByID(ctx, id)
}

func (s *SectionService) List(ctx context.Context) ([]*domain.Section, error) {
	return s.sectionRepo.List(ctx)
}
