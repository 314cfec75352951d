package service

import (
	"context"
	"strings"
	"time"

	"github.com/umoyo-health/umoyoai/internal/domain"
	"github.com/umoyo-health/umoyoai/internal/pagination"
	"github.com/umoyo-health/umoyoai/internal/telemetry"
)

// HandoutRepositoryInterface defines the repository interface for handout persistence
type HandoutRepositoryInterface interface {
	Create(ctx context.Context, h *domain.Handout) error
	GetByID(ctx context.Context, id string) (*domain.Handout, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter HandoutFilter) ([]*domain.Handout, error)
	Count(ctx context.Context, filter HandoutFilter) (int, error)
}

// HandoutGenerator defines the long-form generation pipeline
type HandoutGenerator interface {
	Handout(ctx context.Context, topic, sectionID string) (*HandoutDraft, error)
}

// HandoutFilter selects and pages handouts. Zero-value fields are ignored;
// Search matches a substring of either title or body, case-insensitively.
type HandoutFilter struct {
	SectionID   string
	CreatedByID string
	Search      string
	Order       domain.SortOrder
	Offset      int
	Limit       int
}

// TrainingService handles handout generation and management.
type TrainingService struct {
	sectionRepo SectionRepositoryInterface
	handoutRepo HandoutRepositoryInterface
	rag         HandoutGenerator
	uuidGen     UUIDGenerator
}

func NewTrainingService(
	sectionRepo SectionRepositoryInterface,
	handoutRepo HandoutRepositoryInterface,
	rag HandoutGenerator,
) *TrainingService {
	return &TrainingService{
		sectionRepo: sectionRepo,
		handoutRepo: handoutRepo,
		rag:         rag,
		uuidGen:     &DefaultUUIDGenerator{},
	}
}

// NewTrainingServiceWithUUIDGen creates a TrainingService with a custom UUID generator (for testing)
func NewTrainingServiceWithUUIDGen(
	sectionRepo SectionRepositoryInterface,
	handoutRepo HandoutRepositoryInterface,
	rag HandoutGenerator,
	uuidGen UUIDGenerator,
) *TrainingService {
	return &TrainingService{
		sectionRepo: sectionRepo,
		handoutRepo: handoutRepo,
		rag:         rag,
		uuidGen:     uuidGen,
	}
}

// Generate creates and persists a handout for a topic within a section.
// Only instructors and admins may generate handouts.
func (s *TrainingService) Generate(ctx context.Context, user *domain.User, sectionID, topic string) (*domain.Handout, error) {
	ctx, span := telemetry.StartSpan(ctx, "TrainingService.Generate", telemetry.SpanAttributes{
		SectionID: sectionID,
		UserID:    user.ID,
		Operation: "generate",
	})
	defer span.End()

	if !user.Role.CanManageHandouts() {
		return nil, domain.ErrRoleNotPermitted
	}

	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, domain.ErrEmptyTopic
	}

	if _, err := s.sectionRepo.GetByID(ctx, sectionID); err != nil {
		return nil, err
	}

	draft, err := s.rag.Handout(ctx, topic, sectionID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	handout := &domain.Handout{
		ID:          s.uuidGen.NewString(),
		SectionID:   sectionID,
		CreatedByID: user.ID,
		Title:       draft.Title,
		Body:        draft.Body,
		CreatedAt:   time.Now().UTC(),
	}
	if err := domain.ValidateHandout(handout); err != nil {
		return nil, err
	}
	if err := s.handoutRepo.Create(ctx, handout); err != nil {
		return nil, err
	}

	return handout, nil
}

// Get retrieves a single handout by ID.
func (s *TrainingService) Get(ctx context.Context, id string) (*domain.Handout, error) {
	return s.handoutRepo.GetByID(ctx, id)
}

// List returns a page of handouts matching the filter, with totals.
func (s *TrainingService) List(ctx context.Context, filter HandoutFilter) (*pagination.Page[*domain.Handout], error) {
	ctx, span := telemetry.StartSpan(ctx, "TrainingService.List", telemetry.SpanAttributes{
		SectionID: filter.SectionID,
		Operation: "list",
	})
	defer span.End()

	params := pagination.Params{Offset: filter.Offset, Limit: filter.Limit}
	params = params.Normalize(pagination.DefaultLimit)
	filter.Offset = params.Offset
	filter.Limit = params.Limit

	items, err := s.handoutRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	total, err := s.handoutRepo.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	page := pagination.NewPage(items, total, filter.Limit)
	return &page, nil
}

// Pages returns how many pages the filter spans at the given limit.
func (s *TrainingService) Pages(ctx context.Context, filter HandoutFilter) (int, error) {
	params := pagination.Params{Limit: filter.Limit}
	params = params.Normalize(pagination.DefaultLimit)
	filter.Limit = params.Limit

	total, err := s.handoutRepo.Count(ctx, filter)
	if err != nil {
		return 0, err
	}
	return pagination.TotalPages(total, filter.Limit), nil
}

// Delete removes a handout. Admins may delete any handout; instructors only
// their own. Field workers never reach here but the switch stays exhaustive.
func (s *TrainingService) Delete(ctx context.Context, user *domain.User, handoutID string) error {
	ctx, span := telemetry.StartSpan(ctx, "TrainingService.Delete", telemetry.SpanAttributes{
		UserID:    user.ID,
		Operation: "delete",
	})
	defer span.End()

	handout, err := s.handoutRepo.GetByID(ctx, handoutID)
	if err != nil {
		return err
	}

	switch user.Role {
	case domain.RoleAdmin:
		// may delete any handout
	case domain.RoleInstructor:
		if handout.CreatedByID != user.ID {
			return domain.ErrNotHandoutCreator
		}
	case domain.RoleFieldWorker:
		return domain.ErrRoleNotPermitted
	default:
		return domain.ErrInvalidRole
	}

	return s.handoutRepo.Delete(ctx, handoutID)
}
