package domain

import "time"

// Handout is a generated long-form training document. The title is produced
// by a separate generation round-trip from the body; neither is validated
// for factual correctness here.
type Handout struct {
	ID          string
	SectionID   string
	CreatedByID string
	Title       string
	Body        string
	CreatedAt   time.Time
}

// SortOrder controls handout listing order by creation time.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder converts a raw string into a SortOrder, defaulting to
// descending when empty.
func ParseSortOrder(s string) (SortOrder, error) {
	switch SortOrder(s) {
	case SortAsc:
		return SortAsc, nil
	case SortDesc, "":
		return SortDesc, nil
	default:
		return "", ErrInvalidSortOrder
	}
}

// ValidateHandout validates a Handout instance
func ValidateHandout(h *Handout) error {
	if h == nil {
		return NewDomainError(ErrCodeValidation, "handout cannot be nil")
	}
	if h.ID == "" {
		return NewDomainError(ErrCodeValidation, "handout ID is required")
	}
	if h.SectionID == "" {
		return NewDomainError(ErrCodeValidation, "handout section ID is required")
	}
	if h.CreatedByID == "" {
		return NewDomainError(ErrCodeValidation, "handout creator ID is required")
	}
	if h.Title == "" {
		return NewDomainError(ErrCodeValidation, "handout title is required")
	}
	if h.Body == "" {
		return NewDomainError(ErrCodeValidation, "handout body is required")
	}
	return nil
}
