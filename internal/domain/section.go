package domain

import "time"

// Section is a curricular unit of the surveillance guidelines. Every stored
// document chunk and every query is scoped to exactly one section; retrieval
// never crosses section boundaries.
type Section struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}

// ValidateSection validates a Section instance
func ValidateSection(s *Section) error {
	if s == nil {
		return NewDomainError(ErrCodeValidation, "section cannot be nil")
	}
	if s.ID == "" {
		return NewDomainError(ErrCodeValidation, "section ID is required")
	}
	if s.Name == "" {
		return NewDomainError(ErrCodeValidation, "section name is required")
	}
	return nil
}
