package domain

import "fmt"

// DomainError represents a domain-specific error
type DomainError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new DomainError
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     nil,
	}
}

// NewDomainErrorWithCause creates a new DomainError with an underlying cause
func NewDomainErrorWithCause(code, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Common domain error codes
const (
	ErrCodeValidation       = "VALIDATION_ERROR"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeAlreadyExists    = "ALREADY_EXISTS"
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInternalError    = "INTERNAL_ERROR"
	ErrCodeInvalidOperation = "INVALID_OPERATION"

	// External-call failure codes for the RAG pipeline. The embedding
	// provider and the generation model are separate upstreams and fail
	// independently.
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeGenerationFailed    = "GENERATION_FAILED"
)

// Validation errors
var (
	ErrInvalidRole          = NewDomainError(ErrCodeValidation, "invalid user role")
	ErrInvalidSortOrder     = NewDomainError(ErrCodeValidation, "invalid sort order")
	ErrMissingRequiredField = NewDomainError(ErrCodeValidation, "missing required field")
	ErrEmptyQuestion        = NewDomainError(ErrCodeValidation, "question cannot be empty")
	ErrEmptyTopic           = NewDomainError(ErrCodeValidation, "topic cannot be empty")
)

// Not found errors
var (
	ErrSectionNotFound      = NewDomainError(ErrCodeNotFound, "section not found")
	ErrHandoutNotFound      = NewDomainError(ErrCodeNotFound, "handout not found")
	ErrUserNotFound         = NewDomainError(ErrCodeNotFound, "user not found")
	ErrIngestionJobNotFound = NewDomainError(ErrCodeNotFound, "ingestion job not found")
)

// Already exists errors
var (
	ErrSectionAlreadyExists = NewDomainError(ErrCodeAlreadyExists, "section already exists")
	ErrUserAlreadyExists    = NewDomainError(ErrCodeAlreadyExists, "user already exists")
)

// Authorization errors
var (
	ErrInvalidToken      = NewDomainError(ErrCodeUnauthorized, "invalid access token")
	ErrRoleNotPermitted  = NewDomainError(ErrCodeForbidden, "role is not permitted to perform this action")
	ErrNotHandoutCreator = NewDomainError(ErrCodeForbidden, "only the creating instructor or an admin can delete a handout")
)

// RAG pipeline failures. Empty retrieval is NOT an error: the pipeline
// degrades to the fixed refusal answer instead.
var (
	ErrProviderUnavailable = NewDomainError(ErrCodeUpstreamUnavailable, "embedding provider call failed")
	ErrGenerationFailed    = NewDomainError(ErrCodeGenerationFailed, "language model call failed")
)
