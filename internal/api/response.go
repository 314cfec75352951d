// Package api defines the JSON envelope and error mapping shared by all
// HTTP handlers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/umoyo-health/umoyoai/internal/domain"
)

// SuccessResponse is the envelope for successful responses.
type SuccessResponse struct {
	Data interface{} `json:"data"`
}

// ErrorResponse is the envelope for error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

var statusByCode = map[string]int{
	domain.ErrCodeValidation:          http.StatusBadRequest,
	domain.ErrCodeInvalidOperation:    http.StatusBadRequest,
	domain.ErrCodeUnauthorized:        http.StatusUnauthorized,
	domain.ErrCodeForbidden:           http.StatusForbidden,
	domain.ErrCodeNotFound:            http.StatusNotFound,
	domain.ErrCodeAlreadyExists:       http.StatusConflict,
	domain.ErrCodeUpstreamUnavailable: http.StatusBadGateway,
	domain.ErrCodeGenerationFailed:    http.StatusBadGateway,
	domain.ErrCodeInternalError:       http.StatusInternalServerError,
}

// JSON writes data as a JSON body with the given status. A nil data
// value writes headers only.
func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	json.NewEncoder(w).Encode(data)
}

// Success writes data wrapped in the success envelope.
func Success(w http.ResponseWriter, status int, data interface{}) {
	JSON(w, status, SuccessResponse{Data: data})
}

// Error writes message wrapped in the error envelope.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorResponse{Error: message})
}

// DomainErrorToHTTP resolves the HTTP status for a domain error. Errors
// that are not domain errors map to 500.
func DomainErrorToHTTP(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *domain.DomainError
	if !errors.As(err, &domainErr) {
		return http.StatusInternalServerError
	}

	if status, ok := statusByCode[domainErr.Code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// HandleError writes err with the status DomainErrorToHTTP resolves.
func HandleError(w http.ResponseWriter, err error) {
	Error(w, DomainErrorToHTTP(err), err.Error())
}
