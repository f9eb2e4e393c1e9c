// Package apperror defines the error taxonomy shared by every store and
// use case. Callers match with errors.Is / errors.As; nothing in this
// package retries.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

var (
	ErrConnection        = errors.New("store unreachable")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrAuthentication    = errors.New("invalid credentials")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrForbidden         = errors.New("forbidden")
	ErrConflict          = errors.New("conflict")
	ErrRateLimited       = errors.New("too many attempts")
)

// ValidationError lists the offending fields of a rejected input
type ValidationError struct {
	Fields map[string]string
}

// NewValidationError returns an empty ValidationError ready for Add
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a problem with one field
func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

// OrNil returns nil when no field was recorded
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// Invalid builds a single-field ValidationError
func Invalid(field, message string) error {
	v := NewValidationError()
	v.Add(field, message)
	return v
}

// Bulk replace phases
const (
	PhaseDelete = "delete"
	PhaseInsert = "insert"
	PhaseCommit = "commit"
)

// PhaseError reports which step of a bulk replace failed. Committed tells
// whether earlier phases are already durable.
type PhaseError struct {
	Phase     string
	Committed bool
	Err       error
}

func (e *PhaseError) Error() string {
	state := "rolled back"
	if e.Committed {
		state = "partially applied"
	}
	return fmt.Sprintf("replace failed during %s (%s): %v", e.Phase, state, e.Err)
}

func (e *PhaseError) Unwrap() error {
	return e.Err
}

// HTTPStatus maps an error to the status code surfaced to clients
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateUsername), errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrConnection):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
