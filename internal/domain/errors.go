package domain

import (
	"errors"
	"strings"
)

var (
	ErrRecordNotFound   = errors.New("record not found")
	ErrDuplicateSlug    = errors.New("a movie with the same slug already exists")
	ErrDuplicateMovieID = errors.New("a movie with the same id already exists")
	ErrInvalidSortField = errors.New("unsupported sort field")
)

type FieldFailure struct {
	Field   string
	Message string
}

// ValidationError carries every rule violation found for a single input.
type ValidationError struct {
	Failures []FieldFailure
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Failures: []FieldFailure{{Field: field, Message: message}},
	}
}

func (e *ValidationError) Add(field, message string) {
	e.Failures = append(e.Failures, FieldFailure{Field: field, Message: message})
}

func (e *ValidationError) HasFailures() bool {
	return len(e.Failures) > 0
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = f.Field + ": " + f.Message
	}

	return "validation failed: " + strings.Join(parts, "; ")
}
