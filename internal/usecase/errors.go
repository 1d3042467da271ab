package usecase

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInternal                = errors.New("internal error")
	ErrInvalidInput            = errors.New("invalid input")
	ErrNotFound                = errors.New("not found")
	ErrForbidden               = errors.New("forbidden")
	ErrAuthenticationRequired  = errors.New("authentication required")
	ErrMissingInput            = errors.New("missing input")
	ErrInvalidResume           = errors.New("invalid resume")
	ErrStorage                 = errors.New("storage error")
	ErrPersistence             = errors.New("persistence error")
	ErrUnknownSlug             = errors.New("unknown company slug")
	ErrSlugTaken               = errors.New("company slug already taken")
	ErrInvalidStatusTransition = errors.New("invalid job status transition")
	ErrAIUnavailable           = errors.New("ai generation unavailable")
)

// Submission preconditions. Each one matches ErrMissingInput.
var (
	ErrMissingJobID   = fmt.Errorf("%w: job id", ErrMissingInput)
	ErrMissingResume  = fmt.Errorf("%w: resume", ErrMissingInput)
	ErrMissingAnswers = fmt.Errorf("%w: answers", ErrMissingInput)
)

// ValidationError carries per-field messages keyed by field path.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	parts := make([]string, 0, len(e.Fields))
	for k, v := range e.Fields {
		parts = append(parts, k+": "+v)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}
