package services

import "errors"

var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("scam log not found")
)

// ValidationError reports a rejected input field. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
