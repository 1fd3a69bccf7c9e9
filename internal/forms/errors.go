package forms

import (
	"errors"
	"fmt"
)

var (
	// ErrRelatedNotFound is returned when a stored foreign-key id does not
	// resolve to a row of the related table.
	ErrRelatedNotFound = errors.New("forms: related record not found")
	// ErrNoDisplayField is returned when no display column is configured for
	// a related table.
	ErrNoDisplayField = errors.New("forms: no display field configured")
	// ErrUnknownField is returned when a form definition names a column the
	// model does not have.
	ErrUnknownField = errors.New("forms: unknown field")
)

// Validation codes reported alongside messages.
const (
	CodeRequired     = "required"
	CodeInvalid      = "invalid"
	CodeInvalidDate  = "invalid_date"
	CodeInvalidValue = "invalid_choice"
	CodeMaxLength    = "max_length"
	CodeMinLength    = "min_length"
	CodeMinValue     = "min_value"
)

// ValidationError is a user-facing problem with submitted data. Field is
// empty for errors that concern the form as a whole.
type ValidationError struct {
	Field   string
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return e.Field + ": " + e.Message
}

func newValidationError(code, format string, args ...any) *ValidationError {
	return &ValidationError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NewFormError builds a validation error not tied to a single field.
func NewFormError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Message: message}
}

// NewFieldError builds a validation error attached to field.
func NewFieldError(field, code, message string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: message}
}

func errRequired() *ValidationError {
	return newValidationError(CodeRequired, "This field is required.")
}
