package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound               = errors.New("not found")
	ErrAlreadyExists          = errors.New("already exists")
	ErrValidation             = errors.New("validation error")
	ErrInvalidFieldDefinition = errors.New("invalid field definition")
	ErrDuplicateEntity        = errors.New("duplicate entity")
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrEmptyName              = errors.New("empty name")
	ErrUnauthorized           = errors.New("unauthorized")
	ErrForbidden              = errors.New("forbidden")
)

// Validation error codes carried by FieldError.Code.
const (
	CodeRequired      = "required"
	CodeInvalidType   = "invalid_type"
	CodeInvalidEmail  = "invalid_email"
	CodeInvalidNumber = "invalid_number"
	CodeInvalidPhone  = "invalid_phone"
	CodeInvalidDate   = "invalid_date"
	CodeInvalidOption = "invalid_option"
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// HasCode reports whether any error for field carries code.
func (e *ValidationError) HasCode(field, code string) bool {
	for _, fe := range e.Errors {
		if fe.Field == field && fe.Code == code {
			return true
		}
	}
	return false
}

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// FieldDefinitionError reports admin-authored field metadata that cannot be
// accepted. Like ValidationError it carries every problem found.
type FieldDefinitionError struct {
	Errors []FieldError
}

func (e *FieldDefinitionError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("field definition: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("field definition: %d errors", len(e.Errors))
}

func (e *FieldDefinitionError) Unwrap() error { return ErrInvalidFieldDefinition }

// NewFieldDefinitionError creates a FieldDefinitionError for a single attribute.
func NewFieldDefinitionError(field, message string) *FieldDefinitionError {
	return &FieldDefinitionError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// DuplicateEntityError names the unique key that collided with an existing record.
type DuplicateEntityError struct {
	FormType   FormType
	Field      string
	Value      string
	ExistingID string
}

func (e *DuplicateEntityError) Error() string {
	return fmt.Sprintf("duplicate %s: %s %q already exists", e.FormType, e.Field, e.Value)
}

func (e *DuplicateEntityError) Unwrap() error { return ErrDuplicateEntity }
