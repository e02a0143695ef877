package validkit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/gobeaver/validkit/sanitize"
)

// Common errors
var (
	ErrEmptyAllowList    = errors.New("allow-list is empty")
	ErrUnsupportedEngine = errors.New("validation engine is not a *validator.Validate")
	ErrNotPointer        = sanitize.ErrNotPointer
	ErrMaxDepth          = sanitize.ErrMaxDepth
	ErrInvalidTagParam   = errors.New("invalid tag parameter")
)

// ConfigError records a rule that could not be constructed.
type ConfigError struct {
	Rule string
	Err  error
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %v", e.Rule, e.Err)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ValidationErrorType represents different types of validation errors
type ValidationErrorType string

const (
	ErrorTypeSpecialChars ValidationErrorType = "specialchars"
	ErrorTypeScript       ValidationErrorType = "script"
	ErrorTypeExtension    ValidationErrorType = "extension"
	ErrorTypeContentType  ValidationErrorType = "contenttype"
	ErrorTypeOther        ValidationErrorType = "other"
)

// ValidationError describes a single failed field.
type ValidationError struct {
	// Field is the field name as reported by the engine.
	Field string `json:"field"`

	// Namespace is the full path, e.g. "User.Address.Street".
	Namespace string `json:"namespace"`

	// Tag is the validation tag that failed.
	Tag string `json:"tag"`

	// Param is the tag parameter, if any.
	Param string `json:"param,omitempty"`

	// Type categorizes the failure.
	Type ValidationErrorType `json:"type"`

	// Message is the rendered message template.
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s validation error: %s", e.Type, e.Message)
}

// NewValidationError converts a failed field reported by the engine.
func NewValidationError(fe validator.FieldError) ValidationError {
	return ValidationError{
		Field:     fe.Field(),
		Namespace: fe.Namespace(),
		Tag:       fe.Tag(),
		Param:     fe.Param(),
		Type:      errorType(fe.Tag()),
		Message:   ErrorMessage(fe),
	}
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface
func (e ValidationErrors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		if err.Namespace == "" {
			msgs = append(msgs, err.Message)
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", err.Namespace, err.Message))
	}
	return strings.Join(msgs, "; ")
}

// IsValidationError checks if an error is a ValidationError or ValidationErrors
func IsValidationError(err error) bool {
	var one *ValidationError
	if errors.As(err, &one) {
		return true
	}
	var many ValidationErrors
	return errors.As(err, &many)
}

// IsErrorOfType checks if an error is, or contains, a ValidationError of the specified type
func IsErrorOfType(err error, errType ValidationErrorType) bool {
	var one *ValidationError
	if errors.As(err, &one) {
		return one.Type == errType
	}
	var many ValidationErrors
	if errors.As(err, &many) {
		for _, e := range many {
			if e.Type == errType {
				return true
			}
		}
	}
	return false
}

// GetErrorType returns the type of the first validation error, or empty string
func GetErrorType(err error) ValidationErrorType {
	var one *ValidationError
	if errors.As(err, &one) {
		return one.Type
	}
	var many ValidationErrors
	if errors.As(err, &many) && len(many) > 0 {
		return many[0].Type
	}
	return ""
}
