package errors

import (
	"fmt"
)

// ErrorType categorizes failures on the service surface. The stack core
// itself never returns errors; these cover the layers around it.
type ErrorType string

const (
	ErrorTypeValidation    ErrorType = "validation"
	ErrorTypeCapacity      ErrorType = "capacity"
	ErrorTypeNetwork       ErrorType = "network"
	ErrorTypeConfiguration ErrorType = "configuration"
)

// StructuredError provides rich error context.
type StructuredError struct {
	Type      ErrorType
	Operation string
	Message   string
	Cause     error
	Context   map[string]interface{}
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %s: %v", e.Type, e.Operation, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Type, e.Operation, e.Message)
}

// Unwrap returns the underlying cause.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new structured error.
func New(errType ErrorType, operation, message string) *StructuredError {
	return &StructuredError{
		Type:      errType,
		Operation: operation,
		Message:   message,
		Context:   make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(err error, errType ErrorType, operation, message string) *StructuredError {
	if err == nil {
		return nil
	}

	return &StructuredError{
		Type:      errType,
		Operation: operation,
		Message:   message,
		Cause:     err,
		Context:   make(map[string]interface{}),
	}
}

// WithContext adds context information to an error.
func (e *StructuredError) WithContext(key string, value interface{}) *StructuredError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// IsType reports whether err is a StructuredError of the given type.
func IsType(err error, errType ErrorType) bool {
	se, ok := err.(*StructuredError)
	return ok && se.Type == errType
}

// NewValidationError creates a validation error.
func NewValidationError(operation, message string) *StructuredError {
	return New(ErrorTypeValidation, operation, message)
}

// NewCapacityError creates a capacity error.
func NewCapacityError(operation, message string) *StructuredError {
	return New(ErrorTypeCapacity, operation, message)
}

// NewConfigurationError creates a configuration error.
func NewConfigurationError(operation, message string) *StructuredError {
	return New(ErrorTypeConfiguration, operation, message)
}

// WrapNetworkError wraps an error as a network error.
func WrapNetworkError(err error, operation, message string) *StructuredError {
	return Wrap(err, ErrorTypeNetwork, operation, message)
}
