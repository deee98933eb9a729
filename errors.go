package htmltree

import (
	"errors"
	"fmt"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// NotFoundError represents a query or scan that matched nothing
	NotFoundError ErrorType = "not_found"

	// ParseError represents parsing-related errors
	ParseError ErrorType = "parse_error"

	// EncodingError represents unknown or lossy character encodings
	EncodingError ErrorType = "encoding_error"

	// ValidationError represents invalid arguments or selectors
	ValidationError ErrorType = "validation_error"

	// IOError represents I/O-related errors
	IOError ErrorType = "io_error"

	// ConfigError represents configuration-related errors
	ConfigError ErrorType = "config_error"
)

// AppError represents a structured application error
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
	Code    string
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap implements the error unwrapping interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewNotFoundError creates a new not-found error
func NewNotFoundError(message string) *AppError {
	return &AppError{
		Type:    NotFoundError,
		Message: message,
		Code:    "FIND001",
	}
}

// NewParseError creates a new parsing error
func NewParseError(message string, err error) *AppError {
	return &AppError{
		Type:    ParseError,
		Message: message,
		Err:     err,
		Code:    "PARSE001",
	}
}

// NewEncodingError creates a new encoding error
func NewEncodingError(message string, err error) *AppError {
	return &AppError{
		Type:    EncodingError,
		Message: message,
		Err:     err,
		Code:    "ENC001",
	}
}

// NewValidationError creates a new validation error
func NewValidationError(message string, err error) *AppError {
	return &AppError{
		Type:    ValidationError,
		Message: message,
		Err:     err,
		Code:    "VALID001",
	}
}

// NewIOError creates a new I/O error
func NewIOError(message string, err error) *AppError {
	return &AppError{
		Type:    IOError,
		Message: message,
		Err:     err,
		Code:    "IO001",
	}
}

// NewConfigError creates a new configuration error
func NewConfigError(message string, err error) *AppError {
	return &AppError{
		Type:    ConfigError,
		Message: message,
		Err:     err,
		Code:    "CONF001",
	}
}

// ErrorTypeOf reports the ErrorType carried by err, or "" when err is not an AppError.
func ErrorTypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ""
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool { return ErrorTypeOf(err) == NotFoundError }

// IsParseError reports whether err is a ParseError.
func IsParseError(err error) bool { return ErrorTypeOf(err) == ParseError }

// IsEncodingError reports whether err is an EncodingError.
func IsEncodingError(err error) bool { return ErrorTypeOf(err) == EncodingError }
