package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeValidation represents malformed or missing intake fields
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeNotFound represents lookups of unknown records
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeParse represents an unreadable durable graph artifact
	ErrorTypeParse ErrorType = "parse"
	// ErrorTypeQuery represents a malformed graph pattern (programming error)
	ErrorTypeQuery ErrorType = "query"
	// ErrorTypeStore represents durable artifact I/O failures
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeExport represents external triple-store upload failures
	ErrorTypeExport ErrorType = "export"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Validation Errors

// ValidationError is returned when an intake record fails validation.
// Field names the offending field so callers can surface it directly.
type ValidationError struct {
	*BaseError
	Field  string
	Reason string
}

func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{
		BaseError: NewBaseError(ErrorTypeValidation, fmt.Sprintf("invalid %s: %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// Not-Found Errors

// NotFoundError is returned when a referenced record does not exist
type NotFoundError struct {
	*BaseError
	Kind string // participant, encounter, protocol, domain
	ID   string
}

func NewNotFoundError(kind, id string) *NotFoundError {
	return &NotFoundError{
		BaseError: NewBaseError(ErrorTypeNotFound, fmt.Sprintf("%s not found: %s", kind, id), nil),
		Kind:      kind,
		ID:        id,
	}
}

// Graph Store Errors

// ParseError is returned when the durable graph artifact cannot be parsed.
// The previously persisted artifact is left untouched when this occurs.
type ParseError struct {
	*BaseError
	Line int
}

func NewParseError(line int, reason string, err error) *ParseError {
	return &ParseError{
		BaseError: NewBaseError(ErrorTypeParse, fmt.Sprintf("line %d: %s", line, reason), err),
		Line:      line,
	}
}

// QueryError is returned for malformed match patterns or aggregation over
// non-numeric literals. With the typed query API this indicates a
// programming error in the caller.
type QueryError struct {
	*BaseError
	Pattern string
}

func NewQueryError(pattern, reason string) *QueryError {
	return &QueryError{
		BaseError: NewBaseError(ErrorTypeQuery, fmt.Sprintf("bad pattern %s: %s", pattern, reason), nil),
		Pattern:   pattern,
	}
}

// Store Errors

// StoreError is returned when reading or writing the durable artifact fails
type StoreError struct {
	*BaseError
	Path string
}

func NewStoreError(path, message string, err error) *StoreError {
	return &StoreError{
		BaseError: NewBaseError(ErrorTypeStore, message, err),
		Path:      path,
	}
}

// Export Errors

// ExportError is returned when mirroring the graph to Neo4j fails
type ExportError struct {
	*BaseError
	URI string
}

func NewExportError(uri string, err error) *ExportError {
	return &ExportError{
		BaseError: NewBaseError(ErrorTypeExport, fmt.Sprintf("graph export to %s failed", uri), err),
		URI:       uri,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if baseErr, ok := err.(*BaseError); ok {
			return baseErr.Type == errType
		}
		if typed, ok := err.(interface{ base() *BaseError }); ok {
			return typed.base().Type == errType
		}
		err = errors.Unwrap(err)
	}
	return false
}

// base is promoted from the embedded *BaseError on every concrete error
// type, which lets IsErrorType classify them without a type switch.
func (e *BaseError) base() *BaseError { return e }

// IsValidation reports whether err is a validation error
func IsValidation(err error) bool { return IsErrorType(err, ErrorTypeValidation) }

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool { return IsErrorType(err, ErrorTypeNotFound) }

// IsParse reports whether err is a parse error
func IsParse(err error) bool { return IsErrorType(err, ErrorTypeParse) }
