package errors

import (
	"fmt"
)

// Error types for different categories of failures
const (
	// Input/Output errors
	ErrInputRead   = "INPUT_READ_ERROR"
	ErrOutputWrite = "OUTPUT_WRITE_ERROR"

	// Trace extraction outcomes
	ErrNoTraceFound = "NO_TRACE_FOUND"
	ErrStrictMode   = "STRICT_MODE_WARNINGS"

	// Document errors
	ErrDocumentInvalid = "DOCUMENT_INVALID"
	ErrDocumentEncode  = "DOCUMENT_ENCODE_ERROR"

	// Watch errors
	ErrWatchFailed = "WATCH_FAILED"
)

// TraceError represents a structured error with type and context
type TraceError struct {
	Type    string
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *TraceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap allows error unwrapping
func (e *TraceError) Unwrap() error {
	return e.Cause
}

// New creates a new TraceError
func New(errorType, message string) *TraceError {
	return &TraceError{
		Type:    errorType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// Wrap creates a new TraceError wrapping an existing error
func Wrap(errorType, message string, cause error) *TraceError {
	return &TraceError{
		Type:    errorType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// WithContext adds context information to the error
func (e *TraceError) WithContext(key string, value interface{}) *TraceError {
	e.Context[key] = value
	return e
}

// GetContext returns context value by key
func (e *TraceError) GetContext(key string) (interface{}, bool) {
	value, exists := e.Context[key]
	return value, exists
}

// NewInputError creates an input-related error
func NewInputError(message string, cause error) *TraceError {
	return Wrap(ErrInputRead, message, cause)
}

// NewOutputError creates an output-related error
func NewOutputError(message string, cause error) *TraceError {
	return Wrap(ErrOutputWrite, message, cause)
}

// NewNoTraceError reports that the input contained no counterexample trace.
// This is an expected negative outcome, not a fault; callers should check for
// it with IsErrorType rather than treating it as fatal.
func NewNoTraceError() *TraceError {
	return New(ErrNoTraceFound, "no counterexample trace found in input")
}

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errorType string) bool {
	if traceErr, ok := err.(*TraceError); ok {
		return traceErr.Type == errorType
	}
	return false
}
