// Package errors provides structured error types for figmajson.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the bridge and the library
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - *_NOT_FOUND: Resource not found
//   - HOST_*: Failures reported by the host node API
//   - INTERNAL_*: Unexpected internal errors
//
// Only two codes are fatal to a whole dump or insert: [ErrCodeImageNotFound]
// and [ErrCodeInvalidFont]. Everything else is absorbed at node or field
// granularity and only reaches the caller through logs and reports.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeImageNotFound, "image not found: %s", hash)
//	if errors.Is(err, errors.ErrCodeImageNotFound) {
//	    // Handle missing image
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeHostRejected, origErr, "set %s", field)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidFont     Code = "INVALID_FONT"
	ErrCodeInvalidGeometry Code = "INVALID_GEOMETRY"
	ErrCodeInvalidBackend  Code = "INVALID_BACKEND"

	// Resource not found errors
	ErrCodeNotFound          Code = "NOT_FOUND"
	ErrCodeImageNotFound     Code = "IMAGE_NOT_FOUND"
	ErrCodeComponentNotFound Code = "COMPONENT_NOT_FOUND"
	ErrCodeStyleNotFound     Code = "STYLE_NOT_FOUND"
	ErrCodeFontNotFound      Code = "FONT_NOT_FOUND"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"

	// Host errors
	ErrCodeHostRejected    Code = "HOST_REJECTED"
	ErrCodeUnsupportedNode Code = "UNSUPPORTED_NODE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsFatal reports whether err aborts a whole dump or insert rather than a
// single node or field.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeImageNotFound, ErrCodeInvalidFont:
		return true
	}
	return false
}
