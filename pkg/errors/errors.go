// Package errors provides structured error types for numview.
//
// This package defines error codes and types that enable:
//   - Consistent failure reporting across the CLI, TUI and web surfaces
//   - Machine-readable error codes for programmatic handling
//   - User-facing messages for the error presenter
//
// # Error Codes
//
// Codes follow the failure taxonomy of a calculation request:
//   - INVALID_*: Input problems detected before any request is made
//   - NETWORK_ERROR / SERVER_ERROR: Transport and server failures
//   - MALFORMED_PAYLOAD: A success status with an unusable body
//   - RENDER_ERROR: The chart engine could not draw a result
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedPayload, "response contains no iterations")
//	if errors.Is(err, errors.ErrCodeMalformedPayload) {
//	    // Present as a failure, never visualize
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeNetwork, origErr, "could not reach %s", url)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidMethod Code = "INVALID_METHOD"

	// Transport errors
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeServer  Code = "SERVER_ERROR"

	// Payload errors
	ErrCodeMalformedPayload Code = "MALFORMED_PAYLOAD"

	// Presentation errors
	ErrCodeRender Code = "RENDER_ERROR"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// FallbackMessage is shown when the server rejects a request without saying why.
const FallbackMessage = "Unknown error"

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
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// ServerError describes a non-success response from the calculation server.
type ServerError struct {
	Status  int    // HTTP status code
	Message string // Server-supplied message, or FallbackMessage
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Code returns the error code for this error type.
func (e *ServerError) Code() Code {
	return ErrCodeServer
}

// FromServer converts a non-success response into an *Error whose user
// message is exactly the server-supplied text (or the fallback).
func FromServer(status int, message string) *Error {
	if message == "" {
		message = FallbackMessage
	}
	return &Error{
		Code:    ErrCodeServer,
		Message: message,
		Cause:   &ServerError{Status: status, Message: message},
	}
}
