// Package errors provides structured error types for the radialtext application.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across CLI and HTTP service
//   - Machine-readable error codes for programmatic handling
//   - Human-readable messages that hosts surface verbatim
//   - Error wrapping with context preservation
//
// # Export Failures
//
// The export pipeline reports exactly three failure kinds, each carrying a
// fixed human-readable message:
//
//   - [ErrCodeDecode]: the serialized scene could not be decoded into an image
//   - [ErrCodeOversize]: the encoded output is empty or implausibly small
//   - [ErrCodeUnsupported]: a required capability (URL construction) is absent
//
// Encoder failures that are not size related propagate as [ErrCodeEncode].
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidInput, "invalid quality: %s", q)
//	if errors.Is(err, errors.ErrCodeOversize) {
//	    // Ask the user to shrink the scene
//	}
//
//	// Show the message to a user without the code prefix
//	fmt.Println(errors.UserMessage(err))
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound Code = "NOT_FOUND"

	// Export pipeline errors
	ErrCodeDecode      Code = "DECODE_FAILED"
	ErrCodeOversize    Code = "OVERSIZE"
	ErrCodeEncode      Code = "ENCODE_FAILED"
	ErrCodeUnsupported Code = "UNSUPPORTED_PLATFORM"

	// Infrastructure errors
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Messages reported by the export pipeline. The spelling of
// MsgOversize matches what users of the tool have always seen.
const (
	MsgDecode      = "An error occurred when creating the image."
	MsgOversize    = "The image may be too large, please try reducing its dimentions."
	MsgUnsupported = "Your browser doesn't support this feature."
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

// Decode returns the error reported when a scene fails to decode.
func Decode(cause error) *Error {
	return &Error{Code: ErrCodeDecode, Message: MsgDecode, Cause: cause}
}

// Oversize returns the error reported when encoding yields no usable output.
func Oversize() *Error {
	return &Error{Code: ErrCodeOversize, Message: MsgOversize}
}

// Unsupported returns the error reported when the runtime lacks a required
// capability. The detail is kept as the cause so the user message stays fixed.
func Unsupported(detail string) *Error {
	e := &Error{Code: ErrCodeUnsupported, Message: MsgUnsupported}
	if detail != "" {
		e.Cause = errors.New(detail)
	}
	return e
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
