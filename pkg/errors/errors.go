// Package errors provides structured error types for profilesvg.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI and library packages
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes group failures by the taxonomy the renderer and wrapper degrade on:
//   - MALFORMED_RECORD: stored profile text failed strict and tolerant parsing
//   - TARGET_NOT_FOUND: no reachable document holds the requested element
//   - NOT_READY / ACCESS_DENIED: an embedded document cannot be touched yet
//   - EMPTY_TEXT / NO_TEXT_ELEMENT: wrap preconditions
//
// # Usage
//
//	err := errors.New(errors.ErrCodeTargetNotFound, "no element %q", id)
//	if errors.Is(err, errors.ErrCodeTargetNotFound) {
//	    // retry after the embedded document loads
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeStore, origErr, "read %s", key)
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
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeMalformedRecord Code = "MALFORMED_RECORD"

	// Lookup errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeTargetNotFound Code = "TARGET_NOT_FOUND"

	// Embedded document errors
	ErrCodeNotReady     Code = "NOT_READY"
	ErrCodeAccessDenied Code = "ACCESS_DENIED"
	ErrCodeTimeout      Code = "TIMEOUT"

	// Wrap errors
	ErrCodeEmptyText     Code = "EMPTY_TEXT"
	ErrCodeNoTextElement Code = "NO_TEXT_ELEMENT"

	// Backend errors
	ErrCodeStore Code = "STORE"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Cause }

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

// Is reports whether any *Error in err's chain carries code. A STORE error
// wrapping a NOT_FOUND error matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err without code prefixes: the outermost message,
// followed by the cause when the cause is not itself an *Error.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	var inner *Error
	if e.Cause != nil && !errors.As(e.Cause, &inner) {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}
