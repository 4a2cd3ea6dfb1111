/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode represents a structured error classification.
type ErrorCode string

const (
	// ErrCodeNotInstalled indicates the audited product is absent on a host.
	// Informational: terminal for that host's record, not for the batch.
	ErrCodeNotInstalled ErrorCode = "NOT_INSTALLED"
	// ErrCodeAmbiguousInstall indicates only one of the expected cooperating
	// sub-packages was found, so the install cannot be fully resolved.
	ErrCodeAmbiguousInstall ErrorCode = "AMBIGUOUS_INSTALL"
	// ErrCodeSubSourceRead indicates a single version source could not be read.
	// Downgrades only that source, never the whole probe.
	ErrCodeSubSourceRead ErrorCode = "SUBSOURCE_READ"
	// ErrCodeMalformedVersion indicates a version string could not be parsed.
	ErrCodeMalformedVersion ErrorCode = "MALFORMED_VERSION"
	// ErrCodeTransport indicates remote dispatch failed (auth, network fault).
	ErrCodeTransport ErrorCode = "TRANSPORT"
	// ErrCodeUnreachable indicates a host failed the reachability pre-check.
	ErrCodeUnreachable ErrorCode = "UNREACHABLE"
	// ErrCodeTimeout indicates an operation exceeded its time limit.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeInvalidRequest indicates malformed or invalid input.
	ErrCodeInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrCodeNotFound indicates a requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an internal system error.
	ErrCodeInternal ErrorCode = "INTERNAL"
)

// StructuredError provides structured error information for better observability.
// It includes an error code for programmatic handling, a human-readable message,
// the underlying cause, and optional context for debugging.
type StructuredError struct {
	Code    ErrorCode
	Message string
	Cause   error
	Context map[string]any
}

// Error implements the error interface.
func (e *StructuredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is and errors.As support.
func (e *StructuredError) Unwrap() error {
	return e.Cause
}

// New creates a new StructuredError with the given code and message.
func New(code ErrorCode, message string) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
	}
}

// NewWithContext creates a new StructuredError with context information.
func NewWithContext(code ErrorCode, message string, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Context: context,
	}
}

// Wrap wraps an existing error with additional context.
func Wrap(code ErrorCode, message string, cause error) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WrapWithContext wraps an error with additional context information.
func WrapWithContext(code ErrorCode, message string, cause error, context map[string]any) *StructuredError {
	return &StructuredError{
		Code:    code,
		Message: message,
		Cause:   cause,
		Context: context,
	}
}

// CodeOf returns the ErrorCode of err if it is (or wraps) a StructuredError,
// or ErrCodeInternal otherwise.
func CodeOf(err error) ErrorCode {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

// IsCode reports whether err is (or wraps) a StructuredError with the given code.
func IsCode(err error, code ErrorCode) bool {
	var se *StructuredError
	if stderrors.As(err, &se) {
		return se.Code == code
	}
	return false
}
