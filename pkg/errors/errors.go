// Package errors provides structured error types for texrig.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP surface, and the core packages
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Codes mirror the failure semantics of the analysis pipeline: a malformed
// skeleton or atlas document is rejected without aborting the session, a
// missing or under-specified asset is surfaced on the report rather than
// failing the run, and so on.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMalformedInput, "skeleton %q: %v", path, parseErr)
//	if errors.Is(err, errors.ErrCodeMalformedInput) {
//	    // reject this document, keep the rest of the session
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeResampleFailed, origErr, "resample %s", task.Key)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for the analysis pipeline's failure semantics.
const (
	// ErrCodeMalformedInput marks a skeleton document or atlas manifest that
	// failed to parse. The source is rejected; other sources continue.
	ErrCodeMalformedInput Code = "MALFORMED_INPUT"

	// ErrCodeInvalidGraph marks a bone hierarchy that is not a forest (a cycle
	// was detected while walking parent links).
	ErrCodeInvalidGraph Code = "INVALID_GRAPH"

	// ErrCodeAssetMissing marks an attachment path with no matching entry in
	// the image index. Non-fatal; surfaced as missingImages in the report.
	ErrCodeAssetMissing Code = "ASSET_MISSING"

	// ErrCodeCanonicalMissing marks a region/mesh attachment lacking
	// canonical width/height. Non-fatal; sets isCanonicalDataMissing.
	ErrCodeCanonicalMissing Code = "CANONICAL_MISSING"

	// ErrCodeDimensionMismatch marks a stat whose canonical dimensions
	// disagree with the physically decoded image dimensions. Informational.
	ErrCodeDimensionMismatch Code = "DIMENSION_MISMATCH"

	// ErrCodeResampleFailed marks a resampler failure for a single task. The
	// caller falls back to the unmodified source blob and continues.
	ErrCodeResampleFailed Code = "RESAMPLE_FAILED"

	// ErrCodePackOversize marks a packer task whose target exceeds the page's
	// maximum dimension on some axis. The task is skipped and reported.
	ErrCodePackOversize Code = "PACK_OVERSIZE"

	// ErrCodeCancelled marks a long-running job (resample batch, pack,
	// preview decode) that was cancelled via its context. Outputs discarded.
	ErrCodeCancelled Code = "CANCELLED"

	// ErrCodeInvalidInput covers generic validation failures (bad path, bad
	// key, bad page size) raised before any pipeline stage runs.
	ErrCodeInvalidInput Code = "INVALID_INPUT"

	// ErrCodeNotFound covers lookups (workspace documents, archived reports)
	// that found nothing for the given id.
	ErrCodeNotFound Code = "NOT_FOUND"

	// ErrCodeInternal covers unexpected internal errors (cache I/O, archive
	// store I/O) that are not part of the documented failure semantics.
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
