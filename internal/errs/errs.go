// Package errs provides the coded error type shared by the mission engine.
package errs

import "errors"

// Code is a machine-readable error code.
type Code string

const (
	CodeUnknown Code = "UNKNOWN"

	// Validation
	CodeMissingRequiredField Code = "MISSING_REQUIRED_FIELD"
	CodeUnknownMission       Code = "UNKNOWN_MISSION"

	// Orchestration
	CodeLockedMission    Code = "LOCKED_MISSION"
	CodeStaleSignal      Code = "STALE_SIGNAL"
	CodeNameRequired     Code = "NAME_REQUIRED"
	CodeNameAlreadySet   Code = "NAME_ALREADY_SET"
	CodeInvalidChallenge Code = "INVALID_CHALLENGE"

	// History storage
	CodeStorageUnavailable Code = "STORAGE_UNAVAILABLE"
	CodeStorageCorrupt     Code = "STORAGE_CORRUPT"
)

// Error is the domain error type with structured metadata.
type Error struct {
	Code     Code              // Machine-readable error code
	Message  string            // Human-readable message
	Metadata map[string]string // Additional context for display
	Cause    error             // Wrapped underlying error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a simple domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithMetadata creates a domain error carrying display metadata.
func WithMetadata(code Code, message string, metadata map[string]string) *Error {
	return &Error{Code: code, Message: message, Metadata: metadata}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf returns the code of the first *Error in err's chain, or CodeUnknown.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeUnknown
}

// IsCode reports whether err carries code anywhere in its chain.
func IsCode(err error, code Code) bool {
	return err != nil && errors.Is(err, &Error{Code: code})
}
