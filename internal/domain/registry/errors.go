package registry

import (
	"errors"
	"fmt"
)

// Kind classifies a registry rejection. Every failed call surfaces
// exactly one kind and leaves the store unchanged.
type Kind string

const (
	KindPaused              Kind = "PAUSED"
	KindUnauthorized        Kind = "UNAUTHORIZED"
	KindLimitExceeded       Kind = "LIMIT_EXCEEDED"
	KindInvalidReference    Kind = "INVALID_REFERENCE"
	KindOriginTokenNotFound Kind = "ORIGIN_TOKEN_NOT_FOUND"
	KindDuplicatePrimary    Kind = "DUPLICATE_PRIMARY"
	KindNotFound            Kind = "NOT_FOUND"
	KindForbidden           Kind = "FORBIDDEN"
)

// Error is a registry rejection with a machine-readable kind.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a registry error of the given kind.
func NewError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// WithCause attaches an underlying cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// KindOf extracts the kind from an error chain, or "" when the error is
// not a registry rejection.
func KindOf(err error) Kind {
	var regErr *Error
	if errors.As(err, &regErr) {
		return regErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given rejection kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
