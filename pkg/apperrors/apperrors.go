package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so the HTTP layer can pick a status code
// without inspecting message text.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindAuthorization
	KindConflict
	KindState
	KindNotFound
)

// Error is the error type returned by every repository and engine
// operation. Message is safe to surface to the caller verbatim.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validationf marks malformed input the caller can correct.
func Validationf(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

// Authf marks failed authentication (bad credentials, blocked, deleted).
func Authf(format string, args ...interface{}) *Error {
	return newf(KindAuth, format, args...)
}

// Authorizationf marks an authenticated caller lacking the required role.
func Authorizationf(format string, args ...interface{}) *Error {
	return newf(KindAuthorization, format, args...)
}

// Conflictf marks duplicates and policy-blocking state.
func Conflictf(format string, args ...interface{}) *Error {
	return newf(KindConflict, format, args...)
}

// Statef marks an operation invalid for the entity's current state,
// e.g. settling a match twice.
func Statef(format string, args ...interface{}) *Error {
	return newf(KindState, format, args...)
}

// NotFoundf marks a missing entity.
func NotFoundf(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

// Internalf wraps an unexpected failure; the wrapped error is kept for
// logs, the message is what the caller sees.
func Internalf(err error, format string, args ...interface{}) *Error {
	e := newf(KindInternal, format, args...)
	e.Err = err
	return e
}

// KindOf extracts the Kind from any error in the chain, defaulting to
// KindInternal for plain errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindInternal
}

// MessageOf returns the caller-safe message for an error.
func MessageOf(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message
	}
	return "An unexpected error occurred on the server"
}
