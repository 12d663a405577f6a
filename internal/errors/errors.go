// Package errors defines the error taxonomy shared by the dashboard services.
//
// Errors carry a Kind for classification and a human-readable message that is
// safe to surface to feature views. Two errors match under errors.Is when
// their kinds are equal, so callers branch on the category sentinels below
// rather than on message text.
package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for propagation and presentation purposes.
type Kind string

const (
	KindValidation      Kind = "validation"
	KindAuthentication  Kind = "authentication"
	KindNotFound        Kind = "not_found"
	KindNoActiveSession Kind = "no_active_session"
	KindCorruptStorage  Kind = "storage_corruption"
)

// Category sentinels, matched with errors.Is.
var (
	ErrValidation      = &Error{kind: KindValidation, message: "datos inválidos"}
	ErrAuthentication  = &Error{kind: KindAuthentication, message: "error de autenticación"}
	ErrNotFound        = &Error{kind: KindNotFound, message: "recurso no encontrado"}
	ErrNoActiveSession = &Error{kind: KindNoActiveSession, message: "no hay sesión activa"}
	ErrCorruptStorage  = &Error{kind: KindCorruptStorage, message: "almacenamiento corrupto"}
)

// Error is a categorized error with a caller-facing message.
type Error struct {
	kind    Kind
	message string
	cause   error
}

func (e *Error) Error() string { return e.message }

func (e *Error) Unwrap() error { return e.cause }

// Is matches any *Error of the same Kind, regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.kind == e.kind
}

// Kind returns the error's classification.
func (e *Error) Kind() Kind { return e.kind }

func newError(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

// Validation builds a KindValidation error with the given message.
func Validation(message string) *Error { return newError(KindValidation, message) }

// Authentication builds a KindAuthentication error with the given message.
func Authentication(message string) *Error { return newError(KindAuthentication, message) }

// NotFound builds a KindNotFound error with the given message.
func NotFound(message string) *Error { return newError(KindNotFound, message) }

// NoActiveSession builds a KindNoActiveSession error with the given message.
func NoActiveSession(message string) *Error { return newError(KindNoActiveSession, message) }

// CorruptStorage builds a KindCorruptStorage error. It stays internal to the
// session restore path: callers always observe "no session" instead.
func CorruptStorage(message string) *Error { return newError(KindCorruptStorage, message) }

// WithCause attaches an underlying error for logging and unwrap chains.
func (e *Error) WithCause(cause error) *Error {
	return &Error{kind: e.kind, message: e.message, cause: cause}
}

// KindOf returns the Kind of err, or the empty Kind when err does not carry one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.kind
	}
	return ""
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
