// Package apperr defines the error taxonomy shared by services and handlers.
// Handlers translate a Kind into an HTTP status; services only decide which
// kind of failure happened.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the request boundary.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindUnauthorized
	KindNotFound
	KindAuthProvider
	KindInvalidCredentials
	KindStore
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindNotFound:
		return "not_found"
	case KindAuthProvider:
		return "auth_provider"
	case KindInvalidCredentials:
		return "invalid_credentials"
	case KindStore:
		return "store"
	default:
		return "unknown"
	}
}

// Error carries a user-facing message and an optional cause.
type Error struct {
	Kind    Kind
	Message string
	// Fields lists per-field violations for validation errors.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error with the same Kind, so callers can write
// errors.Is(err, apperr.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Fields == nil && t.Kind == e.Kind
}

// Sentinels for errors.Is comparisons.
var (
	ErrValidation         = &Error{Kind: KindValidation}
	ErrUnauthorized       = &Error{Kind: KindUnauthorized}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrAuthProvider       = &Error{Kind: KindAuthProvider}
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials}
	ErrStore              = &Error{Kind: KindStore}
)

func Validation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }

// Invalid is a validation error carrying the offending fields.
func Invalid(msg string, fields map[string]string) error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func Unauthorized(msg string) error { return &Error{Kind: KindUnauthorized, Message: msg} }

func NotFound(msg string) error { return &Error{Kind: KindNotFound, Message: msg} }

// AuthProvider passes the identity provider's message through verbatim.
func AuthProvider(err error) error {
	return &Error{Kind: KindAuthProvider, Message: err.Error(), Err: err}
}

func InvalidCredentials(err error) error {
	return &Error{Kind: KindInvalidCredentials, Message: err.Error(), Err: err}
}

// Store wraps a key-value failure. op names the operation for logs.
func Store(op string, err error) error {
	return &Error{Kind: KindStore, Message: fmt.Sprintf("%s: %v", op, err), Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
