// Package apperror defines the error kinds returned by domain operations.
// Handlers map a Kind to an HTTP status via pkg/response.
package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure.
type Kind int

const (
	KindUnknown Kind = iota
	KindInput
	KindNotFound
	KindAuthorization
	KindDependency
	KindConfiguration
)

func (k Kind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindNotFound:
		return "not_found"
	case KindAuthorization:
		return "authorization"
	case KindDependency:
		return "dependency"
	case KindConfiguration:
		return "configuration"
	default:
		return "unknown"
	}
}

// Error is a tagged domain error. Message is safe to show to callers; Err is
// the underlying cause and is only logged.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// Input reports a malformed or invalid request.
func Input(msg string) *Error { return &Error{Kind: KindInput, Message: msg} }

// NotFound reports a missing record.
func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

// Authorization reports a rejected shared secret.
func Authorization(msg string) *Error { return &Error{Kind: KindAuthorization, Message: msg} }

// Dependency wraps a store, storage or email failure.
func Dependency(msg string, err error) *Error {
	return &Error{Kind: KindDependency, Message: msg, Err: err}
}

// Configuration reports a missing or invalid setting.
func Configuration(msg string) *Error { return &Error{Kind: KindConfiguration, Message: msg} }

// KindOf returns the Kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the caller-safe message of err, or fallback.
func MessageOf(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
