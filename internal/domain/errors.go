package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	TooLong         ErrorKind = "TOO_LONG"
	InvalidFormat   ErrorKind = "INVALID_FORMAT"
	UntrustedDomain ErrorKind = "UNTRUSTED_DOMAIN"
	InvalidPath     ErrorKind = "INVALID_PATH"
	NetworkFailure  ErrorKind = "NETWORK_FAILURE"
	NotFound        ErrorKind = "NOT_FOUND"
	UpstreamFailure ErrorKind = "UPSTREAM_FAILURE"
	PersistFailure  ErrorKind = "PERSIST_FAILURE"
)

// Error is the structured failure returned by every pipeline stage.
type Error struct {
	Kind   ErrorKind
	Msg    string
	Status int    // upstream HTTP status, when known
	Body   string // upstream response body, when known
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	if e.Status != 0 {
		msg += fmt.Sprintf(" (status %d: %s)", e.Status, e.Body)
	}
	if e.Err != nil {
		msg += fmt.Sprintf(": %v", e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind, so errors.Is(err, &Error{Kind: NotFound}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func NewError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func WrapError(kind ErrorKind, msg string, err error) *Error {
	e := &Error{Kind: kind, Msg: msg, Err: err}
	var se *StatusError
	if errors.As(err, &se) {
		e.Status, e.Body = se.Status, se.Body
	}
	return e
}

// KindOf returns the kind carried by err, or "" when err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// StatusError is returned by adapters for non-2xx upstream replies.
type StatusError struct {
	Service string
	Status  int
	Body    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: bad status %d: %s", e.Service, e.Status, e.Body)
}
