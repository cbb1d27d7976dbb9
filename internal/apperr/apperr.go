// Package apperr defines the user-facing error type shared across brainloop
package apperr

import (
	"errors"
	"fmt"
)

// Error is a message template that can be formatted with context values and
// optionally wrap an underlying cause. Two errors derived from the same
// template match with errors.Is.
type Error struct {
	Cause   error
	base    *Error
	Message string
	Context []any
}

func (e *Error) Error() string {
	msg := e.Message

	if len(e.Context) > 0 {
		msg = fmt.Sprintf(msg, e.Context...)
	}

	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}

	return msg
}

// Fmt returns a copy of the error with its message formatted using args.
func (e *Error) Fmt(args ...any) *Error {
	return &Error{
		base:    e.root(),
		Message: e.Message,
		Context: args,
		Cause:   e.Cause,
	}
}

// Wrap returns a copy of the error that wraps err.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		base:    e.root(),
		Message: e.Message,
		Context: e.Context,
		Cause:   err,
	}
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is the template this error was derived from.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}

	return e.root() == t.root()
}

func (e *Error) root() *Error {
	if e.base != nil {
		return e.base
	}

	return e
}
