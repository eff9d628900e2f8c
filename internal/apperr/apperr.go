// Package apperr defines the closed set of error kinds shared by all
// services. The HTTP layer matches on Kind to pick a status code; everything
// below it just wraps and returns.
package apperr

import (
	"errors"
	"fmt"
)

type Kind uint8

const (
	// Unexpected is the catch-all: full detail is logged server-side, the
	// client only ever sees a generic message.
	Unexpected Kind = iota
	// NotFound covers missing orders, users, products and carts.
	NotFound
	// Invalid covers operations rejected by validation: insufficient stock,
	// item absent from cart, bad quantity.
	Invalid
	// Remote wraps downstream transport failures.
	Remote
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "not_found"
	case Invalid:
		return "invalid"
	case Remote:
		return "remote"
	default:
		return "unexpected"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func NotFoundf(format string, args ...any) *Error {
	return &Error{Kind: NotFound, Msg: fmt.Sprintf(format, args...)}
}

func Invalidf(format string, args ...any) *Error {
	return &Error{Kind: Invalid, Msg: fmt.Sprintf(format, args...)}
}

func Remotef(err error, format string, args ...any) *Error {
	return &Error{Kind: Remote, Msg: fmt.Sprintf(format, args...), Err: err}
}

func Unexpectedf(err error, format string, args ...any) *Error {
	return &Error{Kind: Unexpected, Msg: fmt.Sprintf(format, args...), Err: err}
}

// KindOf reports the kind of err, or Unexpected for errors that did not
// originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Unexpected
}
