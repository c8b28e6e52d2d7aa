package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Err            error
	HTTPStatusCode int

	// Transient marks failures which were caused by concurrent
	// transactions colliding in the store (serialization conflicts).
	// They are the only class of errors which the caller should
	// consider retrying; this core never retries them itself.
	Transient bool
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

// BadRequest wraps malformed input failures, such as a battery level
// or coordinate which is outside of its valid range. These are caught
// by the validation layer before reaching the use cases.
func BadRequest(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusBadRequest}
}

func NotFound(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusNotFound}
}

// Conflict wraps vehicle/ride state machine violations, such as a
// checkout of an in-use vehicle. These are deterministic given the
// current state and are not retried.
func Conflict(err error) *Error {
	return &Error{Err: err, HTTPStatusCode: http.StatusConflict}
}

// Serialization wraps transient failures which are raised by the
// store when concurrent serializable transactions collide. Exactly one
// of the colliding transactions succeeds and the rest observe this
// error; the caller may retry them.
func Serialization(err error) *Error {
	return &Error{
		Err:            err,
		HTTPStatusCode: http.StatusServiceUnavailable,
		Transient:      true,
	}
}

// IsTransient reports whether err (anywhere in its chain) is a
// transient serialization failure which the caller may retry.
func IsTransient(err error) bool {
	var ce *Error
	return errors.As(err, &ce) && ce.Transient
}
