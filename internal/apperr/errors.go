// Package apperr defines request-level errors and the global error handler
// that turns them into response envelopes.
package apperr

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// DefaultMessage is used when an error carries no message.
const DefaultMessage = "Internal Server Error"

// Error is an error with an HTTP status. It records a stack trace at creation.
type Error struct {
	Status  int
	Message string
	cause   error
	stack   error
}

// New creates an Error with the given status and message.
func New(status int, message string) *Error {
	return &Error{
		Status:  status,
		Message: message,
		stack:   errors.New(message),
	}
}

// Newf creates an Error with a formatted message.
func Newf(status int, format string, args ...any) *Error {
	return New(status, fmt.Sprintf(format, args...))
}

// Wrap attaches a status to err. The message defaults to err's message.
// Wrap returns nil when err is nil, so it can wrap a handler's result directly.
func Wrap(err error, status int, message string) error {
	if err == nil {
		return nil
	}
	if message == "" {
		message = err.Error()
	}
	return &Error{
		Status:  status,
		Message: message,
		cause:   err,
		stack:   errors.WithStack(err),
	}
}

// BadRequest returns a 400 error.
func BadRequest(message string) *Error {
	return New(http.StatusBadRequest, message)
}

// Unauthorized returns a 401 error.
func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message)
}

// Forbidden returns a 403 error.
func Forbidden(message string) *Error {
	return New(http.StatusForbidden, message)
}

// NotFound returns a 404 error.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message)
}

// Conflict returns a 409 error.
func Conflict(message string) *Error {
	return New(http.StatusConflict, message)
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap returns the wrapped cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// StatusCode returns the HTTP status carried by the error.
func (e *Error) StatusCode() int {
	return e.Status
}

// StackTrace exposes the stack recorded when the error was created.
func (e *Error) StackTrace() errors.StackTrace {
	var st stackTracer
	if stderrors.As(e.stack, &st) {
		return st.StackTrace()
	}
	return nil
}

type stackTracer interface {
	StackTrace() errors.StackTrace
}

type statusCoder interface {
	StatusCode() int
}

// StatusOf returns the status declared anywhere in err's chain.
// Codes outside 400..599 are ignored and 500 is returned instead.
func StatusOf(err error) int {
	var sc statusCoder
	if stderrors.As(err, &sc) {
		if code := sc.StatusCode(); code >= 400 && code <= 599 {
			return code
		}
	}
	return http.StatusInternalServerError
}

// MessageOf returns err's message, or DefaultMessage when it is empty.
func MessageOf(err error) string {
	if err == nil {
		return DefaultMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultMessage
}

// FromPanic converts a recovered panic value into an error with a stack
// trace rooted at the panic site.
func FromPanic(rvr any) error {
	if err, ok := rvr.(error); ok {
		return errors.WithStack(err)
	}
	return errors.Errorf("panic: %v", rvr)
}
