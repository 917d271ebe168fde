package portage

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path"
	"runtime"
)

var (
	ErrBadConfig          = errors.New("bad config")
	ErrExists             = errors.New("already exists")
	ErrInvalidDestination = errors.New("invalid destination")
	ErrMissingData        = errors.New("missing data")
	ErrNotExist           = errors.New("does not exist")
	ErrNotValid           = errors.New("invalid")
	ErrNoUser             = errors.New("no user")
	ErrRouteNotFound      = errors.New("route not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrUnexpected         = errors.New("unexpected")
)

// An Error couples a message with the HTTP status code a response
// translating it ought to carry.
//
// An Error remembers where it was constructed so error reporting can
// point at the call site instead of the dispatch boundary.
type Error struct {
	code   int
	msg    string
	cause  error
	origin string
}

// NewError constructs an *Error with the given status code and message.
func NewError(code int, msg string) *Error {
	return &Error{code: code, msg: msg, origin: caller()}
}

// WrapError constructs an *Error enclosing cause,
// so errors.Is and errors.As reach through it.
func WrapError(code int, msg string, cause error) *Error {
	return &Error{code: code, msg: msg, cause: cause, origin: caller()}
}

func (e *Error) Error() string {
	if e.cause != nil {
		return e.msg + ": " + e.cause.Error()
	}

	return e.msg
}

// Origin returns the file:line the *Error was constructed at.
func (e *Error) Origin() string { return e.origin }

// StatusCode returns the HTTP status code associated with the *Error.
func (e *Error) StatusCode() int { return e.code }

func (e *Error) Unwrap() error { return e.cause }

// HTTPStatus maps err to the status code an HTTP response
// translating it ought to carry.
//
// Errors constructed by NewError or WrapError - or any error exposing
// StatusCode() int - supply their own code.
// Sentinel errors map to their conventional codes.
// Everything else is a 500.
func HTTPStatus(err error) int {
	var coded interface{ StatusCode() int }
	if errors.As(err, &coded) {
		return coded.StatusCode()
	}

	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrRouteNotFound), errors.Is(err, ErrNotExist):
		return http.StatusNotFound
	case errors.Is(err, ErrExists):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrNoUser):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotValid), errors.Is(err, ErrMissingData):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// caller formats the construction site of an *Error,
// printing the file and the directory it is in.
func caller() string {
	_, file, line, ok := runtime.Caller(2)
	if !ok {
		return ""
	}

	fullPath, file := path.Split(file)
	return fmt.Sprintf("%s%c%s:%d", path.Base(fullPath), os.PathSeparator, file, line)
}
