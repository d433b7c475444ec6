// Package apierr carries HTTP-facing errors through handlers.
//
// Handlers build an *Error with the Code that matches the failure and a
// message safe to show the client. Anything that is not an *Error is
// treated as Internal: the client sees "Server error" and the real
// error is logged.
package apierr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/tasktracker/internal/app/system/jsonio"
	"go.uber.org/zap"
)

type Code int

const (
	Internal Code = iota
	InvalidArgument
	Unauthenticated
	PermissionDenied
	NotFound
	Conflict
	ResourceExhausted
)

func (c Code) String() string {
	switch c {
	case InvalidArgument:
		return "invalid_argument"
	case Unauthenticated:
		return "unauthenticated"
	case PermissionDenied:
		return "permission_denied"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case ResourceExhausted:
		return "resource_exhausted"
	default:
		return "internal"
	}
}

// HTTPCode maps c to its response status.
func (c Code) HTTPCode() int {
	switch c {
	case InvalidArgument:
		return http.StatusBadRequest
	case Unauthenticated:
		return http.StatusUnauthorized
	case PermissionDenied:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case ResourceExhausted:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// Error is returned to the client as {"message": Msg} with Code's status.
// Err is for logs only.
type Error struct {
	Code Code
	Msg  string
	Err  error
}

func New(code Code, msg string) *Error {
	return &Error{Code: code, Msg: msg}
}

func Wrap(code Code, msg string, err error) *Error {
	return &Error{Code: code, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("[%s] %s", e.Code, e.Msg)
	}
	return fmt.Sprintf("[%s] %s: %v", e.Code, e.Msg, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// ServerErrorMessage is what clients see for any unexpected failure.
const ServerErrorMessage = "Server error"

type body struct {
	Message string `json:"message"`
}

// Write sends err to the client. A nil logger is allowed.
func Write(w http.ResponseWriter, r *http.Request, log *zap.Logger, err error) {
	var ae *Error
	if !errors.As(err, &ae) {
		ae = Wrap(Internal, ServerErrorMessage, err)
	}
	if ae.Code == Internal {
		if log != nil {
			log.Error("request failed",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(ae.Err))
		}
		jsonio.Write(w, http.StatusInternalServerError, body{Message: ServerErrorMessage})
		return
	}
	jsonio.Write(w, ae.Code.HTTPCode(), body{Message: ae.Msg})
}
