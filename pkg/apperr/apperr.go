package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindBackend
)

// Error is the typed error returned by the service layer.
// Validation errors are raised before any persistence attempt,
// not-found errors at the point of read, backend errors wrap
// failures from the underlying store.
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

func (e *Error) Unwrap() error {
	return e.Err
}

// Validation returns a validation error with a formatted message
func Validation(format string, args ...interface{}) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// NotFound returns a not-found error for the named resource
func NotFound(resource string) error {
	return &Error{Kind: KindNotFound, Msg: resource + " not found"}
}

// Backend wraps a failure from the persistence or messaging collaborator
func Backend(msg string, err error) error {
	return &Error{Kind: KindBackend, Msg: msg, Err: err}
}

func kindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsValidation(err error) bool { return kindOf(err) == KindValidation }
func IsNotFound(err error) bool   { return kindOf(err) == KindNotFound }
func IsBackend(err error) bool    { return kindOf(err) == KindBackend }

// HTTPStatus maps an error to the HTTP status code handlers should respond with
func HTTPStatus(err error) int {
	switch kindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
