// Package apperrors defines the error kinds every service operation reports
// and their HTTP status mapping. Handlers respond with
// c.JSON(apperrors.Status(err), ...) instead of re-deciding codes inline.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	// KindNotFound: the referenced entity does not exist or is soft-deleted.
	KindNotFound Kind = iota
	// KindValidation: malformed or disallowed input.
	KindValidation
	// KindConflict: the action violates a uniqueness or state invariant.
	KindConflict
	// KindForbidden: the caller lacks the role or ownership required.
	KindForbidden
	// KindInvalidState: a workflow transition attempted from a terminal state.
	KindInvalidState
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func Is(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}

// Status maps an error to the status code the HTTP layer should answer with.
// Unknown errors are reported as 500 without rewriting the error chain.
func Status(err error) int {
	var e *Error
	if !errors.As(err, &e) {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation, KindConflict, KindInvalidState:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
