// Package apperrors classifies failures so the HTTP layer can map them to
// a status code without inspecting error strings.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind is the category of an application error.
type Kind int

const (
	// Internal is any failure that has not been classified.
	Internal Kind = iota
	Validation
	InvalidUID
	InvalidToken
	Unauthorized
	Forbidden
	NotFound
	Conflict
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case InvalidUID:
		return "invalid_uid"
	case InvalidToken:
		return "invalid_token"
	case Unauthorized:
		return "unauthorized"
	case Forbidden:
		return "forbidden"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	default:
		return "internal"
	}
}

// NonFieldErrors is the field key used for errors not bound to one input field.
const NonFieldErrors = "non_field_errors"

// Error is a classified application error.
type Error struct {
	Kind    Kind
	Message string
	// Fields holds per-field messages for Validation, InvalidUID and InvalidToken.
	Fields map[string][]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind, so that
// errors.Is(err, apperrors.ErrNotFound) style checks work.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind && t.Message == "" && t.Fields == nil
}

// Sentinels usable with errors.Is.
var (
	ErrValidation   = &Error{Kind: Validation}
	ErrInvalidUID   = &Error{Kind: InvalidUID}
	ErrInvalidToken = &Error{Kind: InvalidToken}
	ErrUnauthorized = &Error{Kind: Unauthorized}
	ErrForbidden    = &Error{Kind: Forbidden}
	ErrNotFound     = &Error{Kind: NotFound}
	ErrConflict     = &Error{Kind: Conflict}
)

// KindOf returns the Kind of err, or Internal when err is not classified.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// NewValidation builds a Validation error with messages keyed by field.
func NewValidation(fields map[string][]string) *Error {
	return &Error{Kind: Validation, Message: "Validation failed", Fields: fields}
}

// FieldError builds a Validation error for a single field.
func FieldError(field string, messages ...string) *Error {
	return NewValidation(map[string][]string{field: messages})
}

// NewInvalidUID reports an undecodable uid or a uid with no matching user.
func NewInvalidUID() *Error {
	return &Error{
		Kind:    InvalidUID,
		Message: "Validation failed",
		Fields:  map[string][]string{"uid": {"Invalid user id or user doesn't exist."}},
	}
}

// NewInvalidToken reports a reset token that does not verify for the user.
func NewInvalidToken() *Error {
	return &Error{
		Kind:    InvalidToken,
		Message: "Validation failed",
		Fields:  map[string][]string{"token": {"Invalid token for given user."}},
	}
}

// NewUnauthorized reports a missing or unusable identity.
func NewUnauthorized(message string) *Error {
	if message == "" {
		message = "Authentication credentials were not provided."
	}
	return &Error{Kind: Unauthorized, Message: message}
}

// NewForbidden reports an authenticated actor lacking permission.
func NewForbidden() *Error {
	return &Error{Kind: Forbidden, Message: "You do not have permission to perform this action."}
}

// NewNotFound reports a missing resource.
func NewNotFound(resource string, id any) *Error {
	return &Error{Kind: NotFound, Message: fmt.Sprintf("%s with ID %v not found", resource, id)}
}

// NewConflict reports an operation blocked by dependent state.
func NewConflict(message string) *Error {
	return &Error{Kind: Conflict, Message: message}
}

// Wrap attaches a cause to a classified error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}
