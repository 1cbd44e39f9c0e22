// Package apperr defines the closed set of error kinds the resolver layer
// raises and the API boundary translates into the JSON error envelope.
package apperr

import (
	"errors"
	"net/http"
)

type Kind int

const (
	Internal Kind = iota
	ValidationFailed
	Unauthenticated
	Forbidden
	NotFound
	Conflict
)

// Violation is one accumulated validation failure.
type Violation struct {
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Status  int
	Details []Violation
}

func (e *Error) Error() string {
	return e.Message
}

// Extensions satisfies the GraphQL engine's extended-error contract so the
// status code and the violation list survive formatting.
func (e *Error) Extensions() map[string]interface{} {
	ext := map[string]interface{}{"status": e.Status}
	if len(e.Details) > 0 {
		ext["data"] = e.Details
	}
	return ext
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, Status: statusOf(kind)}
}

// NewValidation batches all violations of one input into a single 422 error.
func NewValidation(details []Violation) *Error {
	return &Error{
		Kind:    ValidationFailed,
		Message: "Invalid input.",
		Status:  http.StatusUnprocessableEntity,
		Details: details,
	}
}

func NewConflict(message string) *Error {
	return &Error{
		Kind:    Conflict,
		Message: message,
		Status:  http.StatusUnprocessableEntity,
		Details: []Violation{{Message: message}},
	}
}

func NewUnauthenticated(message string) *Error {
	return New(Unauthenticated, message)
}

func NewForbidden(message string) *Error {
	return New(Forbidden, message)
}

func NewNotFound(message string) *Error {
	return New(NotFound, message)
}

// From extracts an *Error from an error chain; unknown errors map to a bare
// Internal error so callers never leak driver details to the client.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return New(Internal, "An error occurred.")
}

func statusOf(kind Kind) int {
	switch kind {
	case ValidationFailed, Conflict:
		return http.StatusUnprocessableEntity
	case Unauthenticated:
		return http.StatusUnauthorized
	case Forbidden:
		return http.StatusForbidden
	case NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
