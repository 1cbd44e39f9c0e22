package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusPerKind(t *testing.T) {
	assert.Equal(t, 401, New(Unauthenticated, "nope").Status)
	assert.Equal(t, 403, New(Forbidden, "nope").Status)
	assert.Equal(t, 404, New(NotFound, "nope").Status)
	assert.Equal(t, 422, New(ValidationFailed, "nope").Status)
	assert.Equal(t, 500, New(Internal, "nope").Status)
}

func TestNewValidation(t *testing.T) {
	err := NewValidation([]Violation{{Message: "Title is invalid."}, {Message: "Content is invalid."}})
	assert.Equal(t, ValidationFailed, err.Kind)
	assert.Equal(t, 422, err.Status)
	assert.Len(t, err.Details, 2)

	ext := err.Extensions()
	assert.Equal(t, 422, ext["status"])
	assert.Equal(t, err.Details, ext["data"])
}

func TestNewConflict(t *testing.T) {
	err := NewConflict("E-Mail address already exists!")
	assert.Equal(t, Conflict, err.Kind)
	assert.Equal(t, 422, err.Status)
	assert.Equal(t, []Violation{{Message: "E-Mail address already exists!"}}, err.Details)
}

func TestExtensionsWithoutDetails(t *testing.T) {
	ext := NewUnauthenticated("Not authenticated!").Extensions()
	assert.Equal(t, 401, ext["status"])
	_, hasData := ext["data"]
	assert.False(t, hasData)
}

func TestFrom(t *testing.T) {
	original := NewNotFound("No post found!")
	assert.Same(t, original, From(fmt.Errorf("resolve post: %w", original)))

	unknown := From(errors.New("driver: bad connection"))
	assert.Equal(t, Internal, unknown.Kind)
	assert.Equal(t, "An error occurred.", unknown.Message)
	assert.Equal(t, 500, unknown.Status)
}
