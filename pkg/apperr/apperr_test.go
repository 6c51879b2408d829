package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindPredicates(t *testing.T) {
	assert.True(t, IsValidation(Validation("rating must be between 1 and 5")))
	assert.True(t, IsNotFound(NotFound("customer")))
	assert.True(t, IsBackend(Backend("failed to fetch", errors.New("conn refused"))))

	plain := errors.New("plain")
	assert.False(t, IsValidation(plain))
	assert.False(t, IsNotFound(plain))
	assert.False(t, IsBackend(plain))
}

func TestErrorMessages(t *testing.T) {
	assert.EqualError(t, Validation("phone must be a %d-digit number", 10), "phone must be a 10-digit number")
	assert.EqualError(t, NotFound("review"), "review not found")
	assert.EqualError(t, Backend("failed to fetch", errors.New("conn refused")), "failed to fetch: conn refused")
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("conn refused")
	err := Backend("failed to fetch", cause)
	assert.ErrorIs(t, err, cause)

	// Wrapping preserves the kind through the chain
	wrapped := fmt.Errorf("listing customers: %w", Validation("bad status"))
	assert.True(t, IsValidation(wrapped))
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Validation("bad input")))
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound("page")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Backend("db down", nil)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("plain")))
}
