package errors

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code Code
		want int
	}{
		{CodeNotFound, http.StatusNotFound},
		{CodeAlreadyExists, http.StatusConflict},
		{CodeUnauthorized, http.StatusUnauthorized},
		{CodeInvalidCredentials, http.StatusUnauthorized},
		{CodeValidation, http.StatusBadRequest},
		{CodeRateLimited, http.StatusTooManyRequests},
		{CodeInternal, http.StatusInternalServerError},
		{Code("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.code.HTTPStatus())
		})
	}
}

func TestIs_MatchesByCode(t *testing.T) {
	err := NotFound("recipe 42 does not exist")
	assert.True(t, Is(err, ErrNotFound))
	assert.False(t, Is(err, ErrAlreadyExists))
}

func TestIs_ThroughWrapping(t *testing.T) {
	inner := AlreadyExists("email already registered")
	wrapped := fmt.Errorf("register: %w", inner)
	assert.True(t, Is(wrapped, ErrAlreadyExists))
}

func TestWithCause_UnwrapsAndPrints(t *testing.T) {
	cause := fmt.Errorf("disk full")
	err := Internal("store failure").WithCause(cause)

	assert.Equal(t, cause, Unwrap(err))
	assert.Contains(t, err.Error(), "store failure")
	assert.Contains(t, err.Error(), "disk full")
}

func TestWithDetails_PreservesCode(t *testing.T) {
	err := ValidationWithDetails("validation failed", map[string]string{"title": "is required"})
	assert.Equal(t, CodeValidation, err.Code)

	details, ok := err.Details.(map[string]string)
	assert.True(t, ok)
	assert.Equal(t, "is required", details["title"])
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("row not found")
	err := Wrap(cause, CodeNotFound, "recipe lookup failed")

	assert.Equal(t, CodeNotFound, err.Code)
	assert.True(t, Is(err, ErrNotFound))
	assert.Equal(t, cause, Unwrap(err))
}
