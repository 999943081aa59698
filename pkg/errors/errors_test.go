package errors

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_Constructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"validation", ErrValidation("bad window"), CodeValidationError, http.StatusBadRequest},
		{"not found", ErrNotFound("schedule"), CodeNotFound, http.StatusNotFound},
		{"conflict", ErrConflict("exists"), CodeConflict, http.StatusConflict},
		{"internal", ErrInternal(""), CodeInternalError, http.StatusInternalServerError},
		{"bad request", ErrBadRequest("bad json"), CodeBadRequest, http.StatusBadRequest},
		{"unsupported media", New(CodeUnsupportedMedia, "json only"), CodeUnsupportedMedia, http.StatusUnsupportedMediaType},
		{"unavailable", ErrServiceUnavailable("temporal"), CodeServiceUnavailable, http.StatusServiceUnavailable},
		{"timeout", ErrTimeout("sequencing"), CodeTimeout, http.StatusGatewayTimeout},
		{"unknown code", New("SOMETHING_ELSE", "x"), "SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
			assert.NotEmpty(t, tt.err.Message)
		})
	}
}

func TestAppError_WrapAndDetails(t *testing.T) {
	cause := errors.New("mongo down")
	err := ErrNotFoundWithID("sku", "SKU-1").Wrap(cause)

	assert.Equal(t, "SKU-1", err.Details["id"])
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "mongo down")

	wrapped := fmt.Errorf("handler: %w", err)
	appErr, ok := AsAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, CodeNotFound, appErr.Code)
}

var errLineDown = errors.New("line is down")

func TestMapError(t *testing.T) {
	RegisterSentinel(errLineDown, CodeConflict)
	t.Cleanup(func() { sentinels = sentinels[:len(sentinels)-1] })

	original := ErrValidation("bad")

	tests := []struct {
		name string
		err  error
		code string
	}{
		{"app error kept", fmt.Errorf("wrapped: %w", original), CodeValidationError},
		{"registered sentinel", fmt.Errorf("line-2: %w", errLineDown), CodeConflict},
		{"deadline", fmt.Errorf("sequence: %w", context.DeadlineExceeded), CodeTimeout},
		{"unknown", errors.New("order id is invalid"), CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := MapError(tt.err)
			assert.Equal(t, tt.code, appErr.Code)
		})
	}

	assert.Same(t, original, MapError(original))
	assert.Equal(t, errLineDown.Error(), MapError(errLineDown).Message)
	assert.Nil(t, MapError(nil))
}
