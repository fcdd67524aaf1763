package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		err    *Error
		status int
	}{
		{ValidationError("bad input"), http.StatusBadRequest},
		{UnauthorizedError("nope"), http.StatusUnauthorized},
		{NotFoundError("missing"), http.StatusNotFound},
		{TooManyRequestsError("slow down"), http.StatusTooManyRequests},
		{InternalError("broken", nil), http.StatusInternalServerError},
		{ExternalError("upstream", nil), http.StatusBadGateway},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.status, tt.err.HTTPStatus(), "type=%s", tt.err.Type)
	}
}

func TestError_UnwrapSupportsErrorsIs(t *testing.T) {
	cause := errors.New("root cause")
	err := InternalError("wrapper", cause)

	assert.True(t, errors.Is(err, cause))
	assert.Contains(t, err.Error(), "root cause")
}

func TestAsStructuredError_PassThrough(t *testing.T) {
	original := NotFoundError("missing").WithField("id", "42")
	wrapped := fmt.Errorf("handler: %w", original)

	got := AsStructuredError(wrapped)
	require.NotNil(t, got)
	assert.Equal(t, TypeNotFound, got.Type)
	assert.Equal(t, "42", got.Context["id"])
}

func TestAsStructuredError_WrapsPlainErrors(t *testing.T) {
	got := AsStructuredError(errors.New("boom"))
	require.NotNil(t, got)
	assert.Equal(t, TypeInternal, got.Type)
}

func TestAsStructuredError_Nil(t *testing.T) {
	assert.Nil(t, AsStructuredError(nil))
}

func TestToResponse_OmitsMessageCause(t *testing.T) {
	err := InternalError("safe message", errors.New("secret detail"))
	resp := err.ToResponse()

	assert.Equal(t, "safe message", resp.Error)
	assert.NotContains(t, fmt.Sprintf("%v", resp), "secret detail")
}
