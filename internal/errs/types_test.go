package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name   string
		err    *HTTPError
		status int
		code   string
	}{
		{"unauthorized default code", NewUnauthorizedError("nope", false, nil), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"unauthorized custom code", NewUnauthorizedError("Invalid user", true, Code(CodeInvalidUser)), http.StatusUnauthorized, CodeInvalidUser},
		{"bad request", NewBadRequestError("bad", false, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found custom code", NewNotFoundError("gone", true, Code(CodeTweetNotFound)), http.StatusNotFound, CodeTweetNotFound},
		{"conflict", NewConflictError("dup", false, nil), http.StatusConflict, "CONFLICT"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
		{"validation", ValidationError([]FieldError{{Field: "username", Error: "is required"}}), http.StatusUnprocessableEntity, CodeValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, tt.err.Status)
			assert.Equal(t, tt.code, tt.err.Code)
			assert.True(t, tt.err.HasCode(tt.code))
		})
	}
}

func TestInternalServerErrorMessageIsGeneric(t *testing.T) {
	err := NewInternalServerError()
	assert.Equal(t, "Internal Server Error", err.Error())
	assert.False(t, err.Override)
}

func TestHTTPErrorIsAndAs(t *testing.T) {
	wrapped := fmt.Errorf("listing tweets: %w", NewNotFoundError("x", false, nil))

	assert.True(t, errors.Is(wrapped, &HTTPError{}))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
}

func TestWithMessageCopies(t *testing.T) {
	base := NewUnauthorizedError("Invalid user", true, Code(CodeInvalidUser))
	changed := base.WithMessage("Unknown user")

	assert.Equal(t, "Invalid user", base.Message)
	assert.Equal(t, "Unknown user", changed.Message)
	assert.Equal(t, base.Code, changed.Code)
	assert.Equal(t, base.Status, changed.Status)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "UNPROCESSABLE_ENTITY", MakeUpperCaseWithUnderscores("Unprocessable Entity"))
}
