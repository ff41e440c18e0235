package errs

import (
	"net/http"
)

// Machine codes for the failures the API distinguishes. The status text
// derived codes (BAD_REQUEST, NOT_FOUND, ...) are used when no specific
// code applies.
const (
	CodeValidationFailed       = "VALIDATION_FAILED"
	CodeInvalidUser            = "INVALID_USER"
	CodeInvalidTweetID         = "INVALID_TWEET_ID"
	CodeTweetNotFound          = "TWEET_NOT_FOUND"
	CodeTweetOwnershipMismatch = "TWEET_OWNERSHIP_MISMATCH"
)

func statusCode(status int) string {
	return MakeUpperCaseWithUnderscores(http.StatusText(status))
}

// pick returns *code when set, otherwise the status text code.
func pick(code *string, status int) string {
	if code != nil {
		return *code
	}
	return statusCode(status)
}

// NewUnauthorizedError creates a 401 Unauthorized HTTPError.
//
// The API has no authentication. 401 is what clients get when a write
// names a user that does not exist or does not own the tweet.
func NewUnauthorizedError(message string, override bool, code *string) *HTTPError {
	return &HTTPError{
		Code:     pick(code, http.StatusUnauthorized),
		Message:  message,
		Status:   http.StatusUnauthorized,
		Override: override,
	}
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// Used for malformed requests: a body that is not a JSON object, an
// identifier that is not an ObjectID.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:     pick(code, http.StatusBadRequest),
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string, override bool, code *string) *HTTPError {
	return &HTTPError{
		Code:     pick(code, http.StatusNotFound),
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewConflictError creates a 409 Conflict HTTPError.
func NewConflictError(message string, override bool, code *string) *HTTPError {
	return &HTTPError{
		Code:     pick(code, http.StatusConflict),
		Message:  message,
		Status:   http.StatusConflict,
		Override: override,
	}
}

// NewUnprocessableEntityError creates a 422 HTTPError carrying every
// field violation found in the request body.
func NewUnprocessableEntityError(message string, errors []FieldError) *HTTPError {
	return &HTTPError{
		Code:     CodeValidationFailed,
		Message:  message,
		Status:   http.StatusUnprocessableEntity,
		Override: true,
		Errors:   errors,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is always the generic status text. The real cause is
// logged by the global error handler, never sent to the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:     statusCode(http.StatusInternalServerError),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError wraps a list of field errors into a 422 HTTPError.
func ValidationError(fieldErrors []FieldError) *HTTPError {
	return NewUnprocessableEntityError("Validation failed", fieldErrors)
}

// Code returns a pointer to code, for the constructors' optional code argument.
func Code(code string) *string {
	return &code
}
