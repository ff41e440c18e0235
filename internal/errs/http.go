// Package errs defines the error shapes returned to API clients.
//
// Every failure a handler can produce ends up as an *HTTPError, either
// built directly by the service layer (invalid user, tweet not found,
// ownership mismatch) or translated from a storage error by mongoerr.
//
// - Return consistent error shapes to API clients (JSON).
// - Carry field-level validation errors, all of them, never only the first.
// - Provide errors that play nicely with Go's standard errors package.
package errs

import "strings"

// FieldError represents a single field-level validation failure.
// Example:
//
//	{ "field": "username", "error": "is required" }
type FieldError struct {
	// Field is the JSON key the error relates to (e.g. "username").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// HTTPError is the error type written to API clients.
//
// Fields:
//   - Code: machine-friendly error code (e.g. "TWEET_NOT_FOUND").
//   - Message: human-friendly message, always safe to show to clients.
//   - Status: HTTP status code.
//   - Override: the message is specific and the client may display it as is.
//   - Errors: list of per-field errors (validation).
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	// Errors holds field-level validation errors.
	Errors []FieldError `json:"errors"`
}

// Error returns the client-facing message.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports whether target is also an *HTTPError.
//
// It does NOT compare Code/Status. Use HasCode for that.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// HasCode reports whether the error carries the given machine code.
func (e *HTTPError) HasCode(code string) bool {
	return e != nil && e.Code == code
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
	}
}

// MakeUpperCaseWithUnderscores converts a string into an UPPER_CASE_WITH_UNDERSCORES format.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
