package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"sort"
	"strings"

	"github.com/deppfellow/tweteroo/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Typical pattern:
//   - Define a request struct with validator tags (`validate:"required"`)
//   - Implement Validate() error that calls Struct(req)
type Validatable interface {
	Validate() error
}

var validate = newValidator()

// newValidator returns a validator that names fields by their json key,
// so errors match what the client actually sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonName)
	return v
}

// Struct validates v against its `validate` tags.
func Struct(v any) error {
	return validate.Struct(v)
}

func jsonName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	switch name {
	case "-":
		return ""
	case "":
		return field.Name
	}
	return name
}

// BindAndValidate decodes the request body into payload and validates it.
//
// Flow:
//  1. Read the body. Empty counts as {}.
//  2. Anything that is not a JSON object is a 400.
//  3. Decode each known field on its own, recording type mismatches and
//     keys the payload does not declare.
//  4. Run payload.Validate() and add its violations for fields that do
//     not already have one.
//  5. Any violation at all -> one 422 carrying the full list.
//
// Payloads without fields skip the body entirely.
func BindAndValidate(c echo.Context, payload Validatable) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		// body limit overflow surfaces here as echo's 413
		var echoErr *echo.HTTPError
		if errors.As(err, &echoErr) {
			return echoErr
		}
		return errs.NewBadRequestError("Could not read request body", false, nil, nil)
	}

	problems, err := decodeFields(body, payload)
	if err != nil {
		return err
	}

	if err := payload.Validate(); err != nil {
		fieldErrors, ok := extractValidationError(err)
		if !ok {
			return fmt.Errorf("validating %T: %w", payload, err)
		}
		for _, fe := range fieldErrors {
			if _, seen := problems[fe.Field]; !seen {
				problems[fe.Field] = fe.Error
			}
		}
	}

	if len(problems) == 0 {
		return nil
	}

	return errs.ValidationError(orderFieldErrors(payload, problems))
}

func decodeFields(body []byte, payload any) (map[string]string, error) {
	problems := make(map[string]string)

	rv := reflect.ValueOf(payload)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Struct {
		return nil, fmt.Errorf("validation: payload must be a pointer to a struct, got %T", payload)
	}
	elem := rv.Elem()
	if elem.NumField() == 0 {
		return problems, nil
	}

	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		trimmed = []byte("{}")
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil || raw == nil {
		return nil, errs.NewBadRequestError("Request body must be a JSON object", true, nil, nil)
	}

	known := make(map[string]bool, elem.NumField())
	for i := 0; i < elem.NumField(); i++ {
		field := elem.Type().Field(i)
		if !field.IsExported() {
			continue
		}
		name := jsonName(field)
		if name == "" {
			continue
		}
		known[name] = true

		value, ok := raw[name]
		if !ok || bytes.Equal(value, []byte("null")) {
			continue
		}
		if err := json.Unmarshal(value, elem.Field(i).Addr().Interface()); err != nil {
			problems[name] = "must be a " + typeName(field.Type)
		}
	}

	for key := range raw {
		if !known[key] {
			problems[key] = "is not allowed"
		}
	}

	return problems, nil
}

func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "list"
	default:
		return "valid value"
	}
}

// orderFieldErrors lists declared fields in struct order, then unknown
// keys alphabetically, so responses are stable.
func orderFieldErrors(payload any, problems map[string]string) []errs.FieldError {
	fieldErrors := make([]errs.FieldError, 0, len(problems))

	t := reflect.TypeOf(payload).Elem()
	for i := 0; i < t.NumField(); i++ {
		name := jsonName(t.Field(i))
		if msg, ok := problems[name]; ok {
			fieldErrors = append(fieldErrors, errs.FieldError{Field: name, Error: msg})
			delete(problems, name)
		}
	}

	rest := make([]string, 0, len(problems))
	for name := range problems {
		rest = append(rest, name)
	}
	sort.Strings(rest)
	for _, name := range rest {
		fieldErrors = append(fieldErrors, errs.FieldError{Field: name, Error: problems[name]})
	}

	return fieldErrors
}

// extractValidationError converts validator errors into field errors.
// ok is false when err is not a validator.ValidationErrors.
func extractValidationError(err error) (fieldErrors []errs.FieldError, ok bool) {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil, false
	}

	for _, err := range validationErrors {
		var msg string

		switch err.Tag() {
		case "required":
			msg = "is required"

		case "min":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must be at least %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must be at least %s", err.Param())
			}

		case "max":
			if err.Type().Kind() == reflect.String {
				msg = fmt.Sprintf("must not exceed %s characters", err.Param())
			} else {
				msg = fmt.Sprintf("must not exceed %s", err.Param())
			}

		case "url", "uri":
			msg = "must be a valid URL"

		default:
			if err.Param() != "" {
				msg = fmt.Sprintf("failed %s:%s", err.Tag(), err.Param())
			} else {
				msg = fmt.Sprintf("failed %s", err.Tag())
			}
		}

		fieldErrors = append(fieldErrors, errs.FieldError{
			Field: err.Field(),
			Error: msg,
		})
	}

	return fieldErrors, true
}

// ObjectIDParam parses the named path parameter as an ObjectID.
//
// A malformed identifier is a 400 with the given code, distinct from an
// identifier that is well formed but matches nothing.
func ObjectIDParam(c echo.Context, name string, code string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		return primitive.NilObjectID, errs.NewBadRequestError(
			fmt.Sprintf("%s must be a 24 character hex identifier", name), true, errs.Code(code), nil)
	}
	return id, nil
}
