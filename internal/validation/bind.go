package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/blakeppc/fieldroutes-missive-integration/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Validatable is implemented by request payload types that know how to validate themselves.
//
// Validate may return an *errs.HTTPError with a route-specific category and
// message, or validator.ValidationErrors from Struct.
type Validatable interface {
	Validate(rules *Rules) error
}

// Defaulter is implemented by payloads whose fields have non-zero defaults.
// SetDefaults runs before binding, so only values present in the request
// override them.
type Defaulter interface {
	SetDefaults()
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report JSON names ("apiKey") instead of Go field names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	return v
}

// Struct validates tagged fields of s.
func Struct(s any) error {
	return validate.Struct(s)
}

// BindAndValidate binds request data into payload and validates it.
//
// Flow:
//  1. payload.SetDefaults() when implemented.
//  2. c.Bind(payload) populates path params, query params (GET) and JSON body.
//  3. payload.Validate(rules) applies validation rules.
//
// Returns a 400 *errs.HTTPError when either step fails.
func BindAndValidate(c echo.Context, payload Validatable, rules *Rules) error {
	if d, ok := payload.(Defaulter); ok {
		d.SetDefaults()
	}

	if err := c.Bind(payload); err != nil {
		return errs.NewBadRequestError("Bad request", bindErrorMessage(err))
	}

	if err := payload.Validate(rules); err != nil {
		var httpErr *errs.HTTPError
		if errors.As(err, &httpErr) {
			return httpErr
		}
		return errs.NewBadRequestError("Validation failed", extractValidationError(err))
	}

	return nil
}

func bindErrorMessage(err error) string {
	var echoErr *echo.HTTPError
	if errors.As(err, &echoErr) {
		if msg, ok := echoErr.Message.(string); ok && msg != "" {
			return msg
		}
	}
	return "Invalid request parameters"
}

func extractValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return err.Error()
	}

	messages := make([]string, 0, len(validationErrors))
	for _, fe := range validationErrors {
		messages = append(messages, fe.Field()+" "+fieldMessage(fe))
	}

	return strings.Join(messages, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must not exceed %s characters", fe.Param())
		}
		return fmt.Sprintf("must not exceed %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("must be one of: %s", fe.Param())
	case "email":
		return "must be a valid email address"
	case "url", "http_url":
		return "must be a valid URL"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed %s:%s", fe.Tag(), fe.Param())
		}
		return fmt.Sprintf("failed %s", fe.Tag())
	}
}
