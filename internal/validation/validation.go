package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// New returns a validator that reports fields by their json name so the
// error map lines up with the request payload.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	return v
}

// Errors flattens validator errors into the field -> message map the handlers
// return under "errors". Non-validation errors are reported under "_".
func Errors(err error) map[string]string {
	out := map[string]string{}
	if err == nil {
		return out
	}
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		out["_"] = err.Error()
		return out
	}
	for _, vErr := range vErrs {
		out[vErr.Field()] = message(vErr)
	}
	return out
}

func message(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email address"
	case "min":
		if fe.Kind() == reflect.Slice || fe.Kind() == reflect.String {
			return field + " must have at least " + fe.Param() + " item(s)"
		}
		return field + " must be >= " + fe.Param()
	case "max", "lte":
		return field + " must be <= " + fe.Param()
	case "gte":
		return field + " must be >= " + fe.Param()
	case "oneof":
		return field + " must be one of: " + fe.Param()
	default:
		return field + " is invalid"
	}
}
