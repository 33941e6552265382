// Package validation wraps go-playground/validator with human-readable field
// messages shared by the service layer and the HTTP binder.
package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Check validates a struct and returns one message per failing field, or nil.
func Check(v any) []string {
	return messages(validate.Struct(v))
}

// Var validates a single value against tag, reporting failures under name.
func Var(name string, value any, tag string) []string {
	err := validate.Var(value, tag)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, describe(name, fe.Tag(), fe.Param()))
		}
		return msgs
	}
	if err != nil {
		return []string{err.Error()}
	}
	return nil
}

func messages(err error) []string {
	if err == nil {
		return nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return []string{err.Error()}
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fieldError(fe))
	}
	return msgs
}

// fieldError converts a single ValidationError into a human-readable message.
func fieldError(fe validator.FieldError) string {
	return describe(fieldName(fe), fe.Tag(), fe.Param())
}

func fieldName(fe validator.FieldError) string {
	name := fe.Field()
	if name == "" {
		return "value"
	}
	return strings.ToLower(name[:1]) + name[1:]
}

func describe(field, tag, param string) string {
	switch tag {
	case "required":
		return field + " is required"
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, param)
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, param)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, param)
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, tag)
	}
}
