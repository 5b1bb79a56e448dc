package validator

import (
	"errors"
	"strings"

	val "github.com/go-playground/validator/v10"
)

const messageSeparator = "; "

var messages = map[string]string{
	"required": "{field} is required",
	"empty":    "{field} must not be set",
	"gte":      "{field} must be greater than or equal to {param}",
	"lte":      "{field} must be less than or equal to {param}",
	"gt":       "{field} must be greater than {param}",
	"oneof":    "{field} must be one of {param}",
	"email":    "{field} must be a valid email address",
	"dateonly": "{field} must be a date in YYYY-MM-DD format",
}

// lengthMessages apply to strings, where min and max count characters.
var lengthMessages = map[string]string{
	"min": "{field} must be at least {param} characters",
	"max": "{field} must be at most {param} characters",
}

var boundMessages = map[string]string{
	"min": "{field} must be greater than or equal to {param}",
	"max": "{field} must be less than or equal to {param}",
}

func describe(fieldErr val.FieldError) string {
	template, ok := messages[fieldErr.Tag()]
	if !ok {
		table := boundMessages
		if fieldErr.Kind().String() == "string" {
			table = lengthMessages
		}

		template, ok = table[fieldErr.Tag()]
	}

	if !ok {
		return fieldErr.Error()
	}

	return strings.NewReplacer("{field}", fieldErr.Field(), "{param}", fieldErr.Param()).Replace(template)
}

// message lists every failed field in declaration order.
func message(err error) string {
	var valErrors val.ValidationErrors
	if !errors.As(err, &valErrors) {
		return err.Error()
	}

	parts := make([]string, 0, len(valErrors))
	for _, fieldErr := range valErrors {
		parts = append(parts, describe(fieldErr))
	}

	return strings.Join(parts, messageSeparator)
}
