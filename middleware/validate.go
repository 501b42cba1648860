package middleware

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance used by request validators
var Validate = validator.New()

// ValidationErrors flattens validator.v10 errors into a field->message map
// for the standard validation error envelope
func ValidationErrors(err error) map[string]string {
	errors := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errors["body"] = "Invalid request body!"
		return errors
	}

	for _, fieldError := range validationErrors {
		field := strings.ToLower(fieldError.Field())
		switch fieldError.Tag() {
		case "required":
			errors[field] = "This field is required!"
		case "oneof":
			errors[field] = "Must be one of: " + fieldError.Param()
		case "gt":
			errors[field] = "Must be greater than " + fieldError.Param()
		case "min":
			errors[field] = "Must be at least " + fieldError.Param()
		default:
			errors[field] = "Invalid value!"
		}
	}
	return errors
}
