package handler

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldErrors flattens a binding error into per-field messages so invalid
// forms re-render with the offending fields called out.
func FieldErrors(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_form": err.Error()}
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		name := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			fields[name] = "this field is required"
		case "min":
			fields[name] = "must be at least " + fe.Param() + " characters"
		case "max":
			fields[name] = "must be at most " + fe.Param() + " characters"
		case "email":
			fields[name] = "must be a valid email address"
		default:
			fields[name] = "is invalid"
		}
	}
	return fields
}

// ValidationResponse is the 400 body for form failures.
func ValidationResponse(err error) *Response {
	return &Response{
		Status:  "error",
		Message: "validation failed",
		Data:    FieldErrors(err),
	}
}
