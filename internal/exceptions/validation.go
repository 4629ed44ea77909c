package exceptions

import "net/http"

const CodeValidation = "validation_error"

func NewValidationError(fields ...FieldError) *Exception {
	return &Exception{
		Message:    "Validation error",
		StatusCode: http.StatusUnprocessableEntity,
		Code:       CodeValidation,
		Fields:     fields,
	}
}

func IsValidation(err error) bool {
	return HasCode(err, CodeValidation)
}
