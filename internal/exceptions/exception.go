package exceptions

import (
	"errors"
	"net/http"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Exception is an error that knows how it is presented to API callers.
// Message is safe to expose; cause is kept for logs only.
type Exception struct {
	Message    string
	StatusCode int
	Code       string
	Fields     []FieldError
	cause      error
}

func (e *Exception) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e *Exception) Unwrap() error {
	return e.cause
}

func As(err error) (*Exception, bool) {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func StatusCode(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func HasCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
