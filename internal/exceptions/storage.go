package exceptions

import "net/http"

const CodeStorage = "storage_error"

func NewStorageError(cause error) *Exception {
	return &Exception{
		Message:    "Internal server error",
		StatusCode: http.StatusInternalServerError,
		Code:       CodeStorage,
		cause:      cause,
	}
}
