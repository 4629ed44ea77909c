package exceptions

import (
	"fmt"
	"net/http"
)

const CodeTaskNotFound = "task_not_found"

func NewTaskNotFound(id uint) *Exception {
	return &Exception{
		Message:    fmt.Sprintf("Task with id %d not found", id),
		StatusCode: http.StatusNotFound,
		Code:       CodeTaskNotFound,
	}
}

func IsTaskNotFound(err error) bool {
	return HasCode(err, CodeTaskNotFound)
}
