package dto

import (
	"time"

	model "task-api.com/task-api/internal/models"
)

// TaskRequestData is the body of POST and PUT. Absent members take their
// defaults.
type TaskRequestData struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Priority    *string `json:"priority"`
	DueDate     *string `json:"due_date"`
}

type PatchTaskRequest struct {
	Title       Optional[string] `json:"title"`
	Description Optional[string] `json:"description"`
	Status      Optional[string] `json:"status"`
	Priority    Optional[string] `json:"priority"`
	DueDate     Optional[string] `json:"due_date"`
}

type StatusUpdateRequest struct {
	Status *string `json:"status"`
}

type PriorityUpdateRequest struct {
	Priority *string `json:"priority"`
}

// ListTasksParams are raw query parameters; nil means not supplied.
type ListTasksParams struct {
	Status   *string
	Priority *string
	Skip     *int
	Limit    *int
}

type SearchTasksParams struct {
	Query string
	Skip  *int
	Limit *int
}

type TaskListResponse struct {
	Tasks []model.Task `json:"tasks"`
	Total int64        `json:"total"`
	Skip  int          `json:"skip"`
	Limit int          `json:"limit"`
}

type StatisticsResponse struct {
	TotalTasks int64            `json:"total_tasks"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByPriority map[string]int64 `json:"by_priority"`
}

type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type DetailedHealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Database  string    `json:"database"`
	Events    string    `json:"events"`
	Version   string    `json:"version"`
}

type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Status  string `json:"status"`
	Health  string `json:"health"`
}

type ErrorResponse struct {
	Detail    string `json:"detail"`
	ErrorCode string `json:"error_code,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}
