package model

import (
	"time"

	"task-api.com/task-api/internal/constants"
)

type Task struct {
	ID          uint                   `gorm:"primaryKey" json:"id"`
	Title       string                 `gorm:"size:200;not null;index" json:"title"`
	Description *string                `gorm:"type:text" json:"description"`
	Status      constants.TaskStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	Priority    constants.TaskPriority `gorm:"type:varchar(20);not null;index" json:"priority"`
	DueDate     *Date                  `gorm:"index" json:"due_date"`
	CreatedAt   time.Time              `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time              `gorm:"not null" json:"updated_at"`
}

func (Task) TableName() string {
	return "tasks"
}

// TaskFields is the complete set of user-mutable fields, already validated.
type TaskFields struct {
	Title       string
	Description *string
	Status      constants.TaskStatus
	Priority    constants.TaskPriority
	DueDate     *Date
}

func (f TaskFields) NewTask() *Task {
	return &Task{
		Title:       f.Title,
		Description: f.Description,
		Status:      f.Status,
		Priority:    f.Priority,
		DueDate:     f.DueDate,
	}
}

// Columns returns every mutable column, nil values included, so a write
// with it replaces the whole record.
func (f TaskFields) Columns() map[string]any {
	return map[string]any{
		"title":       f.Title,
		"description": nullableString(f.Description),
		"status":      f.Status,
		"priority":    f.Priority,
		"due_date":    nullableDate(f.DueDate),
	}
}

// TaskPatch carries only the fields a caller supplied. Description and
// DueDate need a separate flag because nil is a legal value for them.
type TaskPatch struct {
	Title          *string
	Status         *constants.TaskStatus
	Priority       *constants.TaskPriority
	SetDescription bool
	Description    *string
	SetDueDate     bool
	DueDate        *Date
}

func (p TaskPatch) Empty() bool {
	return len(p.Columns()) == 0
}

func (p TaskPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.SetDescription {
		cols["description"] = nullableString(p.Description)
	}
	if p.Status != nil {
		cols["status"] = *p.Status
	}
	if p.Priority != nil {
		cols["priority"] = *p.Priority
	}
	if p.SetDueDate {
		cols["due_date"] = nullableDate(p.DueDate)
	}
	return cols
}

// TaskStats holds raw grouped counts as read from the store. Groups with no
// rows are absent.
type TaskStats struct {
	Total      int64
	ByStatus   map[constants.TaskStatus]int64
	ByPriority map[constants.TaskPriority]int64
}

func nullableString(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func nullableDate(d *Date) any {
	if d == nil {
		return nil
	}
	return *d
}
