package query

import (
	"strings"

	"gorm.io/gorm"

	"task-api.com/task-api/internal/constants"
	model "task-api.com/task-api/internal/models"
)

// TaskFilter holds the list and search criteria. Nil or empty members do
// not filter.
type TaskFilter struct {
	Status   *constants.TaskStatus
	Priority *constants.TaskPriority
	Search   string
}

// Predicate is the compiled form of a TaskFilter. All parts are ANDed.
type Predicate struct {
	status   *constants.TaskStatus
	priority *constants.TaskPriority
	search   string
}

func Build(filter TaskFilter) Predicate {
	p := Predicate{search: strings.ToLower(filter.Search)}
	if filter.Status != nil {
		status := *filter.Status
		p.status = &status
	}
	if filter.Priority != nil {
		priority := *filter.Priority
		p.priority = &priority
	}
	return p
}

// All matches every task.
func All() Predicate {
	return Predicate{}
}

func (p Predicate) Apply(db *gorm.DB) *gorm.DB {
	if p.status != nil {
		db = db.Where("status = ?", *p.status)
	}
	if p.priority != nil {
		db = db.Where("priority = ?", *p.priority)
	}
	if p.search != "" {
		pattern := "%" + escapeLike(p.search) + "%"
		db = db.Where(
			"(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')",
			pattern, pattern,
		)
	}
	return db
}

// Matches evaluates the predicate against a task in memory. It agrees with
// Apply for ASCII input; SQLite's LOWER only folds ASCII.
func (p Predicate) Matches(task *model.Task) bool {
	if p.status != nil && task.Status != *p.status {
		return false
	}
	if p.priority != nil && task.Priority != *p.priority {
		return false
	}
	if p.search == "" {
		return true
	}
	if strings.Contains(strings.ToLower(task.Title), p.search) {
		return true
	}
	return task.Description != nil && strings.Contains(strings.ToLower(*task.Description), p.search)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
