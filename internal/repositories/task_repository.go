package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"task-api.com/task-api/internal/constants"
	model "task-api.com/task-api/internal/models"
	"task-api.com/task-api/internal/query"
)

var ErrTaskNotFound = errors.New("task not found")

type TaskRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// WithClock replaces the timestamp source.
func (r *TaskRepository) WithClock(now func() time.Time) *TaskRepository {
	r.now = now
	return r
}

func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	now := r.now()
	task.ID = 0
	task.CreatedAt = now
	task.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(task).Error; err != nil {
		return fmt.Errorf("create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	return findByID(r.db.WithContext(ctx), id)
}

// List returns one page of the tasks matching pred, ordered by id, and the
// number of matching tasks ignoring skip and limit.
func (r *TaskRepository) List(ctx context.Context, pred query.Predicate, skip, limit int) ([]model.Task, int64, error) {
	tasks := make([]model.Task, 0)
	var total int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := pred.Apply(tx.Model(&model.Task{})).Count(&total).Error; err != nil {
			return err
		}
		return pred.Apply(tx.Model(&model.Task{})).
			Order("id asc").
			Offset(skip).
			Limit(limit).
			Find(&tasks).Error
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list tasks: %w", err)
	}

	return tasks, total, nil
}

// Replace overwrites every mutable column of the task.
func (r *TaskRepository) Replace(ctx context.Context, id uint, fields model.TaskFields) (*model.Task, error) {
	return r.update(ctx, id, fields.Columns())
}

// Patch writes only the supplied columns. An empty patch still refreshes
// updated_at.
func (r *TaskRepository) Patch(ctx context.Context, id uint, patch model.TaskPatch) (*model.Task, error) {
	return r.update(ctx, id, patch.Columns())
}

func (r *TaskRepository) update(ctx context.Context, id uint, cols map[string]any) (*model.Task, error) {
	var updated *model.Task

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID(tx, id)
		if err != nil {
			return err
		}

		// updated_at never moves backwards, even if the clock does.
		now := r.now()
		if now.Before(current.UpdatedAt) {
			now = current.UpdatedAt
		}
		cols["updated_at"] = now

		if err := tx.Model(&model.Task{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			return fmt.Errorf("update task %d: %w", id, err)
		}

		updated, err = findByID(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.Task{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete task %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

type groupCount struct {
	Value string
	Count int64
}

// Stats reads the total and the status and priority groupings in a single
// transaction so they agree with each other.
func (r *TaskRepository) Stats(ctx context.Context) (*model.TaskStats, error) {
	stats := &model.TaskStats{
		ByStatus:   make(map[constants.TaskStatus]int64),
		ByPriority: make(map[constants.TaskPriority]int64),
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Task{}).Count(&stats.Total).Error; err != nil {
			return err
		}

		byStatus, err := countBy(tx, "status")
		if err != nil {
			return err
		}
		for _, row := range byStatus {
			stats.ByStatus[constants.TaskStatus(row.Value)] = row.Count
		}

		byPriority, err := countBy(tx, "priority")
		if err != nil {
			return err
		}
		for _, row := range byPriority {
			stats.ByPriority[constants.TaskPriority(row.Value)] = row.Count
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("task stats: %w", err)
	}

	return stats, nil
}

func (r *TaskRepository) Ping(ctx context.Context) error {
	return r.db.WithContext(ctx).Exec("SELECT 1").Error
}

func countBy(tx *gorm.DB, column string) ([]groupCount, error) {
	var rows []groupCount
	err := tx.Model(&model.Task{}).
		Select(column + " AS value, COUNT(*) AS count").
		Group(column).
		Scan(&rows).Error
	return rows, err
}

func findByID(db *gorm.DB, id uint) (*model.Task, error) {
	var task model.Task
	if err := db.First(&task, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task %d: %w", id, err)
	}
	return &task, nil
}
