package events

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	model "task-api.com/task-api/internal/models"
)

type Type string

const (
	TaskCreated Type = "task.created"
	TaskUpdated Type = "task.updated"
	TaskDeleted Type = "task.deleted"
)

// Event describes one committed task mutation. Task is nil for deletes.
type Event struct {
	ID         string      `json:"id"`
	Type       Type        `json:"type"`
	TaskID     uint        `json:"task_id"`
	Task       *model.Task `json:"task,omitempty"`
	OccurredAt time.Time   `json:"occurred_at"`
}

func NewEvent(typ Type, taskID uint, task *model.Task) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		TaskID:     taskID,
		Task:       task,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error

	Ping(ctx context.Context) error
}

var ErrDisabled = errors.New("event publishing disabled")

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error {
	return nil
}

func (NopPublisher) Ping(context.Context) error {
	return ErrDisabled
}
