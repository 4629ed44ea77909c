package services

import (
	"context"
	"errors"

	"github.com/labstack/gommon/log"

	"task-api.com/task-api/internal/constants"
	dto "task-api.com/task-api/internal/data_models"
	"task-api.com/task-api/internal/events"
	"task-api.com/task-api/internal/exceptions"
	model "task-api.com/task-api/internal/models"
	"task-api.com/task-api/internal/query"
	repository "task-api.com/task-api/internal/repositories"
	"task-api.com/task-api/internal/validators"
)

type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	List(ctx context.Context, pred query.Predicate, skip, limit int) ([]model.Task, int64, error)
	Replace(ctx context.Context, id uint, fields model.TaskFields) (*model.Task, error)
	Patch(ctx context.Context, id uint, patch model.TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, id uint) error
	Stats(ctx context.Context) (*model.TaskStats, error)
}

type TaskService struct {
	repo      TaskStore
	publisher events.Publisher
	logger    *log.Logger
	paging    validators.Paging
}

func NewTaskService(
	repo TaskStore,
	publisher events.Publisher,
	logger *log.Logger,
	paging validators.Paging,
) *TaskService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &TaskService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		paging:    paging,
	}
}

func (s *TaskService) CreateTask(ctx context.Context, req *dto.TaskRequestData) (*model.Task, error) {
	fields, err := validators.ValidateTaskRequest(req)
	if err != nil {
		return nil, err
	}

	task := fields.NewTask()
	if err := s.repo.Create(ctx, task); err != nil {
		return nil, s.storeError(err, 0)
	}

	s.logger.Infoj(log.JSON{"message": "task created", "task_id": task.ID})
	s.publish(ctx, events.NewEvent(events.TaskCreated, task.ID, task))
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.storeError(err, id)
	}
	return task, nil
}

func (s *TaskService) ListTasks(ctx context.Context, params dto.ListTasksParams) (*dto.TaskListResponse, error) {
	filter, err := validators.ValidateListFilter(params.Status, params.Priority)
	if err != nil {
		return nil, err
	}
	return s.list(ctx, filter, params.Skip, params.Limit)
}

func (s *TaskService) SearchTasks(ctx context.Context, params dto.SearchTasksParams) (*dto.TaskListResponse, error) {
	if err := validators.ValidateSearchQuery(params.Query); err != nil {
		return nil, err
	}
	return s.list(ctx, query.TaskFilter{Search: params.Query}, params.Skip, params.Limit)
}

func (s *TaskService) list(ctx context.Context, filter query.TaskFilter, skip, limit *int) (*dto.TaskListResponse, error) {
	offset, size, err := validators.ValidatePage(skip, limit, s.paging)
	if err != nil {
		return nil, err
	}

	tasks, total, err := s.repo.List(ctx, query.Build(filter), offset, size)
	if err != nil {
		return nil, s.storeError(err, 0)
	}

	return &dto.TaskListResponse{
		Tasks: tasks,
		Total: total,
		Skip:  offset,
		Limit: size,
	}, nil
}

// ReplaceTask is a full update: members missing from req revert to their
// defaults instead of keeping the stored values.
func (s *TaskService) ReplaceTask(ctx context.Context, id uint, req *dto.TaskRequestData) (*model.Task, error) {
	fields, err := validators.ValidateTaskRequest(req)
	if err != nil {
		return nil, err
	}

	task, err := s.repo.Replace(ctx, id, fields)
	if err != nil {
		return nil, s.storeError(err, id)
	}

	s.afterUpdate(ctx, task)
	return task, nil
}

// PatchTask writes only the members present in req.
func (s *TaskService) PatchTask(ctx context.Context, id uint, req *dto.PatchTaskRequest) (*model.Task, error) {
	patch, err := validators.ValidatePatchRequest(req)
	if err != nil {
		return nil, err
	}
	return s.patch(ctx, id, patch)
}

func (s *TaskService) UpdateStatus(ctx context.Context, id uint, status *string) (*model.Task, error) {
	st, err := validators.ValidateStatus(status)
	if err != nil {
		return nil, err
	}
	return s.patch(ctx, id, model.TaskPatch{Status: &st})
}

func (s *TaskService) UpdatePriority(ctx context.Context, id uint, priority *string) (*model.Task, error) {
	p, err := validators.ValidatePriority(priority)
	if err != nil {
		return nil, err
	}
	return s.patch(ctx, id, model.TaskPatch{Priority: &p})
}

func (s *TaskService) patch(ctx context.Context, id uint, patch model.TaskPatch) (*model.Task, error) {
	task, err := s.repo.Patch(ctx, id, patch)
	if err != nil {
		return nil, s.storeError(err, id)
	}

	s.afterUpdate(ctx, task)
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.storeError(err, id)
	}

	s.logger.Infoj(log.JSON{"message": "task deleted", "task_id": id})
	s.publish(ctx, events.NewEvent(events.TaskDeleted, id, nil))
	return nil
}

// GetStatistics reports every status and priority, including empty groups.
func (s *TaskService) GetStatistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return nil, s.storeError(err, 0)
	}

	resp := &dto.StatisticsResponse{
		TotalTasks: stats.Total,
		ByStatus:   make(map[string]int64, len(constants.TaskStatuses)),
		ByPriority: make(map[string]int64, len(constants.TaskPriorities)),
	}
	for _, status := range constants.TaskStatuses {
		resp.ByStatus[string(status)] = stats.ByStatus[status]
	}
	for _, priority := range constants.TaskPriorities {
		resp.ByPriority[string(priority)] = stats.ByPriority[priority]
	}
	return resp, nil
}

func (s *TaskService) afterUpdate(ctx context.Context, task *model.Task) {
	s.logger.Infoj(log.JSON{"message": "task updated", "task_id": task.ID})
	s.publish(ctx, events.NewEvent(events.TaskUpdated, task.ID, task))
}

// publish never fails the request; the mutation is already committed.
func (s *TaskService) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warnj(log.JSON{
			"message": "failed to publish task event",
			"type":    event.Type,
			"task_id": event.TaskID,
			"error":   err.Error(),
		})
	}
}

func (s *TaskService) storeError(err error, id uint) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return exceptions.NewTaskNotFound(id)
	}
	return exceptions.NewStorageError(err)
}
