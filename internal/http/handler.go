package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	dto "task-api.com/task-api/internal/data_models"
	"task-api.com/task-api/internal/exceptions"
	"task-api.com/task-api/internal/services"
	"task-api.com/task-api/internal/validators"
)

type Handler struct {
	taskService   *services.TaskService
	healthService *services.HealthService
}

func NewHandler(taskService *services.TaskService, healthService *services.HealthService) *Handler {
	return &Handler{
		taskService:   taskService,
		healthService: healthService,
	}
}

func (h *Handler) CreateTask(c echo.Context) error {
	var req dto.TaskRequestData
	if err := bindBody(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.Request().Context(), &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) GetTask(c echo.Context) error {
	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return err
	}

	task, err := h.taskService.GetTask(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) ListTasks(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	resp, err := h.taskService.ListTasks(c.Request().Context(), dto.ListTasksParams{
		Status:   queryParam(c, "status"),
		Priority: queryParam(c, "priority"),
		Skip:     skip,
		Limit:    limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) SearchTasks(c echo.Context) error {
	skip, limit, err := pageParams(c)
	if err != nil {
		return err
	}

	resp, err := h.taskService.SearchTasks(c.Request().Context(), dto.SearchTasksParams{
		Query: c.QueryParam("q"),
		Skip:  skip,
		Limit: limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetStatistics(c echo.Context) error {
	stats, err := h.taskService.GetStatistics(c.Request().Context())
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, stats)
}

func (h *Handler) ReplaceTask(c echo.Context) error {
	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return err
	}

	var req dto.TaskRequestData
	if err := bindBody(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.ReplaceTask(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) PatchTask(c echo.Context) error {
	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return err
	}

	var req dto.PatchTaskRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.PatchTask(c.Request().Context(), id, &req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return err
	}

	var req dto.StatusUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.UpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) UpdatePriority(c echo.Context) error {
	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return err
	}

	var req dto.PriorityUpdateRequest
	if err := bindBody(c, &req); err != nil {
		return err
	}

	task, err := h.taskService.UpdatePriority(c.Request().Context(), id, req.Priority)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, task)
}

func (h *Handler) DeleteTask(c echo.Context) error {
	id, err := validators.ParseTaskID(c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.taskService.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) Root(c echo.Context) error {
	return c.JSON(http.StatusOK, h.healthService.Info())
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, h.healthService.Liveness())
}

func (h *Handler) DetailedHealth(c echo.Context) error {
	resp, ok := h.healthService.Readiness(c.Request().Context())
	if !ok {
		return c.JSON(http.StatusServiceUnavailable, resp)
	}
	return c.JSON(http.StatusOK, resp)
}

// bindBody decodes the request body only; path and query values never
// reach the DTO.
func bindBody(c echo.Context, dst any) error {
	binder := &echo.DefaultBinder{}
	if err := binder.BindBody(c, dst); err != nil {
		return exceptions.ErrInvalidJSON
	}
	return nil
}

func queryParam(c echo.Context, name string) *string {
	if !c.QueryParams().Has(name) {
		return nil
	}
	v := c.QueryParam(name)
	return &v
}

func pageParams(c echo.Context) (*int, *int, error) {
	skip, err := validators.ParseIntParam("skip", c.QueryParam("skip"))
	if err != nil {
		return nil, nil, err
	}
	limit, err := validators.ParseIntParam("limit", c.QueryParam("limit"))
	if err != nil {
		return nil, nil, err
	}
	return skip, limit, nil
}
