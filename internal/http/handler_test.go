package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	dto "task-api.com/task-api/internal/data_models"
	"task-api.com/task-api/internal/events"
	model "task-api.com/task-api/internal/models"
	repository "task-api.com/task-api/internal/repositories"
	"task-api.com/task-api/internal/services"
	"task-api.com/task-api/internal/validators"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func silentLogger() *log.Logger {
	l := log.New("test")
	l.SetOutput(io.Discard)
	return l
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&model.Task{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func newTestServer(t *testing.T, dbPing services.Pinger) *echo.Echo {
	t.Helper()

	l := silentLogger()
	repo := repository.NewTaskRepository(setupTestDB(t))
	if dbPing == nil {
		dbPing = repo
	}

	taskService := services.NewTaskService(repo, events.NopPublisher{}, l, validators.Paging{DefaultLimit: 100, MaxLimit: 1000})
	healthService := services.NewHealthService(dbPing, events.NopPublisher{}, l, "Task Management API", "1.0.0")
	return NewServer(NewHandler(taskService, healthService), l, []string{"*"})
}

func do(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestTaskLifecycle(t *testing.T) {
	e := newTestServer(t, nil)

	rec := do(e, http.MethodPost, "/api/v1/tasks", `{"title":"T","priority":"high","due_date":"2025-06-01"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode[map[string]any](t, rec)
	assert.Equal(t, "T", created["title"])
	assert.Equal(t, "pending", created["status"])
	assert.Equal(t, "high", created["priority"])
	assert.Equal(t, "2025-06-01", created["due_date"])
	assert.Nil(t, created["description"])

	rec = do(e, http.MethodGet, "/api/v1/tasks/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "T", decode[map[string]any](t, rec)["title"])

	rec = do(e, http.MethodPatch, "/api/v1/tasks/1/status", `{"status":"in_progress"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "in_progress", decode[map[string]any](t, rec)["status"])

	rec = do(e, http.MethodPatch, "/api/v1/tasks/1/priority", `{"priority":"low"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "low", decode[map[string]any](t, rec)["priority"])

	rec = do(e, http.MethodDelete, "/api/v1/tasks/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())

	rec = do(e, http.MethodGet, "/api/v1/tasks/1", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[dto.ErrorResponse](t, rec)
	assert.Equal(t, "Task with id 1 not found", body.Detail)
	assert.Equal(t, "task_not_found", body.ErrorCode)

	rec = do(e, http.MethodDelete, "/api/v1/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestReplaceResetsAndPatchPreserves(t *testing.T) {
	e := newTestServer(t, nil)

	rec := do(e, http.MethodPost, "/api/v1/tasks", `{"title":"T","description":"d","status":"completed","priority":"high"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(e, http.MethodPatch, "/api/v1/tasks/1", `{"title":"T2"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	patched := decode[map[string]any](t, rec)
	assert.Equal(t, "T2", patched["title"])
	assert.Equal(t, "d", patched["description"])
	assert.Equal(t, "completed", patched["status"])
	assert.Equal(t, "high", patched["priority"])

	rec = do(e, http.MethodPut, "/api/v1/tasks/1", `{"title":"T3"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	replaced := decode[map[string]any](t, rec)
	assert.Equal(t, "T3", replaced["title"])
	assert.Nil(t, replaced["description"])
	assert.Equal(t, "pending", replaced["status"])
	assert.Equal(t, "medium", replaced["priority"])

	rec = do(e, http.MethodPut, "/api/v1/tasks/99", `{"title":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestValidationErrors(t *testing.T) {
	e := newTestServer(t, nil)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		want   int
	}{
		{"missing title", http.MethodPost, "/api/v1/tasks", `{"description":"x"}`, http.StatusUnprocessableEntity},
		{"long title", http.MethodPost, "/api/v1/tasks", `{"title":"` + strings.Repeat("a", 201) + `"}`, http.StatusUnprocessableEntity},
		{"bad status", http.MethodPost, "/api/v1/tasks", `{"title":"t","status":"done"}`, http.StatusUnprocessableEntity},
		{"bad date", http.MethodPost, "/api/v1/tasks", `{"title":"t","due_date":"2025-02-30"}`, http.StatusUnprocessableEntity},
		{"malformed json", http.MethodPost, "/api/v1/tasks", `{"title":`, http.StatusBadRequest},
		{"bad id", http.MethodGet, "/api/v1/tasks/abc", "", http.StatusUnprocessableEntity},
		{"negative skip", http.MethodGet, "/api/v1/tasks?skip=-1", "", http.StatusUnprocessableEntity},
		{"bad filter", http.MethodGet, "/api/v1/tasks?priority=urgent", "", http.StatusUnprocessableEntity},
		{"search without q", http.MethodGet, "/api/v1/tasks/search", "", http.StatusBadRequest},
		{"unknown route", http.MethodGet, "/api/v2/tasks", "", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(e, tt.method, tt.target, tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
			assert.NotEmpty(t, decode[dto.ErrorResponse](t, rec).Detail)
		})
	}

	rec := do(e, http.MethodPost, "/api/v1/tasks", `{"status":"done"}`)
	body := decode[map[string]any](t, rec)
	assert.Equal(t, "validation_error", body["error_code"])
	assert.Len(t, body["errors"], 2)
}

func TestListSearchAndStatistics(t *testing.T) {
	e := newTestServer(t, nil)

	for _, body := range []string{
		`{"title":"Write documentation","status":"in_progress"}`,
		`{"title":"Review","description":"check the DOCS folder","priority":"high"}`,
		`{"title":"Buy milk"}`,
	} {
		require.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/api/v1/tasks/", body).Code)
	}

	rec := do(e, http.MethodGet, "/api/v1/tasks?status=pending&limit=1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[dto.TaskListResponse](t, rec)
	assert.EqualValues(t, 2, page.Total)
	assert.Len(t, page.Tasks, 1)
	assert.Equal(t, 1, page.Limit)

	rec = do(e, http.MethodGet, "/api/v1/tasks/search?q=doc", "")
	require.Equal(t, http.StatusOK, rec.Code)
	found := decode[dto.TaskListResponse](t, rec)
	require.Len(t, found.Tasks, 2)
	assert.Equal(t, "Write documentation", found.Tasks[0].Title)
	assert.Equal(t, "Review", found.Tasks[1].Title)

	rec = do(e, http.MethodGet, "/api/v1/tasks/statistics", "")
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[dto.StatisticsResponse](t, rec)
	assert.EqualValues(t, 3, stats.TotalTasks)
	assert.Equal(t, map[string]int64{"pending": 2, "in_progress": 1, "completed": 0}, stats.ByStatus)
	assert.Equal(t, map[string]int64{"low": 0, "medium": 2, "high": 1}, stats.ByPriority)
}

func TestHealthEndpoints(t *testing.T) {
	e := newTestServer(t, nil)

	rec := do(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "running", decode[dto.RootResponse](t, rec).Status)

	rec = do(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode[dto.HealthResponse](t, rec).Status)

	rec = do(e, http.MethodGet, "/health/detailed", "")
	require.Equal(t, http.StatusOK, rec.Code)
	detailed := decode[dto.DetailedHealthResponse](t, rec)
	assert.Equal(t, "connected", detailed.Database)
	assert.Equal(t, "disabled", detailed.Events)

	down := newTestServer(t, pingerFunc(func(context.Context) error { return errors.New("gone") }))
	rec = do(down, http.MethodGet, "/health/detailed", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "unhealthy", decode[dto.DetailedHealthResponse](t, rec).Status)
}
