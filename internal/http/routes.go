package http

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	middleware "task-api.com/task-api/internal/http/middlewares"
)

// NewServer builds the echo instance with the middleware stack and every
// route registered.
func NewServer(h *Handler, logger *log.Logger, corsOrigins []string) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Logger = logger
	e.HTTPErrorHandler = ErrorHandler(logger)

	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.RequestLogger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: corsOrigins,
	}))

	Register(e, h)
	return e
}

func Register(e *echo.Echo, h *Handler) {
	e.GET("/", h.Root)
	e.GET("/health", h.Health)
	e.GET("/health/detailed", h.DetailedHealth)

	tasks := e.Group("/api/v1/tasks")
	tasks.POST("", h.CreateTask)
	tasks.GET("", h.ListTasks)
	tasks.GET("/search", h.SearchTasks)
	tasks.GET("/statistics", h.GetStatistics)
	tasks.GET("/:id", h.GetTask)
	tasks.PUT("/:id", h.ReplaceTask)
	tasks.PATCH("/:id", h.PatchTask)
	tasks.PATCH("/:id/status", h.UpdateStatus)
	tasks.PATCH("/:id/priority", h.UpdatePriority)
	tasks.DELETE("/:id", h.DeleteTask)
}
