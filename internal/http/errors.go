package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	dto "task-api.com/task-api/internal/data_models"
	"task-api.com/task-api/internal/exceptions"
)

// ErrorHandler renders every error as {"detail": ...}. Internal details of
// storage and unexpected errors go to the log only.
func ErrorHandler(logger *log.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := errorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.Errorj(log.JSON{
				"message": "request failed",
				"method":  c.Request().Method,
				"uri":     c.Request().RequestURI,
				"error":   err.Error(),
			})
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(status)
		} else {
			writeErr = c.JSON(status, body)
		}
		if writeErr != nil {
			logger.Errorj(log.JSON{"message": "failed to write error response", "error": writeErr.Error()})
		}
	}
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	if appErr, ok := exceptions.As(err); ok {
		body := dto.ErrorResponse{Detail: appErr.Message, ErrorCode: appErr.Code}
		if len(appErr.Fields) > 0 {
			body.Errors = appErr.Fields
		}
		return appErr.StatusCode, body
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Code < http.StatusInternalServerError {
		detail := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			detail = msg
		}
		return httpErr.Code, dto.ErrorResponse{Detail: detail}
	}

	return http.StatusInternalServerError, dto.ErrorResponse{Detail: "Internal server error"}
}
