package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

// RequestID tags every request with a uuid, reusing an incoming
// X-Request-ID header when present.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	})
}

// RequestLogger writes one JSON line per request. It must run after
// RequestID so the id is already on the response.
func RequestLogger(logger *log.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRemoteIP:  true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			entry := log.JSON{
				"message":    "request",
				"request_id": v.RequestID,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"latency_ms": float64(v.Latency) / float64(time.Millisecond),
				"remote_ip":  v.RemoteIP,
			}
			if v.Error != nil {
				entry["error"] = v.Error.Error()
			}

			switch {
			case v.Status >= 500:
				logger.Errorj(entry)
			case v.Status >= 400:
				logger.Warnj(entry)
			default:
				logger.Infoj(entry)
			}
			return nil
		},
	})
}
