package services

import (
	"context"
	"errors"
	"time"

	"github.com/labstack/gommon/log"

	dto "task-api.com/task-api/internal/data_models"
	"task-api.com/task-api/internal/events"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthService struct {
	db        Pinger
	publisher events.Publisher
	logger    *log.Logger
	name      string
	version   string
}

func NewHealthService(db Pinger, publisher events.Publisher, logger *log.Logger, name, version string) *HealthService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &HealthService{
		db:        db,
		publisher: publisher,
		logger:    logger,
		name:      name,
		version:   version,
	}
}

func (s *HealthService) Info() dto.RootResponse {
	return dto.RootResponse{
		Name:    s.name,
		Version: s.version,
		Status:  "running",
		Health:  "/health",
	}
}

func (s *HealthService) Liveness() dto.HealthResponse {
	return dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
	}
}

// Readiness reports ok=false only when the database is unreachable; a
// broken event broker degrades nothing but the report.
func (s *HealthService) Readiness(ctx context.Context) (dto.DetailedHealthResponse, bool) {
	resp := dto.DetailedHealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Database:  "connected",
		Events:    "connected",
		Version:   s.version,
	}

	ok := true
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Errorj(log.JSON{"message": "database ping failed", "error": err.Error()})
		resp.Status = "unhealthy"
		resp.Database = "disconnected"
		ok = false
	}

	if err := s.publisher.Ping(ctx); err != nil {
		if errors.Is(err, events.ErrDisabled) {
			resp.Events = "disabled"
		} else {
			s.logger.Warnj(log.JSON{"message": "event broker ping failed", "error": err.Error()})
			resp.Events = "disconnected"
		}
	}

	return resp, ok
}
