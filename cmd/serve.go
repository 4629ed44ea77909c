package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	config "task-api.com/task-api/internal/configs"
	"task-api.com/task-api/internal/events"
	httpapi "task-api.com/task-api/internal/http"
	repository "task-api.com/task-api/internal/repositories"
	"task-api.com/task-api/internal/services"
	"task-api.com/task-api/internal/validators"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Migrates the database and starts the task management HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		logger := config.NewLogger(cfg)

		database, err := config.NewDatabase(cfg)
		if err != nil {
			return err
		}
		defer config.CloseDatabase(database)

		if err := config.Migrate(database); err != nil {
			return err
		}

		var publisher events.Publisher = events.NopPublisher{}
		if cfg.EventsEnabled() {
			redisClient, err := config.NewRedisClient(cfg.RedisAddr)
			if err != nil {
				return err
			}
			defer redisClient.Close()
			publisher = events.NewRedisStreamPublisher(redisClient, cfg.RedisStreamKey)
		}

		taskRepo := repository.NewTaskRepository(database)
		taskService := services.NewTaskService(taskRepo, publisher, logger, validators.Paging{
			DefaultLimit: cfg.DefaultPageSize,
			MaxLimit:     cfg.MaxPageSize,
		})
		healthService := services.NewHealthService(taskRepo, publisher, logger, cfg.AppName, cfg.AppVersion)

		e := httpapi.NewServer(httpapi.NewHandler(taskService, healthService), logger, cfg.CORSOrigins)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		serveErr := make(chan error, 1)
		go func() {
			logger.Infoj(log.JSON{"message": "HTTP server listening", "addr": cfg.AppURL, "version": cfg.AppVersion})
			if err := e.Start(cfg.AppURL); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		}()

		select {
		case err := <-serveErr:
			if err != nil {
				return err
			}
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeoutSeconds)*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Errorj(log.JSON{"message": "HTTP server shutdown failed", "error": err.Error()})
		}

		logger.Info("HTTP server shut down gracefully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
