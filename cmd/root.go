package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	config "task-api.com/task-api/internal/configs"
)

var rootCmd = &cobra.Command{
	Use:           "task-api",
	Short:         "Task management REST API",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads an optional .env file and then the environment.
func loadConfig() (config.Config, error) {
	envLoaded := godotenv.Load() == nil

	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	if !envLoaded {
		config.NewLogger(cfg).Debug(".env file not found, using environment variables")
	}
	return cfg, nil
}
