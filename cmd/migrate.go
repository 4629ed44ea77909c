package cmd

import (
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"

	config "task-api.com/task-api/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the tasks table and exit",
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

		logger.Infoj(log.JSON{"message": "migration complete", "driver": cfg.DatabaseDriver})
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
