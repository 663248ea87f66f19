package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/subfolio-dev/subfolio/db"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := db.ConnectDatabase(cfg.DatabaseDriver, cfg.DatabaseURL); err != nil {
			return fmt.Errorf("connect database: %w", err)
		}

		if err := db.MigrateDatabase(); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}

		logger.Info("schema migrated", zap.String("database_driver", cfg.DatabaseDriver))
		return nil
	},
}
