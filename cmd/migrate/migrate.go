package main

import (
	"context"

	"note-quiz/internal/database"
	"note-quiz/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(cmd, database.Up)
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back all migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(cmd, database.Down)
	},
}

func init() {
	rootCmd.AddCommand(upCmd, downCmd)
}

func runMigrations(cmd *cobra.Command, dir database.Direction) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	db, _, err := connect(ctx)
	if err != nil {
		return err
	}
	defer db.Close()
	defer logger.Sync()

	if err := database.RunMigrations(ctx, db, dir); err != nil {
		logger.Get().Error("Migration failed", zap.Error(err))
		return err
	}
	logger.Get().Info("Migrations finished", zap.String("driver", db.DriverName()))
	return nil
}
