package main

import (
	"context"
	"fmt"
	"time"

	"note-quiz/internal/config"
	"note-quiz/internal/database"
	"note-quiz/internal/logger"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var (
	driverFlag string
	dsnFlag    string
	timeout    time.Duration
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database maintenance for the note quiz service",
	Long: `Applies or rolls back the schema for the configured database driver
and registers PDF notes so quizzes can be generated for them.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&driverFlag, "driver", "", "database driver (overrides db.driver)")
	rootCmd.PersistentFlags().StringVar(&dsnFlag, "dsn", "", "connection string (overrides db.dsn)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall command timeout")
}

// connect loads configuration, applies flag overrides and opens the database.
func connect(ctx context.Context) (*sqlx.DB, *config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if driverFlag != "" {
		cfg.DB.Driver = driverFlag
	}
	if dsnFlag != "" {
		cfg.DB.DSN = dsnFlag
	}

	if err := logger.Initialize(cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	db, err := database.NewSQLXDB(ctx, cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		return nil, nil, err
	}
	return db, cfg, nil
}
