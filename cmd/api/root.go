package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"realtyapi/internal/config"
	"realtyapi/internal/database"
	"realtyapi/internal/database/migration"
	"realtyapi/internal/logger"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "realtyapi",
		Short: "Realty API - listings, photo ingestion and inquiry reports",
		Long: `realtyapi serves the listings HTTP API. Photos uploaded with a listing are resized,
re-encoded and stored in object storage; buyer inquiries can be exported as a PDF report.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}

	cmd.AddCommand(newServeCmd(), newMigrateCmd(), newReportCmd())
	return cmd
}

// env is what every subcommand needs before doing its own work.
type env struct {
	cfg *config.AppConfig
	log *zap.Logger
	db  *sql.DB
}

func (e *env) close() {
	if e.db != nil {
		_ = e.db.Close()
	}
	_ = e.log.Sync()
}

// bootstrap loads configuration, builds the logger and connects to the migrated database.
func bootstrap(ctx context.Context) (*env, error) {
	cfg := config.Load()

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	e := &env{cfg: cfg, log: log}

	db, err := database.NewPostgres(ctx, cfg.Database, logger.Component(log, "database"))
	if err != nil {
		e.close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	e.db = db

	if err := migration.EnsureMigrated(ctx, db, logger.Component(log, "database"), cfg.Database.Host); err != nil {
		e.close()
		return nil, err
	}
	return e, nil
}
