package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/precast-backend/internal/adapter/postgres"
	"github.com/heartmarshall/precast-backend/internal/config"
)

// Run is the server entry point: it loads configuration, connects to
// PostgreSQL and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	srv := NewServer(cfg, logger, pool)
	defer srv.Close()

	if err := srv.Run(ctx); err != nil {
		return err
	}

	logger.Info("application stopped")
	return nil
}
