// Command precastctl is the operator CLI: database migrations, seed data,
// user accounts, report printing and attendance pruning.
//
// It reads the same configuration as the server (CONFIG_PATH or --config,
// plus environment overrides).
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/precast-backend/internal/adapter/postgres"
	"github.com/heartmarshall/precast-backend/internal/app"
	"github.com/heartmarshall/precast-backend/internal/config"
)

var (
	configPath string
	timeout    time.Duration
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:           "precastctl",
	Short:         "Operate the precast production backend",
	SilenceUsage:  true,
	SilenceErrors: true,
	Version:       app.BuildVersion(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: $CONFIG_PATH or ./config.yaml)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Operation timeout")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(pruneAttendanceCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env is what every database-backed subcommand needs.
type env struct {
	cfg *config.Config
	log *slog.Logger
}

func loadEnv() (*env, error) {
	path := configPath
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, log: app.NewLogger(cfg.Log)}, nil
}

// withServices runs fn with the wired service layer and a context bounded
// by --timeout.
func withServices(cmd *cobra.Command, fn func(ctx context.Context, e *env, svcs *app.Services) error) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	pool, err := postgres.NewPool(ctx, e.cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	svcs := app.NewServices(e.cfg, e.log, pool)
	defer svcs.Close()

	return fn(ctx, e, svcs)
}
