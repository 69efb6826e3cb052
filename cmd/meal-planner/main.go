package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"meal-planner/internal/app"
	"meal-planner/internal/config"
	"meal-planner/internal/database"
	"meal-planner/internal/logger"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "meal-planner",
		Short:         "Weekly meal plans that learn from your feedback",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(planCmd())
	rootCmd.AddCommand(shoppingCmd())
	rootCmd.AddCommand(feedbackCmd())
	rootCmd.AddCommand(tastesCmd())
	rootCmd.AddCommand(pantryCmd())
	rootCmd.AddCommand(profileCmd())
	rootCmd.AddCommand(serveCmd())

	return rootCmd
}

// session bundles what every command needs.
type session struct {
	cfg *config.Config
	log *logger.Logger
	app *app.App
}

func (r *session) Close() {
	if err := r.app.Close(); err != nil {
		r.log.Error("failed to close app", "error", err)
	}
}

func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var opts []app.Option
	if cfg.NutritionSource == config.NutritionSourceLog {
		opts = append(opts, app.WithLoggedNutrition())
	}

	a, err := app.New(ctx, db, log, opts...)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize app: %w", err)
	}

	return &session{cfg: cfg, log: log, app: a}, nil
}
