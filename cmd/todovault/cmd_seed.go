package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/todovault/todovault/internal/config"
	"github.com/todovault/todovault/internal/database"
	"github.com/todovault/todovault/internal/logging"
	"github.com/todovault/todovault/internal/seed"
	"github.com/todovault/todovault/internal/store"
)

// newSeedCmd creates the seed subcommand that loads sample todos.
func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Populate the database with sample todos",
		RunE:  runSeed,
	}
}

func runSeed(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	logger := logging.NewLogger(cfg.LogLevel)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client, err := database.Connect(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to MongoDB", slog.Any("error", err))
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	defer func() {
		if err := database.Disconnect(context.Background(), client); err != nil {
			logger.Error("Failed to disconnect from MongoDB", slog.Any("error", err))
		}
	}()

	st := store.NewForDatabase(client.Database(cfg.MongoDB), logger)

	created, err := seed.Run(ctx, st, logger)
	if err != nil {
		return fmt.Errorf("seeding failed after %d todos: %w", created, err)
	}

	fmt.Printf("Created %d sample todos\n", created)
	return nil
}
