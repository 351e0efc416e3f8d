package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/todovault/todovault/internal/config"
	"github.com/todovault/todovault/internal/database"
	"github.com/todovault/todovault/internal/logging"
	"github.com/todovault/todovault/internal/server"
	"github.com/todovault/todovault/internal/store"
	"github.com/todovault/todovault/pkg/version"
)

// newMCPCmd creates the mcp subcommand serving the todo tools over stdio.
func newMCPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve todos over the Model Context Protocol (stdio)",
		Long: `Serve the todo store as MCP tools over stdio. All logging goes to
stderr so stdout stays reserved for the protocol stream.`,
		RunE: runMCP,
	}
}

func runMCP(cmd *cobra.Command, args []string) error {
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

	srv, err := server.New(&server.Options{
		Logger: logger,
		Store:  st,
	})
	if err != nil {
		logger.Error("Failed to create server", slog.Any("error", err))
		return fmt.Errorf("failed to create server: %w", err)
	}

	if err := srv.Start(ctx); err != nil {
		logger.Error("Failed to start server", slog.Any("error", err))
		return fmt.Errorf("failed to start server: %w", err)
	}

	transport := mcp.NewStdioTransport()

	logger.Info("Todo MCP server starting",
		slog.String("version", version.GetVersion().Version),
		slog.Int("tools_available", srv.GetRegistry().Count()))

	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Serve(ctx, transport)
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("Server error", slog.Any("error", err))
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("Error stopping server", slog.Any("error", err))
	}

	logger.Info("Todo MCP server stopped")
	return nil
}
