// Package main implements the todovault executable. The root command runs
// the HTTP REST API; the mcp subcommand exposes the same todo store over
// the Model Context Protocol.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/todovault/todovault/internal/api"
	"github.com/todovault/todovault/internal/config"
	"github.com/todovault/todovault/internal/database"
	"github.com/todovault/todovault/internal/logging"
	"github.com/todovault/todovault/internal/store"
	"github.com/todovault/todovault/pkg/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "todovault",
	Short: "Todo service with REST and MCP front ends",
	Long: `todovault is a MongoDB-backed todo service. The root command serves the
HTTP REST API; the mcp subcommand serves the same todos over the Model
Context Protocol via stdio.`,
	RunE: runHTTP,
}

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print version information and exit")

	rootCmd.AddCommand(newMCPCmd())
	rootCmd.AddCommand(newSeedCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// runHTTP starts the REST API server.
func runHTTP(cmd *cobra.Command, args []string) error {
	if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
		fmt.Println(version.GetVersion().String())
		return nil
	}

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

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      api.Router(st, logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverDone := make(chan error, 1)
	go func() {
		logger.Info("Todo REST API listening",
			slog.String("addr", srv.Addr),
			slog.String("version", version.GetVersion().Version))
		serverDone <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverDone:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", slog.Any("error", err))
			return err
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during HTTP shutdown", slog.Any("error", err))
		return err
	}

	logger.Info("Todo REST API stopped")
	return nil
}
