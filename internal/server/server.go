// Package server implements the MCP server for the todo service.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/todovault/todovault/internal/logging"
	"github.com/todovault/todovault/internal/prompts"
	"github.com/todovault/todovault/internal/tools"
	"github.com/todovault/todovault/internal/tools/todo"
	"github.com/todovault/todovault/pkg/version"
)

// loggerAdapter wraps logging.Logger to implement the tools.Logger interface.
// This avoids a circular dependency between the logging and tools packages.
type loggerAdapter struct {
	*logging.Logger
}

// WithTool implements tools.Logger.
func (a *loggerAdapter) WithTool(toolName string) tools.Logger {
	return &loggerAdapter{Logger: a.Logger.WithTool(toolName)}
}

// Server represents the todo MCP server.
type Server struct {
	mcpServer *mcp.Server
	registry  *tools.Registry
	logger    *logging.Logger
}

// Options configures the server instance. Store is required; it is the
// single data-access layer shared with the REST API.
type Options struct {
	Logger *logging.Logger
	Store  tools.Store
}

// New creates a new todo MCP server with the given options.
func New(opts *Options) (*Server, error) {
	if opts.Store == nil {
		return nil, fmt.Errorf("store is required")
	}

	if opts.Logger == nil {
		logLevel := os.Getenv("LOG_LEVEL")
		if logLevel == "" {
			logLevel = "info"
		}
		opts.Logger = logging.NewLogger(logLevel)
	}

	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "todovault",
		Version: version.GetVersion().Version,
	}, nil)

	server := &Server{
		mcpServer: mcpServer,
		registry:  tools.NewRegistry(),
		logger:    opts.Logger,
	}

	if err := server.registerTools(opts.Store); err != nil {
		return nil, fmt.Errorf("failed to register tools: %w", err)
	}

	prompts.Register(mcpServer)

	return server, nil
}

// Start validates the configured tools before serving.
func (s *Server) Start(ctx context.Context) error {
	s.logger.Info("Starting todo MCP server",
		slog.String("version", version.GetVersion().Version),
		slog.Int("tools", s.registry.Count()),
	)

	if err := s.registry.Validate(); err != nil {
		return fmt.Errorf("tool registry validation failed: %w", err)
	}

	return nil
}

// Stop stops the MCP server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping todo MCP server")

	select {
	case <-ctx.Done():
		s.logger.Warn("Server stop timed out")
		return ctx.Err()
	default:
		s.logger.Info("Server stopped successfully")
		return nil
	}
}

// GetRegistry returns the tool registry.
func (s *Server) GetRegistry() *tools.Registry {
	return s.registry
}

// registerTools registers all todo tools with the server.
func (s *Server) registerTools(store tools.Store) error {
	s.logger.Debug("Registering tools with MCP server")

	toolCtx := &tools.Context{
		Logger: &loggerAdapter{Logger: s.logger},
		Store:  store,
	}

	todoTools := todo.CreateTodoTools(toolCtx)
	if err := s.registry.RegisterAll(todoTools); err != nil {
		return err
	}
	s.registry.AttachAll(s.mcpServer)

	s.logger.Info("Successfully registered tools",
		slog.Int("count", s.registry.Count()),
		slog.Any("tools", s.registry.List()),
	)

	return nil
}

// Serve runs the MCP server with the specified transport.
// It connects the MCP server to the transport and waits for either
// the session to complete or the context to be cancelled.
func (s *Server) Serve(ctx context.Context, transport mcp.Transport) error {
	s.logger.Info("Starting MCP server transport",
		slog.String("transport", fmt.Sprintf("%T", transport)),
	)

	session, err := s.mcpServer.Connect(ctx, transport)
	if err != nil {
		return fmt.Errorf("failed to connect MCP server: %w", err)
	}

	sessionDone := make(chan error, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("MCP session goroutine panicked",
					slog.Any("panic", r))
				sessionDone <- fmt.Errorf("session panicked: %v", r)
			}
		}()
		sessionDone <- session.Wait()
	}()

	select {
	case err := <-sessionDone:
		s.logger.Info("MCP session finished")
		return err
	case <-ctx.Done():
		s.logger.Info("MCP server shutting down due to context cancellation")
		return ctx.Err()
	}
}
