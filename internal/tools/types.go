// Package tools provides the registry and common types for MCP tools.
package tools

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/todovault/todovault/internal/models"
	"github.com/todovault/todovault/internal/store"
)

// Logger defines the logging interface for tools.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	WithTool(toolName string) Logger
}

// Store is the data-access contract the tools depend on.
// *store.Store satisfies it.
type Store interface {
	Create(ctx context.Context, req models.CreateTodoRequest) (*models.Todo, error)
	GetByID(ctx context.Context, id string) (*models.Todo, bool, error)
	List(ctx context.Context, offset, limit int64, f store.Filter) ([]models.Todo, error)
	Count(ctx context.Context, f store.Filter) (int64, error)
	Update(ctx context.Context, id string, req models.UpdateTodoRequest) (*models.Todo, bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Toggle(ctx context.Context, id string) (*models.Todo, bool, error)
	ListByTag(ctx context.Context, tag string) ([]models.Todo, error)
	ListCompleted(ctx context.Context) ([]models.Todo, error)
	ListPending(ctx context.Context) ([]models.Todo, error)
	Stats(ctx context.Context) (*models.Stats, error)
}

// Context contains common dependencies needed by tools. The store is injected
// explicitly at startup; tools never reach for process-global state.
type Context struct {
	Logger Logger
	Store  Store
}

// ServerTool pairs a tool schema with its typed registration function.
type ServerTool struct {
	Tool         *mcp.Tool
	RegisterFunc func(server *mcp.Server)
}
