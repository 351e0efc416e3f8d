// Package todo provides registration for the todo management tools.
package todo

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/todovault/todovault/internal/tools"
)

// CreateTodoTools creates all todo management tools using MCP SDK patterns.
func CreateTodoTools(ctx *tools.Context) []*tools.ServerTool {
	h := newHandler(ctx)

	return []*tools.ServerTool{
		typedTool("create_todo",
			"Create a new todo item. Accepts a required title plus optional description, priority (low, medium, high), due_date (ISO format, YYYY-MM-DD) and tags.",
			h.createTodo),
		typedTool("get_todos",
			"Get todos with filtering and pagination. Supports page, limit (max 100), completed, priority (low, medium, high) and free-text search over title and description.",
			h.getTodos),
		typedTool("get_todo",
			"Get a specific todo by ID.",
			h.getTodo),
		typedTool("update_todo",
			"Update an existing todo. Only the supplied fields change; omitted fields keep their stored values.",
			h.updateTodo),
		typedTool("delete_todo",
			"Delete a todo by ID.",
			h.deleteTodo),
		typedTool("toggle_todo",
			"Toggle the completion status of a todo.",
			h.toggleTodo),
		bareTool("get_completed_todos",
			"Get all completed todos.",
			h.getCompletedTodos),
		bareTool("get_pending_todos",
			"Get all pending (incomplete) todos.",
			h.getPendingTodos),
		typedTool("get_todos_by_tag",
			"Get todos carrying a specific tag.",
			h.getTodosByTag),
		bareTool("get_todo_stats",
			"Get statistics about todos: totals, completion rate and priority breakdown.",
			h.getTodoStats),
	}
}

// typedTool wraps a dictionary-returning handler into a ServerTool with
// typed argument decoding.
func typedTool[T any](name, description string, fn func(context.Context, T) map[string]any) *tools.ServerTool {
	tool := &mcp.Tool{
		Name:        name,
		Description: description,
	}

	handler := func(ctxReq context.Context, _ *mcp.ServerSession, params *mcp.CallToolParamsFor[T]) (*mcp.CallToolResultFor[any], error) {
		return tools.DictResult(fn(ctxReq, params.Arguments)), nil
	}

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}

// bareTool wraps a handler that takes no arguments.
func bareTool(name, description string, fn func(context.Context) map[string]any) *tools.ServerTool {
	tool := &mcp.Tool{
		Name:        name,
		Description: description,
	}

	handler := func(ctxReq context.Context, _ *mcp.ServerSession, _ *mcp.CallToolParamsFor[map[string]any]) (*mcp.CallToolResultFor[any], error) {
		return tools.DictResult(fn(ctxReq)), nil
	}

	return &tools.ServerTool{
		Tool: tool,
		RegisterFunc: func(server *mcp.Server) {
			mcp.AddTool(server, tool, handler)
		},
	}
}
