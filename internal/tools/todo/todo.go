// Package todo exposes the todo data-access operations as MCP tools.
//
// Every tool returns the JSON rendering of a uniform dictionary: either
// {"success": true, ...} with the full record(s), or {"error": "<message>"}.
// Timestamps render as ISO-8601 strings and ids as their hex string form.
package todo

import (
	"context"
	"fmt"
	"time"

	"github.com/todovault/todovault/internal/models"
	"github.com/todovault/todovault/internal/store"
	"github.com/todovault/todovault/internal/tools"
)

// CreateTodoArgs are the arguments for the create_todo tool.
type CreateTodoArgs struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    string   `json:"priority,omitempty"`
	DueDate     string   `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// GetTodosArgs are the arguments for the get_todos tool.
type GetTodosArgs struct {
	Page      int    `json:"page,omitempty"`
	Limit     int    `json:"limit,omitempty"`
	Completed *bool  `json:"completed,omitempty"`
	Priority  string `json:"priority,omitempty"`
	Search    string `json:"search,omitempty"`
}

// TodoIDArgs are the arguments for tools keyed by a single todo id.
type TodoIDArgs struct {
	TodoID string `json:"todo_id"`
}

// UpdateTodoArgs are the arguments for the update_todo tool. Omitted fields
// leave the stored values untouched.
type UpdateTodoArgs struct {
	TodoID      string   `json:"todo_id"`
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Completed   *bool    `json:"completed,omitempty"`
	Priority    *string  `json:"priority,omitempty"`
	DueDate     *string  `json:"due_date,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// TagArgs are the arguments for the get_todos_by_tag tool.
type TagArgs struct {
	Tag string `json:"tag"`
}

// handler holds the injected dependencies shared by all todo tools.
type handler struct {
	store  tools.Store
	logger tools.Logger
}

func newHandler(ctx *tools.Context) *handler {
	return &handler{store: ctx.Store, logger: ctx.Logger.WithTool("todo")}
}

// parseDueDate accepts an ISO-8601 date (YYYY-MM-DD) or a full RFC 3339
// timestamp. An empty string means "no due date".
func parseDueDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("Invalid date format: %s. Use YYYY-MM-DD format.", raw)
}

func todoPayload(t *models.Todo) map[string]any {
	payload := map[string]any{
		"id":          t.ID.Hex(),
		"title":       t.Title,
		"description": t.Description,
		"completed":   t.Completed,
		"priority":    string(t.Priority),
		"due_date":    nil,
		"tags":        t.Tags,
		"created_at":  t.CreatedAt.Format(time.RFC3339),
		"updated_at":  t.UpdatedAt.Format(time.RFC3339),
	}
	if t.DueDate != nil {
		payload["due_date"] = t.DueDate.Format(time.RFC3339)
	}
	return payload
}

func todoPayloads(todos []models.Todo) []map[string]any {
	payloads := make([]map[string]any, 0, len(todos))
	for i := range todos {
		payloads = append(payloads, todoPayload(&todos[i]))
	}
	return payloads
}

func (h *handler) createTodo(ctx context.Context, args CreateTodoArgs) map[string]any {
	dueDate, err := parseDueDate(args.DueDate)
	if err != nil {
		return tools.Errorf("%v", err)
	}

	req := models.CreateTodoRequest{
		Title:       args.Title,
		Description: args.Description,
		Priority:    models.Priority(args.Priority),
		DueDate:     dueDate,
		Tags:        args.Tags,
	}
	if err := req.Validate(); err != nil {
		return tools.Errorf("%v", err)
	}

	todo, err := h.store.Create(ctx, req)
	if err != nil {
		h.logger.Error("create_todo failed", "error", err)
		return tools.Errorf("Failed to create todo: %v", err)
	}

	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Todo '%s' created successfully", todo.Title),
		"todo":    todoPayload(todo),
	}
}

func (h *handler) getTodos(ctx context.Context, args GetTodosArgs) map[string]any {
	page := args.Page
	if page < 1 {
		page = 1
	}
	limit := args.Limit
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	if args.Priority != "" && !models.Priority(args.Priority).Valid() {
		return tools.Errorf("priority must be one of: low, medium, high")
	}
	filter := store.Filter{
		Completed: args.Completed,
		Priority:  args.Priority,
		Search:    args.Search,
	}

	offset := int64(page-1) * int64(limit)
	todos, err := h.store.List(ctx, offset, int64(limit), filter)
	if err != nil {
		h.logger.Error("get_todos failed", "error", err)
		return tools.Errorf("Failed to get todos: %v", err)
	}
	total, err := h.store.Count(ctx, filter)
	if err != nil {
		h.logger.Error("get_todos count failed", "error", err)
		return tools.Errorf("Failed to get todos: %v", err)
	}

	return map[string]any{
		"success": true,
		"todos":   todoPayloads(todos),
		"pagination": map[string]any{
			"page":     page,
			"limit":    limit,
			"total":    total,
			"has_next": offset+int64(limit) < total,
			"has_prev": page > 1,
		},
	}
}

func (h *handler) getTodo(ctx context.Context, args TodoIDArgs) map[string]any {
	todo, found, err := h.store.GetByID(ctx, args.TodoID)
	if err != nil {
		h.logger.Error("get_todo failed", "error", err)
		return tools.Errorf("Failed to get todo: %v", err)
	}
	if !found {
		return tools.NotFoundError(args.TodoID)
	}

	return map[string]any{
		"success": true,
		"todo":    todoPayload(todo),
	}
}

func (h *handler) updateTodo(ctx context.Context, args UpdateTodoArgs) map[string]any {
	req := models.UpdateTodoRequest{
		Title:       args.Title,
		Description: args.Description,
		Completed:   args.Completed,
		Tags:        args.Tags,
	}
	if args.Priority != nil {
		p := models.Priority(*args.Priority)
		req.Priority = &p
	}
	if args.DueDate != nil {
		dueDate, err := parseDueDate(*args.DueDate)
		if err != nil {
			return tools.Errorf("%v", err)
		}
		req.DueDate = dueDate
	}
	if err := req.Validate(); err != nil {
		return tools.Errorf("%v", err)
	}

	todo, found, err := h.store.Update(ctx, args.TodoID, req)
	if err != nil {
		h.logger.Error("update_todo failed", "error", err)
		return tools.Errorf("Failed to update todo: %v", err)
	}
	if !found {
		return tools.NotFoundError(args.TodoID)
	}

	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Todo '%s' updated successfully", todo.Title),
		"todo":    todoPayload(todo),
	}
}

func (h *handler) deleteTodo(ctx context.Context, args TodoIDArgs) map[string]any {
	removed, err := h.store.Delete(ctx, args.TodoID)
	if err != nil {
		h.logger.Error("delete_todo failed", "error", err)
		return tools.Errorf("Failed to delete todo: %v", err)
	}
	if !removed {
		return tools.NotFoundError(args.TodoID)
	}

	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Todo with ID '%s' deleted successfully", args.TodoID),
	}
}

func (h *handler) toggleTodo(ctx context.Context, args TodoIDArgs) map[string]any {
	todo, found, err := h.store.Toggle(ctx, args.TodoID)
	if err != nil {
		h.logger.Error("toggle_todo failed", "error", err)
		return tools.Errorf("Failed to toggle todo: %v", err)
	}
	if !found {
		return tools.NotFoundError(args.TodoID)
	}

	state := "pending"
	if todo.Completed {
		state = "completed"
	}
	return map[string]any{
		"success": true,
		"message": fmt.Sprintf("Todo '%s' marked as %s", todo.Title, state),
		"todo":    todoPayload(todo),
	}
}

func (h *handler) getCompletedTodos(ctx context.Context) map[string]any {
	todos, err := h.store.ListCompleted(ctx)
	if err != nil {
		h.logger.Error("get_completed_todos failed", "error", err)
		return tools.Errorf("Failed to get completed todos: %v", err)
	}

	return map[string]any{
		"success": true,
		"todos":   todoPayloads(todos),
		"count":   len(todos),
	}
}

func (h *handler) getPendingTodos(ctx context.Context) map[string]any {
	todos, err := h.store.ListPending(ctx)
	if err != nil {
		h.logger.Error("get_pending_todos failed", "error", err)
		return tools.Errorf("Failed to get pending todos: %v", err)
	}

	return map[string]any{
		"success": true,
		"todos":   todoPayloads(todos),
		"count":   len(todos),
	}
}

func (h *handler) getTodosByTag(ctx context.Context, args TagArgs) map[string]any {
	todos, err := h.store.ListByTag(ctx, args.Tag)
	if err != nil {
		h.logger.Error("get_todos_by_tag failed", "error", err)
		return tools.Errorf("Failed to get todos by tag: %v", err)
	}

	return map[string]any{
		"success": true,
		"todos":   todoPayloads(todos),
		"count":   len(todos),
		"tag":     args.Tag,
	}
}

func (h *handler) getTodoStats(ctx context.Context) map[string]any {
	stats, err := h.store.Stats(ctx)
	if err != nil {
		h.logger.Error("get_todo_stats failed", "error", err)
		return tools.Errorf("Failed to get todo stats: %v", err)
	}

	return map[string]any{
		"success": true,
		"stats": map[string]any{
			"total_todos":     stats.TotalTodos,
			"completed_todos": stats.CompletedTodos,
			"pending_todos":   stats.PendingTodos,
			"completion_rate": stats.CompletionRate,
			"priority_breakdown": map[string]any{
				"high":   stats.PriorityBreakdown.High,
				"medium": stats.PriorityBreakdown.Medium,
				"low":    stats.PriorityBreakdown.Low,
			},
		},
	}
}
