package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/todovault/todovault/internal/logging"
	"github.com/todovault/todovault/internal/models"
	"github.com/todovault/todovault/internal/store"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type handlers struct {
	store  TodoStore
	logger *logging.Logger
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Todo App API is running!", "status": "healthy"})
}

// createTodo handles POST /todos.
func (h *handlers) createTodo(c *gin.Context) {
	var req models.CreateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, err := h.store.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("create todo failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create todo"})
		return
	}
	c.JSON(http.StatusCreated, todo)
}

// listTodos handles GET /todos with pagination and optional filters.
func (h *handlers) listTodos(c *gin.Context) {
	page, err := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "page must be an integer >= 1"})
		return
	}
	limit, err := strconv.ParseInt(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)), 10, 64)
	if err != nil || limit < 1 || limit > maxLimit {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer between 1 and 100"})
		return
	}

	filter, ok := h.parseFilter(c)
	if !ok {
		return
	}

	offset := (page - 1) * limit
	ctx := c.Request.Context()

	todos, err := h.store.List(ctx, offset, limit, filter)
	if err != nil {
		h.logger.Error("list todos failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get todos"})
		return
	}
	total, err := h.store.Count(ctx, filter)
	if err != nil {
		h.logger.Error("count todos failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get todos"})
		return
	}

	c.JSON(http.StatusOK, models.TodoListResponse{
		Todos:   todos,
		Total:   total,
		Page:    page,
		Limit:   limit,
		HasNext: offset+limit < total,
		HasPrev: page > 1,
	})
}

// parseFilter reads the completed/priority/search query parameters,
// keeping "not supplied" distinct from "supplied as false or empty".
func (h *handlers) parseFilter(c *gin.Context) (store.Filter, bool) {
	var filter store.Filter

	if raw, ok := c.GetQuery("completed"); ok {
		completed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "completed must be a boolean"})
			return filter, false
		}
		filter.Completed = &completed
	}
	if raw := c.Query("priority"); raw != "" {
		if !models.Priority(raw).Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "priority must be one of: low, medium, high"})
			return filter, false
		}
		filter.Priority = raw
	}
	filter.Search = c.Query("search")

	return filter, true
}

// getTodo handles GET /todos/:id.
func (h *handlers) getTodo(c *gin.Context) {
	todo, found, err := h.store.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("get todo failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get todo"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	c.JSON(http.StatusOK, todo)
}

// updateTodo handles PUT /todos/:id as a field-level patch.
func (h *handlers) updateTodo(c *gin.Context) {
	var req models.UpdateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Update data is required"})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	todo, found, err := h.store.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.logger.Error("update todo failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update todo"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	c.JSON(http.StatusOK, todo)
}

// deleteTodo handles DELETE /todos/:id.
func (h *handlers) deleteTodo(c *gin.Context) {
	removed, err := h.store.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("delete todo failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete todo"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// toggleTodo handles PATCH /todos/:id/toggle.
func (h *handlers) toggleTodo(c *gin.Context) {
	todo, found, err := h.store.Toggle(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.logger.Error("toggle todo failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to toggle todo"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Todo not found"})
		return
	}
	c.JSON(http.StatusOK, todo)
}

// completedTodos handles GET /todos/completed.
func (h *handlers) completedTodos(c *gin.Context) {
	todos, err := h.store.ListCompleted(c.Request.Context())
	if err != nil {
		h.logger.Error("list completed failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get completed todos"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// pendingTodos handles GET /todos/pending.
func (h *handlers) pendingTodos(c *gin.Context) {
	todos, err := h.store.ListPending(c.Request.Context())
	if err != nil {
		h.logger.Error("list pending failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get pending todos"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// todosByTag handles GET /todos/tag/:tag.
func (h *handlers) todosByTag(c *gin.Context) {
	todos, err := h.store.ListByTag(c.Request.Context(), c.Param("tag"))
	if err != nil {
		h.logger.Error("list by tag failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get todos by tag"})
		return
	}
	c.JSON(http.StatusOK, todos)
}

// stats handles GET /stats.
func (h *handlers) stats(c *gin.Context) {
	stats, err := h.store.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("stats failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get stats"})
		return
	}
	c.JSON(http.StatusOK, stats)
}
