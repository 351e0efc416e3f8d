package api

import (
	"github.com/gin-gonic/gin"

	"github.com/todovault/todovault/internal/logging"
)

// Router builds the gin engine with all todo routes wired to the given store.
func Router(st TodoStore, logger *logging.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(logger.WithComponent("http")))

	h := &handlers{store: st, logger: logger.WithComponent("api")}

	router.GET("/health", h.health)
	router.GET("/stats", h.stats)

	router.POST("/todos", h.createTodo)
	router.GET("/todos", h.listTodos)
	// Static segments are registered alongside :id; gin matches them first.
	router.GET("/todos/completed", h.completedTodos)
	router.GET("/todos/pending", h.pendingTodos)
	router.GET("/todos/tag/:tag", h.todosByTag)
	router.GET("/todos/:id", h.getTodo)
	router.PUT("/todos/:id", h.updateTodo)
	router.DELETE("/todos/:id", h.deleteTodo)
	router.PATCH("/todos/:id/toggle", h.toggleTodo)

	return router
}
