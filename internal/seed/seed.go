// Package seed populates the database with sample todos for local
// development and manual testing.
package seed

import (
	"context"
	"time"

	"github.com/todovault/todovault/internal/logging"
	"github.com/todovault/todovault/internal/models"
	"github.com/todovault/todovault/internal/tools"
)

func due(days int) *time.Time {
	t := time.Now().UTC().AddDate(0, 0, days)
	return &t
}

func sampleTodos() []models.CreateTodoRequest {
	return []models.CreateTodoRequest{
		{
			Title:       "Learn the Gin framework",
			Description: "Work through the Gin documentation and build a small REST service",
			Priority:    models.PriorityHigh,
			Tags:        []string{"learning", "backend", "go"},
			DueDate:     due(7),
		},
		{
			Title:       "Setup MongoDB",
			Description: "Install and configure MongoDB for the project",
			Priority:    models.PriorityHigh,
			Tags:        []string{"database", "setup"},
			DueDate:     due(1),
		},
		{
			Title:       "Write API Documentation",
			Description: "Create comprehensive API documentation",
			Priority:    models.PriorityMedium,
			Tags:        []string{"documentation", "api"},
			DueDate:     due(3),
		},
		{
			Title:       "Add Error Handling",
			Description: "Implement proper error handling and validation",
			Priority:    models.PriorityMedium,
			Tags:        []string{"error-handling", "validation"},
			Completed:   true,
		},
		{
			Title:       "Create Unit Tests",
			Description: "Write unit tests for all storage operations",
			Priority:    models.PriorityLow,
			Tags:        []string{"testing", "quality"},
			DueDate:     due(14),
		},
		{
			Title:       "Deploy to Production",
			Description: "Deploy the application to a production environment",
			Priority:    models.PriorityHigh,
			Tags:        []string{"deployment", "production"},
			DueDate:     due(30),
		},
		{
			Title:       "Optimize Database Queries",
			Description: "Review and optimize MongoDB queries for better performance",
			Priority:    models.PriorityLow,
			Tags:        []string{"optimization", "database"},
			DueDate:     due(21),
		},
		{
			Title:       "Add Authentication",
			Description: "Implement user authentication and authorization",
			Priority:    models.PriorityMedium,
			Tags:        []string{"security", "authentication"},
			DueDate:     due(10),
		},
		{
			Title:       "Create Frontend",
			Description: "Build a web frontend for the todo service",
			Priority:    models.PriorityMedium,
			Tags:        []string{"frontend", "ui"},
			DueDate:     due(21),
		},
		{
			Title:       "Setup CI/CD Pipeline",
			Description: "Configure continuous integration and deployment",
			Priority:    models.PriorityLow,
			Tags:        []string{"ci-cd", "devops"},
			DueDate:     due(28),
		},
		{
			Title:       "Daily 10 min walk",
			Description: "A quick 10-minute walk to stay active",
			Priority:    models.PriorityHigh,
			Tags:        []string{"health", "exercise"},
			DueDate:     due(1),
		},
	}
}

// Run inserts the sample todos one by one, logging failures without
// aborting the rest. It returns the number created and the first error
// encountered, if any.
func Run(ctx context.Context, store tools.Store, logger *logging.Logger) (int, error) {
	var firstErr error
	created := 0

	for _, req := range sampleTodos() {
		todo, err := store.Create(ctx, req)
		if err != nil {
			logger.Error("Failed to create sample todo", "title", req.Title, "error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		created++
		logger.Info("Created sample todo", "title", todo.Title, "id", todo.ID.Hex())
	}

	logger.Info("Seeding finished", "created", created, "total", len(sampleTodos()))
	return created, firstErr
}
