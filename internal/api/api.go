// Package api implements the HTTP REST front end.
package api

import (
	"context"

	"github.com/todovault/todovault/internal/models"
	"github.com/todovault/todovault/internal/store"
)

// TodoStore is the data-access contract the handlers depend on.
// *store.Store satisfies it.
type TodoStore interface {
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
