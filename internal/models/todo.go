// Package models defines the Todo entity and its transport shapes.
package models

import (
	"fmt"
	"time"
	"unicode/utf8"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	// MaxTitleLength is the upper bound on todo titles, in characters.
	MaxTitleLength = 200
	// MaxDescriptionLength is the upper bound on descriptions, in characters.
	MaxDescriptionLength = 1000
)

// Priority is the urgency level of a todo.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Valid reports whether p is one of the three allowed priorities.
func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Todo is the persisted task record. The storage layer assigns ID,
// CreatedAt and UpdatedAt; ObjectIDs render as hex strings in JSON.
type Todo struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description"`
	Completed   bool               `bson:"completed" json:"completed"`
	Priority    Priority           `bson:"priority" json:"priority"`
	DueDate     *time.Time         `bson:"due_date,omitempty" json:"due_date,omitempty"`
	Tags        []string           `bson:"tags" json:"tags"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}

// CreateTodoRequest carries the caller-supplied fields for a new todo.
// Completed defaults to false and Priority to medium when omitted.
type CreateTodoRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Completed   bool       `json:"completed"`
	Priority    Priority   `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"`
}

// Validate checks the field-level constraints before any storage call.
func (r *CreateTodoRequest) Validate() error {
	if r.Title == "" {
		return fmt.Errorf("title is required")
	}
	if utf8.RuneCountInString(r.Title) > MaxTitleLength {
		return fmt.Errorf("title must be at most %d characters", MaxTitleLength)
	}
	if utf8.RuneCountInString(r.Description) > MaxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	if r.Priority != "" && !r.Priority.Valid() {
		return fmt.Errorf("priority must be one of: low, medium, high")
	}
	return nil
}

// UpdateTodoRequest is a field-level patch. Nil fields are left untouched;
// a request with no set fields is a no-op. Tags follow the same rule with
// a nil slice meaning "absent".
type UpdateTodoRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Completed   *bool      `json:"completed"`
	Priority    *Priority  `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
	Tags        []string   `json:"tags"`
}

// Empty reports whether the patch carries no fields at all.
func (r *UpdateTodoRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.Completed == nil &&
		r.Priority == nil && r.DueDate == nil && r.Tags == nil
}

// Validate checks the constraints of every field present in the patch.
func (r *UpdateTodoRequest) Validate() error {
	if r.Title != nil {
		if *r.Title == "" {
			return fmt.Errorf("title cannot be empty")
		}
		if utf8.RuneCountInString(*r.Title) > MaxTitleLength {
			return fmt.Errorf("title must be at most %d characters", MaxTitleLength)
		}
	}
	if r.Description != nil && utf8.RuneCountInString(*r.Description) > MaxDescriptionLength {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionLength)
	}
	if r.Priority != nil && !r.Priority.Valid() {
		return fmt.Errorf("priority must be one of: low, medium, high")
	}
	return nil
}

// TodoListResponse is the paginated list envelope returned by GET /todos.
type TodoListResponse struct {
	Todos   []Todo `json:"todos"`
	Total   int64  `json:"total"`
	Page    int64  `json:"page"`
	Limit   int64  `json:"limit"`
	HasNext bool   `json:"has_next"`
	HasPrev bool   `json:"has_prev"`
}

// PriorityBreakdown counts todos per priority level.
type PriorityBreakdown struct {
	High   int64 `json:"high"`
	Medium int64 `json:"medium"`
	Low    int64 `json:"low"`
}

// Stats aggregates collection-wide counters. CompletionRate is a percentage
// rounded to two decimal places, 0 when the collection is empty.
type Stats struct {
	TotalTodos        int64             `json:"total_todos"`
	CompletedTodos    int64             `json:"completed_todos"`
	PendingTodos      int64             `json:"pending_todos"`
	CompletionRate    float64           `json:"completion_rate"`
	PriorityBreakdown PriorityBreakdown `json:"priority_breakdown"`
}
