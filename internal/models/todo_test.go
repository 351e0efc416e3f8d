package models

import (
	"strings"
	"testing"
	"time"
)

func TestPriorityValid(t *testing.T) {
	tests := []struct {
		priority Priority
		want     bool
	}{
		{PriorityLow, true},
		{PriorityMedium, true},
		{PriorityHigh, true},
		{Priority("urgent"), false},
		{Priority(""), false},
		{Priority("HIGH"), false},
	}

	for _, tt := range tests {
		if got := tt.priority.Valid(); got != tt.want {
			t.Errorf("Priority(%q).Valid() = %v, want %v", tt.priority, got, tt.want)
		}
	}
}

func TestCreateTodoRequestValidate(t *testing.T) {
	due := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     CreateTodoRequest
		wantErr bool
	}{
		{
			name: "valid minimal",
			req:  CreateTodoRequest{Title: "Buy milk"},
		},
		{
			name: "valid full",
			req: CreateTodoRequest{
				Title:       "Buy milk",
				Description: "Two liters, whole",
				Priority:    PriorityHigh,
				DueDate:     &due,
				Tags:        []string{"groceries", "home"},
			},
		},
		{
			name:    "empty title",
			req:     CreateTodoRequest{},
			wantErr: true,
		},
		{
			name:    "title too long",
			req:     CreateTodoRequest{Title: strings.Repeat("a", MaxTitleLength+1)},
			wantErr: true,
		},
		{
			name: "title at limit",
			req:  CreateTodoRequest{Title: strings.Repeat("a", MaxTitleLength)},
		},
		{
			name: "description too long",
			req: CreateTodoRequest{
				Title:       "ok",
				Description: strings.Repeat("d", MaxDescriptionLength+1),
			},
			wantErr: true,
		},
		{
			name:    "unknown priority",
			req:     CreateTodoRequest{Title: "ok", Priority: "urgent"},
			wantErr: true,
		},
		{
			name: "empty priority is allowed and defaulted later",
			req:  CreateTodoRequest{Title: "ok", Priority: ""},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateTodoRequestValidate(t *testing.T) {
	empty := ""
	long := strings.Repeat("a", MaxTitleLength+1)
	ok := "new title"
	badPriority := Priority("critical")
	goodPriority := PriorityLow

	tests := []struct {
		name    string
		req     UpdateTodoRequest
		wantErr bool
	}{
		{name: "no fields", req: UpdateTodoRequest{}},
		{name: "valid title", req: UpdateTodoRequest{Title: &ok}},
		{name: "empty title", req: UpdateTodoRequest{Title: &empty}, wantErr: true},
		{name: "title too long", req: UpdateTodoRequest{Title: &long}, wantErr: true},
		{name: "bad priority", req: UpdateTodoRequest{Priority: &badPriority}, wantErr: true},
		{name: "good priority", req: UpdateTodoRequest{Priority: &goodPriority}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestUpdateTodoRequestEmpty(t *testing.T) {
	title := "x"
	if !(&UpdateTodoRequest{}).Empty() {
		t.Error("zero-value request should be empty")
	}
	if (&UpdateTodoRequest{Title: &title}).Empty() {
		t.Error("request with a title should not be empty")
	}
	if (&UpdateTodoRequest{Tags: []string{}}).Empty() {
		t.Error("request with explicit empty tags should not be empty")
	}
}
