package prompts

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register attaches the todo prompt templates to the MCP server.
func Register(server *mcp.Server) {
	server.AddPrompt(
		&mcp.Prompt{
			Name:        "create_todo_prompt",
			Description: "Prompt template for creating a new todo",
		},
		staticPrompt("Prompt template for creating a new todo", CreateTodoPrompt),
	)
	server.AddPrompt(
		&mcp.Prompt{
			Name:        "manage_todos_prompt",
			Description: "Prompt template for managing todos",
		},
		staticPrompt("Prompt template for managing todos", ManageTodosPrompt),
	)
}

// staticPrompt builds a handler that always returns the same single
// user message.
func staticPrompt(description, text string) mcp.PromptHandler {
	return func(_ context.Context, _ *mcp.ServerSession, _ *mcp.GetPromptParams) (*mcp.GetPromptResult, error) {
		return &mcp.GetPromptResult{
			Description: description,
			Messages: []*mcp.PromptMessage{
				{
					Role:    "user",
					Content: &mcp.TextContent{Text: text},
				},
			},
		}, nil
	}
}
