// Package prompts contains the prompt templates exposed by the MCP server.
package prompts

const (
	// CreateTodoPrompt guides a client through creating a new todo.
	CreateTodoPrompt = `Create a new todo item. You can specify:
- title (required): The main task or item
- description (optional): More details about the task
- priority (optional): low, medium, or high (defaults to medium)
- due_date (optional): When it needs to be done (YYYY-MM-DD format)
- tags (optional): Categories or labels for organization

Example: "Create a todo to 'Review project proposal' with high priority, due tomorrow, tagged with 'work' and 'urgent'"
`

	// ManageTodosPrompt summarizes the available todo management operations.
	ManageTodosPrompt = `Manage your todos. You can:
- View all todos or filter by completion status, priority, or search terms
- Get specific todos by ID
- Update existing todos (change title, description, priority, due date, tags, or completion status)
- Delete todos you no longer need
- Toggle completion status
- View completed or pending todos
- Find todos by tags
- Get statistics about your todo list

Example: "Show me all high priority pending todos" or "Mark todo with ID 'xyz' as completed"
`
)
