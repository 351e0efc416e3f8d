package tools

import (
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DictResult renders a response dictionary as indented JSON text content.
// Every tool returns either {"success": true, ...} or {"error": "<message>"};
// payloads carrying an error key are flagged as errors on the MCP result.
func DictResult(payload map[string]any) *mcp.CallToolResultFor[any] {
	_, isError := payload["error"]

	jsonBytes, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return &mcp.CallToolResultFor[any]{
			Content: []mcp.Content{&mcp.TextContent{Text: fmt.Sprintf(`{"error": "failed to marshal response: %v"}`, err)}},
			IsError: true,
		}
	}

	return &mcp.CallToolResultFor[any]{
		Content: []mcp.Content{&mcp.TextContent{Text: string(jsonBytes)}},
		IsError: isError,
	}
}

// Errorf builds the uniform error dictionary.
func Errorf(format string, args ...any) map[string]any {
	return map[string]any{"error": fmt.Sprintf(format, args...)}
}

// NotFoundError builds the error dictionary for an absent todo id.
func NotFoundError(id string) map[string]any {
	return Errorf("Todo with ID '%s' not found", id)
}
