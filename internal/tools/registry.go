package tools

import (
	"fmt"
	"sort"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Registry manages the collection of available tools.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]*ServerTool
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]*ServerTool),
	}
}

// Register adds a tool to the registry.
func (r *Registry) Register(tool *ServerTool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if tool.Tool == nil || tool.Tool.Name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}
	name := tool.Tool.Name
	if _, exists := r.tools[name]; exists {
		return fmt.Errorf("tool %s is already registered", name)
	}

	r.tools[name] = tool
	return nil
}

// RegisterAll adds every tool, stopping at the first failure.
func (r *Registry) RegisterAll(tools []*ServerTool) error {
	for _, tool := range tools {
		if err := r.Register(tool); err != nil {
			return err
		}
	}
	return nil
}

// Get retrieves a tool by name.
func (r *Registry) Get(name string) (*ServerTool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tool, exists := r.tools[name]
	return tool, exists
}

// List returns all registered tool names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.tools)
}

// AttachAll registers every tool with the MCP server.
func (r *Registry) AttachAll(server *mcp.Server) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, tool := range r.tools {
		tool.RegisterFunc(server)
	}
}

// Validate checks that all registered tools are properly configured.
func (r *Registry) Validate() error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for name, tool := range r.tools {
		if tool.Tool.Description == "" {
			return fmt.Errorf("tool %s has empty description", name)
		}
		if tool.RegisterFunc == nil {
			return fmt.Errorf("tool %s has nil register function", name)
		}
	}

	return nil
}
