package tools

import (
	"context"
	"sync"

	"github.com/ragstack/ragdb-mcp/pkg/mcp"
)

// HandlerFunc executes one tool call and returns the text result.
type HandlerFunc func(ctx context.Context, args map[string]interface{}) (string, error)

type entry struct {
	definition mcp.ToolDefinition
	handler    HandlerFunc
}

// Registry holds tool definitions and their handlers. Listing
// preserves registration order.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]entry
	order   []string
}

// NewRegistry creates an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]entry),
	}
}

// Register adds a tool. Re-registering a name replaces the handler but
// keeps the original position.
func (r *Registry) Register(def mcp.ToolDefinition, handler HandlerFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.entries[def.Name]; !exists {
		r.order = append(r.order, def.Name)
	}
	r.entries[def.Name] = entry{definition: def, handler: handler}
}

// Get returns the handler for the named tool.
func (r *Registry) Get(name string) (HandlerFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return e.handler, true
}

// List returns the definitions of all registered tools in registration
// order.
func (r *Registry) List() []mcp.ToolDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]mcp.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.entries[name].definition)
	}
	return defs
}
