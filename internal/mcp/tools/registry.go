package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/roivaz/raindrop-mcp/internal/raindrop"
)

// Handler is implemented by every tool adapter.
type Handler interface {
	ToolAdapter(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error)
}

// Registry is the closed dispatch table of the adapter's operations. Lookup
// is by exact name; an unknown name yields an unknown_tool error rather than
// any default behavior.
type Registry struct {
	handlers map[string]Handler
	names    []string
}

func NewRegistry() *Registry {
	return &Registry{handlers: map[string]Handler{}}
}

func (r *Registry) Register(name string, h Handler) {
	if _, exists := r.handlers[name]; !exists {
		r.names = append(r.names, name)
	}
	r.handlers[name] = h
}

// Names returns the registered tool names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Dispatch routes a call to its handler.
func (r *Registry) Dispatch(ctx context.Context, name string, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	h, ok := r.handlers[name]
	if !ok {
		return toolError(raindrop.Errorf(raindrop.KindUnknownTool, "tool %q is not registered", name)), nil
	}
	return h.ToolAdapter(ctx, req)
}
