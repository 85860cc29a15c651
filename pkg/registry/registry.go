// Package registry provides an in-process tool invoker: a name-to-function
// table for the banking operations the engine executes. Hosts that call out
// over HTTP or a tool protocol implement ports.ToolInvoker themselves; the
// registry covers embedded and test deployments.
package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/quorumbank/teller/pkg/domain"
)

// ToolFunc is one tool implementation. Failures should be returned as
// *domain.ToolError so the failure code survives to the caller.
type ToolFunc func(ctx context.Context, params map[string]any) (any, error)

// Registry implements ports.ToolInvoker over registered functions.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]ToolFunc
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{tools: make(map[string]ToolFunc)}
}

// Register adds a tool, overwriting any existing one with the same name.
func (r *Registry) Register(name string, fn ToolFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[name] = fn
}

// Names returns the registered tool names.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tools))
	for name := range r.tools {
		names = append(names, name)
	}
	return names
}

// Invoke looks up a tool by name and executes it.
func (r *Registry) Invoke(ctx context.Context, name string, params map[string]any) (any, error) {
	r.mu.RLock()
	fn, ok := r.tools[name]
	r.mu.RUnlock()

	if !ok {
		return nil, &domain.ToolError{
			Code:    "TOOL_NOT_FOUND",
			Message: fmt.Sprintf("no tool registered under %q", name),
		}
	}
	return fn(ctx, params)
}
