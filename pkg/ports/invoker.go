package ports

import "context"

// ToolInvoker executes a named banking operation with parameters.
// Failures are reported as *domain.ToolError so the engine can preserve the
// tool's own failure code; a context deadline aborts the call.
type ToolInvoker interface {
	Invoke(ctx context.Context, name string, params map[string]any) (any, error)
}
