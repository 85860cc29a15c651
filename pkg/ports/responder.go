package ports

import (
	"context"

	"github.com/quorumbank/teller/pkg/domain"
)

// Responder turns a response context into user-visible text.
// It is pure formatting and never fails: a missing context value degrades to
// a placeholder (or the fallback message), not an error.
type Responder interface {
	Render(ctx context.Context, rc domain.ResponseContext) string
}
