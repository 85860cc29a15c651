// Package responder renders user-visible messages from response contexts.
// It is pure formatting over text/template and never fails: a broken or
// empty template degrades to the context's fallback message, and a missing
// data key renders as a placeholder rather than erroring.
package responder

import (
	"context"
	"log/slog"
	"strings"
	"text/template"

	"github.com/quorumbank/teller/internal/logging"
	"github.com/quorumbank/teller/pkg/domain"
)

// Responder implements ports.Responder with Go templates.
type Responder struct {
	logger *slog.Logger
}

// Option configures the Responder.
type Option func(*Responder)

// WithLogger sets a logger for template failures (rendered output is still
// always produced).
func WithLogger(l *slog.Logger) Option {
	return func(r *Responder) { r.logger = l }
}

// New creates a template responder.
func New(opts ...Option) *Responder {
	r := &Responder{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render produces the message for a response context.
func (r *Responder) Render(ctx context.Context, rc domain.ResponseContext) string {
	if strings.TrimSpace(rc.Template) == "" {
		return rc.Fallback
	}

	tmpl, err := template.New("response").Option("missingkey=zero").Parse(rc.Template)
	if err != nil {
		r.logger.Warn("response template failed to parse", "intent", rc.Intent, "err", err)
		return rc.Fallback
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, rc.Data); err != nil {
		r.logger.Warn("response template failed to execute", "intent", rc.Intent, "err", err)
		return rc.Fallback
	}

	// missingkey=zero renders absent values as "<no value>"; degrade those
	// to a neutral placeholder instead of leaking template internals.
	return strings.ReplaceAll(sb.String(), "<no value>", "…")
}
