package teller

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/quorumbank/teller/internal/engine"
	"github.com/quorumbank/teller/pkg/adapters/memory"
	"github.com/quorumbank/teller/pkg/catalog"
	"github.com/quorumbank/teller/pkg/domain"
	"github.com/quorumbank/teller/pkg/ports"
	"github.com/quorumbank/teller/pkg/registry"
	"github.com/quorumbank/teller/pkg/responder"
	"github.com/quorumbank/teller/pkg/session"
)

// Version is the library version, reported by the CLI and the MCP server.
const Version = "0.3.0"

// Agent is the high-level entry point for the teller library.
// It wires the workflow engine, intent catalog, tool invoker, responder and
// checkpoint store behind a single ProcessTurn API.
type Agent struct {
	coord      *session.Coordinator
	catalog    *catalog.Catalog
	registry   *registry.Registry
	store      ports.CheckpointStore
	invoker    ports.ToolInvoker
	responder  ports.Responder
	classifier ports.IntentClassifier
	observer   ports.Observer
	transcript ports.TranscriptLog
	locker     ports.DistributedLocker
	lockTTL    time.Duration
	blocking   bool
	logger     *slog.Logger
}

// Option defines a functional option for configuring the Agent.
type Option func(*Agent)

// WithStore sets the checkpoint store (default: in-memory).
func WithStore(s ports.CheckpointStore) Option {
	return func(a *Agent) { a.store = s }
}

// WithCatalog replaces the built-in intent catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(a *Agent) { a.catalog = c }
}

// WithToolInvoker injects a custom invoker, bypassing the in-process registry.
func WithToolInvoker(i ports.ToolInvoker) Option {
	return func(a *Agent) { a.invoker = i }
}

// WithResponder replaces the template responder.
func WithResponder(r ports.Responder) Option {
	return func(a *Agent) { a.responder = r }
}

// WithClassifier replaces the catalog's keyword classifier.
func WithClassifier(c ports.IntentClassifier) Option {
	return func(a *Agent) { a.classifier = c }
}

// WithObserver registers lifecycle hooks.
func WithObserver(o ports.Observer) Option {
	return func(a *Agent) { a.observer = o }
}

// WithTranscript records user and assistant messages for display layers.
func WithTranscript(t ports.TranscriptLog) Option {
	return func(a *Agent) { a.transcript = t }
}

// WithLocker enables distributed locking for multi-replica deployments.
func WithLocker(l ports.DistributedLocker) Option {
	return func(a *Agent) { a.locker = l }
}

// WithLockTTL overrides the distributed lock TTL.
func WithLockTTL(ttl time.Duration) Option {
	return func(a *Agent) { a.lockTTL = ttl }
}

// WithBlocking makes contended turns wait instead of returning Busy.
func WithBlocking() Option {
	return func(a *Agent) { a.blocking = true }
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Agent) { a.logger = logger }
}

// New initializes a new teller Agent.
// By default it uses the built-in banking catalog, an empty in-process tool
// registry, a template responder and an in-memory store with transcript.
func New(opts ...Option) *Agent {
	a := &Agent{}
	for _, opt := range opts {
		opt(a)
	}

	if a.catalog == nil {
		a.catalog = catalog.Default()
	}
	if a.invoker == nil {
		a.registry = registry.New()
		a.invoker = a.registry
	}
	if a.responder == nil {
		a.responder = responder.New()
	}
	if a.classifier == nil {
		a.classifier = a.catalog
	}
	if a.store == nil {
		a.store = memory.NewStore()
	}
	if a.transcript == nil {
		a.transcript = memory.NewTranscript()
	}
	if a.logger == nil {
		a.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	if a.observer == nil {
		a.observer = ports.NopObserver{}
	}

	eng := engine.New(a.catalog, a.invoker, a.responder,
		engine.WithClassifier(a.classifier),
		engine.WithObserver(a.observer),
		engine.WithLogger(a.logger),
	)

	coordOpts := []session.Option{
		session.WithTranscript(a.transcript),
		session.WithObserver(a.observer),
		session.WithLogger(a.logger),
	}
	if a.locker != nil {
		coordOpts = append(coordOpts, session.WithLocker(a.locker))
	}
	if a.lockTTL > 0 {
		coordOpts = append(coordOpts, session.WithLockTTL(a.lockTTL))
	}
	if a.blocking {
		coordOpts = append(coordOpts, session.WithBlocking())
	}

	a.coord = session.NewCoordinator(a.store, eng, coordOpts...)
	return a
}

// ProcessTurn runs one user turn against the agent.
func (a *Agent) ProcessTurn(ctx context.Context, turn domain.TurnInput) (domain.TurnOutcome, error) {
	return a.coord.ProcessTurn(ctx, turn)
}

// Resume feeds an answer or confirmation into a paused thread.
func (a *Agent) Resume(ctx context.Context, threadID, userID, feedback string) (domain.TurnOutcome, error) {
	return a.coord.Resume(ctx, threadID, userID, feedback)
}

// Inspect returns a thread's current workflow state.
func (a *Agent) Inspect(ctx context.Context, threadID string) (*domain.WorkflowState, error) {
	return a.coord.Inspect(ctx, threadID)
}

// History returns a thread's display transcript.
func (a *Agent) History(ctx context.Context, threadID string) ([]ports.TranscriptEntry, error) {
	return a.coord.History(ctx, threadID)
}

// RegisterTool adds a tool to the in-process registry. It is a no-op when a
// custom invoker was injected with WithToolInvoker.
func (a *Agent) RegisterTool(name string, fn registry.ToolFunc) {
	if a.registry != nil {
		a.registry.Register(name, fn)
	}
}

// Catalog returns the intent catalog in use.
func (a *Agent) Catalog() *catalog.Catalog {
	return a.catalog
}

// Coordinator exposes the underlying session coordinator, for transports
// that mount it directly (HTTP, MCP).
func (a *Agent) Coordinator() *session.Coordinator {
	return a.coord
}
