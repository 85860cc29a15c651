// Package session hosts the Coordinator, the public entry point of teller.
//
// The Coordinator wraps one engine invocation with everything a turn needs
// around it: per-thread mutual exclusion, checkpoint load/save, optional
// distributed locking across replicas, transcript logging and lifecycle
// observation. Its single most important property is that at most one turn
// per thread is ever in flight.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/quorumbank/teller/internal/engine"
	"github.com/quorumbank/teller/internal/logging"
	"github.com/quorumbank/teller/pkg/domain"
	"github.com/quorumbank/teller/pkg/ports"
)

// lockEntry holds the per-thread mutex and its reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Coordinator serializes turns per thread and manages checkpoint lifecycle.
type Coordinator struct {
	store  ports.CheckpointStore
	engine *engine.Engine

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker     ports.DistributedLocker
	lockTTL    time.Duration
	transcript ports.TranscriptLog
	observer   ports.Observer
	logger     *slog.Logger

	// blocking makes a contended ProcessTurn wait for the in-flight turn
	// instead of failing fast with Busy.
	blocking bool
}

// Option configures the Coordinator.
type Option func(*Coordinator)

// WithLocker enables distributed locking for multi-replica deployments.
func WithLocker(l ports.DistributedLocker) Option {
	return func(c *Coordinator) { c.locker = l }
}

// WithLockTTL overrides the distributed lock TTL (default 30s).
func WithLockTTL(ttl time.Duration) Option {
	return func(c *Coordinator) { c.lockTTL = ttl }
}

// WithTranscript records user and assistant messages for display layers.
func WithTranscript(t ports.TranscriptLog) Option {
	return func(c *Coordinator) { c.transcript = t }
}

// WithObserver registers lifecycle hooks.
func WithObserver(o ports.Observer) Option {
	return func(c *Coordinator) { c.observer = o }
}

// WithLogger sets a structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Coordinator) { c.logger = l }
}

// WithBlocking makes contended turns wait instead of returning Busy.
func WithBlocking() Option {
	return func(c *Coordinator) { c.blocking = true }
}

// NewCoordinator creates a Coordinator around a store and an engine.
func NewCoordinator(store ports.CheckpointStore, eng *engine.Engine, opts ...Option) *Coordinator {
	c := &Coordinator{
		store:    store,
		engine:   eng,
		locks:    make(map[string]*lockEntry),
		lockTTL:  30 * time.Second,
		observer: ports.NopObserver{},
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ProcessTurn runs one user turn to completion or to a pause point.
//
// A second call for the same thread while one is in flight either waits
// (WithBlocking) or returns a Busy outcome together with domain.ErrBusy.
// On every exit path a consistent checkpoint is persisted: the successor
// state on success, the pre-turn state unchanged if the engine panicked.
func (c *Coordinator) ProcessTurn(ctx context.Context, turn domain.TurnInput) (domain.TurnOutcome, error) {
	if turn.ThreadID == "" {
		return domain.TurnOutcome{}, fmt.Errorf("turn input: thread id is required")
	}
	if turn.UserID == "" {
		return domain.TurnOutcome{}, fmt.Errorf("turn input: user id is required")
	}

	entry := c.acquire(turn.ThreadID)
	if c.blocking {
		entry.mu.Lock()
	} else if !entry.mu.TryLock() {
		c.release(turn.ThreadID)
		return domain.TurnOutcome{
			Kind:    domain.OutcomeError,
			Code:    domain.CodeBusy,
			Message: "Another request for this conversation is in progress. Please retry shortly.",
		}, domain.ErrBusy
	}
	defer func() {
		entry.mu.Unlock()
		c.release(turn.ThreadID)
	}()

	if c.locker != nil {
		unlock, err := c.locker.Lock(ctx, turn.ThreadID, c.lockTTL)
		if err != nil {
			return domain.TurnOutcome{}, fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			if err := unlock(ctx); err != nil {
				c.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"thread_id", turn.ThreadID,
					"err", err,
				)
			}
		}()
	}

	started := time.Now()
	c.observer.TurnStarted(turn.ThreadID)

	prev, err := c.store.Load(ctx, turn.ThreadID)
	if err != nil && err != domain.ErrThreadNotFound {
		return domain.TurnOutcome{}, fmt.Errorf("failed to load checkpoint: %w", err)
	}

	next, outcome := c.runEngine(ctx, prev, turn)

	if err := c.store.Save(ctx, turn.ThreadID, next); err != nil {
		if err == domain.ErrConcurrentModification {
			return domain.TurnOutcome{
				Kind:    domain.OutcomeError,
				Code:    domain.CodeConcurrentModification,
				Message: "This conversation was updated by another request. Please retry.",
			}, err
		}
		return domain.TurnOutcome{}, fmt.Errorf("failed to save checkpoint: %w", err)
	}

	c.appendTranscript(ctx, turn, outcome)
	c.observer.TurnFinished(turn.ThreadID, outcome.Kind, time.Since(started))

	return outcome, nil
}

// Resume feeds an answer or confirmation into a paused thread.
func (c *Coordinator) Resume(ctx context.Context, threadID, userID, feedback string) (domain.TurnOutcome, error) {
	return c.ProcessTurn(ctx, domain.TurnInput{
		ThreadID: threadID,
		UserID:   userID,
		Feedback: feedback,
	})
}

// Inspect returns the current snapshot for diagnostics.
// Returns domain.ErrThreadNotFound when the thread has no checkpoint.
func (c *Coordinator) Inspect(ctx context.Context, threadID string) (*domain.WorkflowState, error) {
	return c.store.Load(ctx, threadID)
}

// History returns the display transcript for a thread, if a log is set.
func (c *Coordinator) History(ctx context.Context, threadID string) ([]ports.TranscriptEntry, error) {
	if c.transcript == nil {
		return nil, nil
	}
	return c.transcript.History(ctx, threadID)
}

// runEngine shields the turn against an engine panic: the pre-turn state is
// kept unchanged so the checkpoint stays consistent.
func (c *Coordinator) runEngine(ctx context.Context, prev *domain.WorkflowState, turn domain.TurnInput) (next *domain.WorkflowState, outcome domain.TurnOutcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("engine panic recovered", "thread_id", turn.ThreadID, "panic", r)
			if prev != nil {
				next = prev
			} else {
				next = domain.NewState()
			}
			outcome = domain.TurnOutcome{
				Kind:    domain.OutcomeError,
				Code:    domain.CodeInternal,
				Message: "Sorry, something went wrong processing that request.",
			}
		}
	}()
	next, outcome = c.engine.Run(ctx, prev, turn)
	return next, outcome
}

func (c *Coordinator) appendTranscript(ctx context.Context, turn domain.TurnInput, outcome domain.TurnOutcome) {
	if c.transcript == nil {
		return
	}
	now := time.Now()
	if text := turn.Answer(); text != "" {
		if err := c.transcript.Append(ctx, turn.ThreadID, ports.TranscriptEntry{Role: "user", Text: text, At: now}); err != nil {
			c.logger.Warn("failed to append user transcript entry", "thread_id", turn.ThreadID, "err", err)
		}
	}
	if err := c.transcript.Append(ctx, turn.ThreadID, ports.TranscriptEntry{Role: "assistant", Text: outcome.Message, At: now}); err != nil {
		c.logger.Warn("failed to append assistant transcript entry", "thread_id", turn.ThreadID, "err", err)
	}
}

// acquire gets or creates a lock entry and increments its reference count.
func (c *Coordinator) acquire(threadID string) *lockEntry {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.locks[threadID]
	if !exists {
		entry = &lockEntry{}
		c.locks[threadID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and garbage collects the entry.
func (c *Coordinator) release(threadID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.locks[threadID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(c.locks, threadID)
	}
}
