package engine

import (
	"context"
	"errors"
	"time"

	"github.com/quorumbank/teller/pkg/domain"
)

// runTools invokes each named tool in order, retrying a failing invocation
// up to the schema's bound (synchronous sequential retry, no backoff).
// Tools whose result is already recorded for this goal are skipped, which
// makes re-entry after a pause or a mid-turn timeout idempotent.
//
// Partial progress is kept on the state: results of tools that succeeded
// before a failure survive, so a retried turn does not redo them.
func (e *Engine) runTools(ctx context.Context, turn domain.TurnInput, state *domain.WorkflowState, schema *domain.IntentSchema, tools []string) *domain.StateError {
	for _, name := range tools {
		if _, done := state.ToolResults[name]; done {
			continue
		}
		result, terr := e.invokeWithRetry(ctx, turn, state, schema, name)
		if terr != nil {
			return terr
		}
		state.ToolResults[name] = result
	}
	return nil
}

func (e *Engine) invokeWithRetry(ctx context.Context, turn domain.TurnInput, state *domain.WorkflowState, schema *domain.IntentSchema, name string) (any, *domain.StateError) {
	params := make(map[string]any, len(state.CollectedData)+2)
	for k, v := range state.CollectedData {
		params[k] = v
	}
	params["user_id"] = turn.UserID
	params["intent"] = state.Intent

	attempts := schema.MaxToolRetries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		started := time.Now()
		result, err := e.invoker.Invoke(ctx, name, params)
		e.observer.ToolInvoked(turn.ThreadID, name, err, time.Since(started))
		if err == nil {
			return result, nil
		}
		lastErr = err

		// A deadline hit aborts the tool call with no further retry.
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
			e.logger.Warn("tool call timed out", "tool", name, "thread_id", turn.ThreadID, "err", err)
			return nil, &domain.StateError{Code: domain.CodeTimeout, Message: "tool " + name + " timed out"}
		}

		e.logger.Warn("tool call failed", "tool", name, "thread_id", turn.ThreadID, "attempt", attempt+1, "err", err)
	}

	var toolErr *domain.ToolError
	if errors.As(lastErr, &toolErr) {
		// Preserve the tool's own failure code.
		return nil, &domain.StateError{Code: toolErr.Code, Message: toolErr.Message}
	}
	return nil, &domain.StateError{Code: domain.CodeToolFailed, Message: lastErr.Error()}
}
