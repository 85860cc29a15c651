package ports

import (
	"time"

	"github.com/quorumbank/teller/pkg/domain"
)

// Observer receives lifecycle notifications from the engine and coordinator.
// Implementations must be cheap and must not block; they are called inline
// while the per-thread lock is held.
type Observer interface {
	TurnStarted(threadID string)
	StepAdvanced(threadID string, from, to domain.Step)
	ToolInvoked(threadID, tool string, err error, elapsed time.Duration)
	TurnFinished(threadID string, kind domain.OutcomeKind, elapsed time.Duration)
}

// NopObserver discards all notifications.
type NopObserver struct{}

func (NopObserver) TurnStarted(string)                                  {}
func (NopObserver) StepAdvanced(string, domain.Step, domain.Step)       {}
func (NopObserver) ToolInvoked(string, string, error, time.Duration)    {}
func (NopObserver) TurnFinished(string, domain.OutcomeKind, time.Duration) {}
