package ports

import (
	"context"

	"github.com/quorumbank/teller/pkg/domain"
)

// CheckpointStore persists the current workflow snapshot per thread.
// Exactly one checkpoint is current per thread; Save replaces it.
type CheckpointStore interface {
	// Load retrieves the current state for a thread.
	// Returns domain.ErrThreadNotFound if the thread has no checkpoint.
	Load(ctx context.Context, threadID string) (*domain.WorkflowState, error)

	// Save replaces the current checkpoint for a thread.
	//
	// Implementations must enforce the sequence guard: for a brand-new
	// thread the incoming TurnSequence must be 0; otherwise it must equal
	// the stored sequence (no-progress re-save) or exceed it by exactly
	// one. Any other value fails with domain.ErrConcurrentModification.
	Save(ctx context.Context, threadID string, state *domain.WorkflowState) error

	// Delete removes the checkpoint for a thread.
	Delete(ctx context.Context, threadID string) error

	// List returns the thread IDs with a current checkpoint.
	List(ctx context.Context) ([]string, error)
}

// CheckSequence implements the shared sequence-guard rule for stores.
// prev is the stored sequence; havePrev is false when the thread is brand new.
func CheckSequence(prev uint64, havePrev bool, next uint64) error {
	if !havePrev {
		if next != 0 {
			return domain.ErrConcurrentModification
		}
		return nil
	}
	if next != prev && next != prev+1 {
		return domain.ErrConcurrentModification
	}
	return nil
}
