package memory

import (
	"context"
	"testing"

	"github.com/quorumbank/teller/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stateAt(step domain.Step, seq uint64) *domain.WorkflowState {
	s := domain.NewState()
	s.CurrentStep = step
	s.TurnSequence = seq
	return s
}

func TestStore_SaveLoadRoundtrip(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	state := stateAt(domain.StepAwaitingInput, 0)
	state.Intent = "transfer_funds"
	state.CollectedData["recipient"] = "alice-savings"
	state.PendingQuestion = &domain.PendingQuestion{FieldName: "amount", Prompt: "How much?"}

	require.NoError(t, store.Save(ctx, "t1", state))

	loaded, err := store.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, state, loaded)
}

func TestStore_LoadUnknownThread(t *testing.T) {
	store := NewStore()
	_, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrThreadNotFound)
}

func TestStore_SequenceGuard(t *testing.T) {
	ctx := context.Background()

	t.Run("new thread must start at zero", func(t *testing.T) {
		store := NewStore()
		assert.ErrorIs(t, store.Save(ctx, "t1", stateAt(domain.StepDone, 1)), domain.ErrConcurrentModification)
		assert.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepDone, 0)))
	})

	t.Run("increment by one is accepted", func(t *testing.T) {
		store := NewStore()
		require.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepAwaitingInput, 0)))
		assert.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepAwaitingInput, 1)))
	})

	t.Run("same sequence re-save is accepted", func(t *testing.T) {
		// An unrecognized confirmation reply re-saves without progress.
		store := NewStore()
		require.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepAwaitingConfirmation, 2)))
		assert.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepAwaitingConfirmation, 2)))
	})

	t.Run("gaps and regressions are rejected", func(t *testing.T) {
		store := NewStore()
		require.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepAwaitingInput, 0)))
		require.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepAwaitingInput, 1)))
		assert.ErrorIs(t, store.Save(ctx, "t1", stateAt(domain.StepDone, 3)), domain.ErrConcurrentModification)
		assert.ErrorIs(t, store.Save(ctx, "t1", stateAt(domain.StepDone, 0)), domain.ErrConcurrentModification)
	})
}

func TestStore_LoadReturnsACopy(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	state := stateAt(domain.StepAwaitingInput, 0)
	state.CollectedData["recipient"] = "alice-savings"
	require.NoError(t, store.Save(ctx, "t1", state))

	loaded, err := store.Load(ctx, "t1")
	require.NoError(t, err)
	loaded.CollectedData["recipient"] = "mallory"

	again, err := store.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, "alice-savings", again.CollectedData["recipient"])
}

func TestStore_DeleteAndList(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepDone, 0)))
	require.NoError(t, store.Save(ctx, "t2", stateAt(domain.StepDone, 0)))

	threads, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"t1", "t2"}, threads)

	require.NoError(t, store.Delete(ctx, "t1"))
	_, err = store.Load(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrThreadNotFound)

	// Delete frees the sequence: the thread can start over at zero.
	assert.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepStart, 0)))
}
