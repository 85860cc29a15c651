package file

import (
	"context"
	"os"
	"path/filepath"
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
	store := NewStore(t.TempDir())
	ctx := context.Background()

	state := stateAt(domain.StepAwaitingConfirmation, 0)
	state.Intent = "transfer_funds"
	state.CollectedData["recipient"] = "alice-savings"
	state.CollectedData["amount"] = "250"
	state.PendingQuestion = &domain.PendingQuestion{Confirm: true, Prompt: "Proceed? (yes/no)"}

	require.NoError(t, store.Save(ctx, "t1", state))

	loaded, err := store.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, state.Intent, loaded.Intent)
	assert.Equal(t, state.CollectedData, loaded.CollectedData)
	require.NotNil(t, loaded.PendingQuestion)
	assert.True(t, loaded.PendingQuestion.Confirm)
	assert.Equal(t, domain.StepAwaitingConfirmation, loaded.CurrentStep)
}

func TestStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first := NewStore(dir)
	require.NoError(t, first.Save(ctx, "t1", stateAt(domain.StepAwaitingInput, 0)))

	// A fresh store over the same directory sees the checkpoint.
	second := NewStore(dir)
	loaded, err := second.Load(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepAwaitingInput, loaded.CurrentStep)
}

func TestStore_SequenceGuard(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	assert.ErrorIs(t, store.Save(ctx, "t1", stateAt(domain.StepDone, 5)), domain.ErrConcurrentModification)
	require.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepAwaitingInput, 0)))
	require.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepAwaitingInput, 1)))
	assert.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepAwaitingInput, 1)), "no-progress re-save")
	assert.ErrorIs(t, store.Save(ctx, "t1", stateAt(domain.StepDone, 3)), domain.ErrConcurrentModification)
}

func TestStore_EmptyThreadID(t *testing.T) {
	store := NewStore(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.Save(ctx, "", stateAt(domain.StepStart, 0)))
	_, err := store.Load(ctx, "")
	assert.Error(t, err)
}

func TestStore_DeleteAndList(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "t1", stateAt(domain.StepDone, 0)))
	require.NoError(t, store.Save(ctx, "t2", stateAt(domain.StepDone, 0)))

	// Unrelated files are not reported as threads.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0644))

	threads, err := store.List(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"t1", "t2"}, threads)

	require.NoError(t, store.Delete(ctx, "t1"))
	_, err = store.Load(ctx, "t1")
	assert.ErrorIs(t, err, domain.ErrThreadNotFound)

	assert.NoError(t, store.Delete(ctx, "t1"), "deleting a missing thread is not an error")
}

func TestStore_ListOnMissingDirectory(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "never-created"))
	threads, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, threads)
}

func TestStore_NoTempFilesLeftBehind(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, store.Save(context.Background(), "t1", stateAt(domain.StepDone, 0)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Name(), ".tmp")
	}
}
