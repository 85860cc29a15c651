// Package memory provides non-durable in-process adapters: a checkpoint
// store and a transcript log. Best suited for tests and embedded use.
package memory

import (
	"context"
	"sync"

	"github.com/quorumbank/teller/pkg/domain"
	"github.com/quorumbank/teller/pkg/ports"
)

// Store implements ports.CheckpointStore in memory.
// Safe for concurrent use.
type Store struct {
	mu   sync.RWMutex
	data map[string]*domain.WorkflowState
}

// NewStore creates an empty in-memory checkpoint store.
func NewStore() *Store {
	return &Store{data: make(map[string]*domain.WorkflowState)}
}

// Save replaces the current checkpoint after the sequence guard passes.
func (s *Store) Save(ctx context.Context, threadID string, state *domain.WorkflowState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, havePrev := s.data[threadID]
	var prevSeq uint64
	if havePrev {
		prevSeq = prev.TurnSequence
	}
	if err := ports.CheckSequence(prevSeq, havePrev, state.TurnSequence); err != nil {
		return err
	}

	// Store a copy so the caller can't mutate the snapshot afterwards.
	s.data[threadID] = state.Clone()
	return nil
}

// Load retrieves a copy of the current checkpoint.
func (s *Store) Load(ctx context.Context, threadID string) (*domain.WorkflowState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, ok := s.data[threadID]
	if !ok {
		return nil, domain.ErrThreadNotFound
	}
	return state.Clone(), nil
}

// Delete removes the checkpoint.
func (s *Store) Delete(ctx context.Context, threadID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, threadID)
	return nil
}

// List returns the thread IDs with a checkpoint.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	threads := make([]string, 0, len(s.data))
	for id := range s.data {
		threads = append(threads, id)
	}
	return threads, nil
}
