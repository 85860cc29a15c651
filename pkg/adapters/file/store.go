// Package file persists checkpoints as JSON files, one per thread, in a
// configured directory. It offers embedded durability with zero
// infrastructure; use the redis adapter for multi-replica deployments.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/quorumbank/teller/pkg/domain"
	"github.com/quorumbank/teller/pkg/ports"
)

// Store implements ports.CheckpointStore on the local filesystem.
type Store struct {
	basePath string
}

// NewStore creates a file store rooted at basePath.
// If basePath is empty, it defaults to ".teller/threads".
func NewStore(basePath string) *Store {
	if basePath == "" {
		basePath = filepath.Join(".teller", "threads")
	}
	return &Store{basePath: basePath}
}

func (s *Store) path(threadID string) string {
	return filepath.Join(s.basePath, threadID+".json")
}

// Save writes the checkpoint atomically: the JSON is written to a temp file
// and renamed over the current one, so a crash mid-write never leaves a
// half-written checkpoint behind.
func (s *Store) Save(ctx context.Context, threadID string, state *domain.WorkflowState) error {
	if threadID == "" {
		return fmt.Errorf("threadID cannot be empty")
	}

	prev, err := s.Load(ctx, threadID)
	havePrev := err == nil
	if err != nil && err != domain.ErrThreadNotFound {
		return err
	}
	var prevSeq uint64
	if havePrev {
		prevSeq = prev.TurnSequence
	}
	if err := ports.CheckSequence(prevSeq, havePrev, state.TurnSequence); err != nil {
		return err
	}

	if err := os.MkdirAll(s.basePath, 0755); err != nil {
		return fmt.Errorf("failed to ensure thread directory: %w", err)
	}

	data, err := json.MarshalIndent(domain.Checkpoint{ThreadID: threadID, State: state, SavedAt: time.Now().UTC()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal checkpoint: %w", err)
	}

	tmp, err := os.CreateTemp(s.basePath, threadID+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp checkpoint: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write checkpoint: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close checkpoint: %w", err)
	}
	if err := os.Rename(tmpName, s.path(threadID)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace checkpoint: %w", err)
	}
	return nil
}

// Load reads the current checkpoint for a thread.
func (s *Store) Load(ctx context.Context, threadID string) (*domain.WorkflowState, error) {
	if threadID == "" {
		return nil, fmt.Errorf("threadID cannot be empty")
	}

	data, err := os.ReadFile(s.path(threadID))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrThreadNotFound
		}
		return nil, fmt.Errorf("failed to read checkpoint file: %w", err)
	}

	var cp domain.Checkpoint
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal checkpoint: %w", err)
	}
	if cp.State == nil {
		return nil, fmt.Errorf("checkpoint file for %s has no state", threadID)
	}
	return cp.State, nil
}

// Delete removes the checkpoint file.
func (s *Store) Delete(ctx context.Context, threadID string) error {
	if threadID == "" {
		return fmt.Errorf("threadID cannot be empty")
	}
	err := os.Remove(s.path(threadID))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete checkpoint file: %w", err)
	}
	return nil
}

// List returns the thread IDs with a checkpoint file.
func (s *Store) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.basePath)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list checkpoints: %w", err)
	}

	var threads []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		threads = append(threads, strings.TrimSuffix(name, ".json"))
	}
	return threads, nil
}
