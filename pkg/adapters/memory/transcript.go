package memory

import (
	"context"
	"sync"

	"github.com/quorumbank/teller/pkg/ports"
)

// Transcript implements ports.TranscriptLog in memory.
type Transcript struct {
	mu      sync.RWMutex
	entries map[string][]ports.TranscriptEntry
}

// NewTranscript creates an empty transcript log.
func NewTranscript() *Transcript {
	return &Transcript{entries: make(map[string][]ports.TranscriptEntry)}
}

// Append adds one entry to a thread's history.
func (t *Transcript) Append(ctx context.Context, threadID string, entry ports.TranscriptEntry) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries[threadID] = append(t.entries[threadID], entry)
	return nil
}

// History returns a copy of a thread's entries in append order.
func (t *Transcript) History(ctx context.Context, threadID string) ([]ports.TranscriptEntry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	src := t.entries[threadID]
	out := make([]ports.TranscriptEntry, len(src))
	copy(out, src)
	return out, nil
}
