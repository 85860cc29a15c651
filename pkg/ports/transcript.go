package ports

import (
	"context"
	"time"
)

// TranscriptEntry is one message in a thread's display log.
type TranscriptEntry struct {
	Role string    `json:"role"` // "user" or "assistant"
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// TranscriptLog is the append-only per-thread message history kept for
// display purposes. The engine never reads it to make decisions; it exists
// so transports can show the conversation so far.
type TranscriptLog interface {
	Append(ctx context.Context, threadID string, entry TranscriptEntry) error
	History(ctx context.Context, threadID string) ([]TranscriptEntry, error)
}
