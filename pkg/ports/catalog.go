package ports

import (
	"context"

	"github.com/quorumbank/teller/pkg/domain"
)

// IntentCatalog is the read-only lookup table of intent schemas.
// It is resolved by key and treated as immutable per process.
type IntentCatalog interface {
	// GetSchema returns the schema for an intent key.
	// Returns domain.ErrUnknownIntent if the key is not registered.
	GetSchema(ctx context.Context, intent string) (*domain.IntentSchema, error)
}

// IntentClassifier resolves the intent for a raw user message.
// Classification happens at most once per conversation goal; subsequent
// turns only supply data or confirmation for the same goal.
type IntentClassifier interface {
	// Classify returns the intent key for the text.
	// Returns domain.ErrUnknownIntent when no intent matches.
	Classify(ctx context.Context, text string) (string, error)
}
