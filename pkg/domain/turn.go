package domain

// TurnInput is one inbound user message.
type TurnInput struct {
	// ThreadID is the caller-supplied, stable conversation identifier.
	ThreadID string `json:"thread_id"`

	// UserID is the authenticated principal. It is required and never
	// inferred from the message text.
	UserID string `json:"user_id"`

	// RawText is the message as typed by the user.
	RawText string `json:"text"`

	// SuppliedIntent, when set, is used verbatim as the resolved intent
	// (the caller has already classified the message).
	SuppliedIntent string `json:"intent,omitempty"`

	// Feedback carries the answer to a pending question: free text for a
	// data question, or yes/no vocabulary for a confirmation. When empty,
	// RawText is used in its place on resume.
	Feedback string `json:"feedback,omitempty"`
}

// Answer returns the text to interpret as the reply to a pending question.
func (t TurnInput) Answer() string {
	if t.Feedback != "" {
		return t.Feedback
	}
	return t.RawText
}

// OutcomeKind discriminates the possible results of processing a turn.
type OutcomeKind string

const (
	OutcomeFinal             OutcomeKind = "final"
	OutcomeNeedsInput        OutcomeKind = "needs_input"
	OutcomeNeedsConfirmation OutcomeKind = "needs_confirmation"
	OutcomeError             OutcomeKind = "error"
)

// TurnOutcome is the result of one processed turn.
type TurnOutcome struct {
	Kind OutcomeKind `json:"kind"`

	// Message is the user-visible text (final answer, question or failure).
	Message string `json:"message"`

	// FieldName is set for needs_input: the single field being asked for.
	FieldName string `json:"field_name,omitempty"`

	// Code is set for error outcomes: a stable machine-readable code.
	Code string `json:"code,omitempty"`
}
