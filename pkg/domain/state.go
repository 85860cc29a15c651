package domain

import "time"

// Step identifies a position in the workflow state machine.
type Step string

const (
	StepStart                Step = "start"
	StepAnalyzeIntent        Step = "analyze_intent"
	StepCheckData            Step = "check_data"
	StepAwaitingInput        Step = "awaiting_input"
	StepExecuteTools         Step = "execute_tools"
	StepAwaitingConfirmation Step = "awaiting_confirmation"
	StepGenerateResponse     Step = "generate_response"
	StepError                Step = "error"
	StepDone                 Step = "done"
)

// Paused reports whether the step is a pause point where the engine has
// handed control back to the user and expects a follow-up turn.
func (s Step) Paused() bool {
	return s == StepAwaitingInput || s == StepAwaitingConfirmation
}

// Terminal reports whether the workflow has finished for this goal.
func (s Step) Terminal() bool {
	return s == StepDone
}

// PendingQuestion describes what the engine is waiting for.
// Exactly one of FieldName or Confirm is meaningful: a data question names a
// single field, a confirmation question sets Confirm.
type PendingQuestion struct {
	FieldName string `json:"field_name,omitempty"`
	Prompt    string `json:"prompt"`
	Confirm   bool   `json:"confirm,omitempty"`
}

// StateError captures the last failure recorded on the workflow.
// Code is stable and machine readable; Message is for humans.
type StateError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WorkflowState is the full snapshot needed to resume execution of one
// conversation goal across stateless request boundaries.
//
// Invariant: PendingQuestion is non-nil if and only if CurrentStep is
// StepAwaitingInput or StepAwaitingConfirmation.
// Invariant: CollectedData only grows or overwrites existing keys; fields are
// never silently dropped while the goal is in progress.
type WorkflowState struct {
	CurrentStep Step   `json:"current_step"`
	Intent      string `json:"intent,omitempty"`

	// CollectedData maps field name to the value supplied by the user
	// (or filled from schema defaults).
	CollectedData map[string]any `json:"collected_data"`

	// ToolResults maps tool name to its last result payload. A tool whose
	// result is already present is not re-invoked within the same goal.
	ToolResults map[string]any `json:"tool_results,omitempty"`

	PendingQuestion *PendingQuestion `json:"pending_question,omitempty"`

	// Confirmed records that an explicit affirmative was given for the
	// current goal. Commit tools only run once this is set (or the intent
	// does not require confirmation at all).
	Confirmed bool `json:"confirmed,omitempty"`

	// Error holds the last failure, cleared on successful progress.
	Error *StateError `json:"error,omitempty"`

	// TurnSequence counts committed turns for this thread. It starts at 0
	// for a brand-new thread and increases by exactly one per turn that
	// makes progress; a re-asked confirmation does not advance it.
	TurnSequence uint64 `json:"turn_sequence"`
}

// NewState creates a clean state positioned at the start step.
func NewState() *WorkflowState {
	return &WorkflowState{
		CurrentStep:   StepStart,
		CollectedData: make(map[string]any),
		ToolResults:   make(map[string]any),
	}
}

// Clone returns a copy with deep-copied maps so the original snapshot stays
// untouched while a turn mutates the copy.
func (s *WorkflowState) Clone() *WorkflowState {
	if s == nil {
		return nil
	}
	next := *s
	next.CollectedData = make(map[string]any, len(s.CollectedData))
	for k, v := range s.CollectedData {
		next.CollectedData[k] = v
	}
	next.ToolResults = make(map[string]any, len(s.ToolResults))
	for k, v := range s.ToolResults {
		next.ToolResults[k] = v
	}
	if s.PendingQuestion != nil {
		q := *s.PendingQuestion
		next.PendingQuestion = &q
	}
	if s.Error != nil {
		e := *s.Error
		next.Error = &e
	}
	return &next
}

// Checkpoint is the persisted unit: one current snapshot per thread,
// replaced on every save (last-write-wins, not an append-only log).
type Checkpoint struct {
	ThreadID string         `json:"thread_id"`
	State    *WorkflowState `json:"state"`
	SavedAt  time.Time      `json:"saved_at"`
}
