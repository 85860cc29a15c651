// Package engine implements the conversation workflow state machine.
//
// One call to Run processes exactly one user turn: it advances the state
// machine from the loaded snapshot until it either completes the goal or
// reaches a pause point (a data question or a confirmation), and returns the
// resulting snapshot plus the outcome for the caller. Persistence, locking
// and transport live elsewhere; the engine is deliberately free of them.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quorumbank/teller/internal/logging"
	"github.com/quorumbank/teller/internal/validate"
	"github.com/quorumbank/teller/pkg/domain"
	"github.com/quorumbank/teller/pkg/ports"
)

// Engine drives the step state machine for one conversation goal.
type Engine struct {
	catalog    ports.IntentCatalog
	invoker    ports.ToolInvoker
	responder  ports.Responder
	classifier ports.IntentClassifier
	observer   ports.Observer
	logger     *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithClassifier sets the intent classifier used when a turn arrives without
// a pre-classified intent.
func WithClassifier(c ports.IntentClassifier) Option {
	return func(e *Engine) { e.classifier = c }
}

// WithObserver registers lifecycle hooks.
func WithObserver(o ports.Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithLogger sets a structured logger for internal events.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// New creates an Engine with the required collaborators.
func New(catalog ports.IntentCatalog, invoker ports.ToolInvoker, responder ports.Responder, opts ...Option) *Engine {
	e := &Engine{
		catalog:   catalog,
		invoker:   invoker,
		responder: responder,
		observer:  ports.NopObserver{},
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run processes one turn against the loaded snapshot (nil for a brand-new
// thread) and returns the successor snapshot plus the turn outcome.
//
// Run never mutates prev; failures are converted into an ERROR-stepped state
// and an error outcome rather than propagated. The returned state always
// carries the correct TurnSequence: incremented by one when the turn made
// progress, unchanged when a confirmation was re-asked.
func (e *Engine) Run(ctx context.Context, prev *domain.WorkflowState, turn domain.TurnInput) (*domain.WorkflowState, domain.TurnOutcome) {
	next, outcome, progressed := e.run(ctx, prev, turn)
	if prev != nil && progressed {
		next.TurnSequence = prev.TurnSequence + 1
	}
	return next, outcome
}

func (e *Engine) run(ctx context.Context, prev *domain.WorkflowState, turn domain.TurnInput) (*domain.WorkflowState, domain.TurnOutcome, bool) {
	threadID := turn.ThreadID

	var next *domain.WorkflowState
	switch {
	case prev == nil:
		next = domain.NewState()

	case prev.CurrentStep == domain.StepAwaitingInput:
		// Re-entry rule: the new turn answers the single pending field and
		// execution resumes at CHECK_DATA, never back at ANALYZE_INTENT.
		next = prev.Clone()
		field := next.PendingQuestion.FieldName
		next.CollectedData[field] = strings.TrimSpace(turn.Answer())
		next.PendingQuestion = nil
		next.Error = nil
		e.advance(threadID, next, domain.StepCheckData)

	case prev.CurrentStep == domain.StepAwaitingConfirmation:
		next = prev.Clone()
		switch classifyConfirmation(turn.Answer()) {
		case verdictAffirmative:
			next.Confirmed = true
			next.PendingQuestion = nil
			next.Error = nil
			e.advance(threadID, next, domain.StepExecuteTools)
		case verdictNegative:
			// Abort path: the goal ends with no side effects and the
			// collected data is discarded.
			next.PendingQuestion = nil
			next.CollectedData = make(map[string]any)
			next.ToolResults = make(map[string]any)
			e.advance(threadID, next, domain.StepDone)
			msg := e.responder.Render(ctx, domain.ResponseContext{
				Intent:   next.Intent,
				Fallback: "Okay, I've cancelled that request. Nothing was changed.",
			})
			return next, domain.TurnOutcome{Kind: domain.OutcomeFinal, Message: msg}, true
		default:
			// Unrecognized reply: re-ask the same confirmation without
			// advancing the turn sequence.
			return next, domain.TurnOutcome{
				Kind:    domain.OutcomeNeedsConfirmation,
				Message: next.PendingQuestion.Prompt,
			}, false
		}

	default:
		// A finished (or crashed mid-error) thread starts a fresh goal but
		// keeps its sequence so checkpoint continuity holds.
		next = domain.NewState()
		next.TurnSequence = prev.TurnSequence
	}

	var schema *domain.IntentSchema

	for {
		switch next.CurrentStep {
		case domain.StepStart:
			e.advance(threadID, next, domain.StepAnalyzeIntent)

		case domain.StepAnalyzeIntent:
			if next.Intent == "" {
				intent, err := e.resolveIntent(ctx, turn)
				if err != nil {
					e.fail(threadID, next, domain.CodeUnknownIntent, err.Error())
					continue
				}
				next.Intent = intent
			}
			e.advance(threadID, next, domain.StepCheckData)

		case domain.StepCheckData:
			var err error
			schema, err = e.loadSchema(ctx, next, schema)
			if err != nil {
				e.fail(threadID, next, domain.CodeUnknownIntent, err.Error())
				continue
			}
			applyDefaults(schema, next.CollectedData)
			res := validate.Validate(schema, next.CollectedData)
			if field, reason, bad := res.First(schema); bad {
				next.PendingQuestion = &domain.PendingQuestion{
					FieldName: field,
					Prompt:    e.fieldPrompt(ctx, schema, next, field, reason),
				}
				e.advance(threadID, next, domain.StepAwaitingInput)
				return next, domain.TurnOutcome{
					Kind:      domain.OutcomeNeedsInput,
					Message:   next.PendingQuestion.Prompt,
					FieldName: field,
				}, true
			}
			e.advance(threadID, next, domain.StepExecuteTools)

		case domain.StepExecuteTools:
			var err error
			schema, err = e.loadSchema(ctx, next, schema)
			if err != nil {
				e.fail(threadID, next, domain.CodeUnknownIntent, err.Error())
				continue
			}
			if failed := e.runTools(ctx, turn, next, schema, schema.ReadTools); failed != nil {
				e.fail(threadID, next, failed.Code, failed.Message)
				continue
			}
			if schema.NeedsConfirmation && !next.Confirmed {
				next.PendingQuestion = &domain.PendingQuestion{
					Confirm: true,
					Prompt:  e.confirmPrompt(ctx, schema, next),
				}
				e.advance(threadID, next, domain.StepAwaitingConfirmation)
				return next, domain.TurnOutcome{
					Kind:    domain.OutcomeNeedsConfirmation,
					Message: next.PendingQuestion.Prompt,
				}, true
			}
			// Commit tools: either no confirmation is required for this
			// intent, or an explicit affirmative was recorded above.
			if failed := e.runTools(ctx, turn, next, schema, schema.CommitTools); failed != nil {
				e.fail(threadID, next, failed.Code, failed.Message)
				continue
			}
			e.advance(threadID, next, domain.StepGenerateResponse)

		case domain.StepGenerateResponse:
			template := ""
			if schema != nil {
				template = schema.ResponseTemplate
			}
			msg := e.responder.Render(ctx, domain.ResponseContext{
				Intent:   next.Intent,
				Template: template,
				Data:     responseData(next),
				Fallback: "All done.",
			})
			e.advance(threadID, next, domain.StepDone)
			return next, domain.TurnOutcome{Kind: domain.OutcomeFinal, Message: msg}, true

		case domain.StepError:
			code := domain.CodeInternal
			detail := ""
			if next.Error != nil {
				code = next.Error.Code
				detail = next.Error.Message
			}
			msg := e.responder.Render(ctx, domain.ResponseContext{
				Intent:   next.Intent,
				Data:     map[string]any{"code": code, "detail": detail},
				Fallback: "Sorry, I couldn't complete that request.",
			})
			e.advance(threadID, next, domain.StepDone)
			return next, domain.TurnOutcome{Kind: domain.OutcomeError, Message: msg, Code: code}, true

		default:
			// Unreachable with a well-formed snapshot; treat as internal.
			e.logger.Error("unexpected workflow step", "step", next.CurrentStep, "thread_id", threadID)
			e.fail(threadID, next, domain.CodeInternal, fmt.Sprintf("unexpected step %q", next.CurrentStep))
		}
	}
}

func (e *Engine) resolveIntent(ctx context.Context, turn domain.TurnInput) (string, error) {
	if turn.SuppliedIntent != "" {
		return turn.SuppliedIntent, nil
	}
	if e.classifier == nil {
		return "", fmt.Errorf("no intent supplied and no classifier configured: %w", domain.ErrUnknownIntent)
	}
	return e.classifier.Classify(ctx, turn.RawText)
}

// loadSchema fetches the intent schema once per turn.
func (e *Engine) loadSchema(ctx context.Context, state *domain.WorkflowState, cached *domain.IntentSchema) (*domain.IntentSchema, error) {
	if cached != nil && cached.Intent == state.Intent {
		return cached, nil
	}
	return e.catalog.GetSchema(ctx, state.Intent)
}

func (e *Engine) advance(threadID string, state *domain.WorkflowState, to domain.Step) {
	from := state.CurrentStep
	state.CurrentStep = to
	e.observer.StepAdvanced(threadID, from, to)
	e.logger.Debug("step advanced", "thread_id", threadID, "from", from, "to", to)
}

func (e *Engine) fail(threadID string, state *domain.WorkflowState, code, message string) {
	state.Error = &domain.StateError{Code: code, Message: message}
	state.PendingQuestion = nil
	e.advance(threadID, state, domain.StepError)
}

func (e *Engine) fieldPrompt(ctx context.Context, schema *domain.IntentSchema, state *domain.WorkflowState, field, reason string) string {
	fallback := fmt.Sprintf("Please provide %s.", field)
	if reason != "required" {
		fallback = fmt.Sprintf("The value for %s %s. Please provide it again.", field, reason)
	}
	return e.responder.Render(ctx, domain.ResponseContext{
		Intent:   state.Intent,
		Template: schema.Prompts[field],
		Data:     responseData(state),
		Fallback: fallback,
	})
}

func (e *Engine) confirmPrompt(ctx context.Context, schema *domain.IntentSchema, state *domain.WorkflowState) string {
	return e.responder.Render(ctx, domain.ResponseContext{
		Intent:   state.Intent,
		Template: schema.ConfirmPrompt,
		Data:     responseData(state),
		Fallback: "Do you want me to proceed? (yes/no)",
	})
}

func applyDefaults(schema *domain.IntentSchema, collected map[string]any) {
	for field, value := range schema.Defaults {
		if _, ok := collected[field]; !ok {
			collected[field] = value
		}
	}
}

// responseData flattens collected fields and tool results for templates.
// Tool results are exposed under their tool name.
func responseData(state *domain.WorkflowState) map[string]any {
	data := make(map[string]any, len(state.CollectedData)+len(state.ToolResults))
	for k, v := range state.CollectedData {
		data[k] = v
	}
	for k, v := range state.ToolResults {
		data[k] = v
	}
	return data
}
