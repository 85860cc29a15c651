package teller_test

import (
	"context"
	"testing"

	"github.com/quorumbank/teller"
	"github.com/quorumbank/teller/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAgent() *teller.Agent {
	agent := teller.New()
	agent.RegisterTool("get_balance", func(ctx context.Context, params map[string]any) (any, error) {
		return map[string]any{"balance": "1204.55"}, nil
	})
	agent.RegisterTool("execute_transfer", func(ctx context.Context, params map[string]any) (any, error) {
		return map[string]any{"confirmation_number": "TRF-1"}, nil
	})
	return agent
}

func TestAgent_BalanceInquiry(t *testing.T) {
	agent := newTestAgent()
	ctx := context.Background()

	outcome, err := agent.ProcessTurn(ctx, domain.TurnInput{
		ThreadID: "t1",
		UserID:   "customer-42",
		RawText:  "what's my balance?",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFinal, outcome.Kind)
	assert.Equal(t, "Your checking balance is $1204.55.", outcome.Message)

	state, err := agent.Inspect(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, domain.StepDone, state.CurrentStep)

	history, err := agent.History(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "user", history[0].Role)
}

func TestAgent_TransferWithConfirmation(t *testing.T) {
	agent := newTestAgent()
	ctx := context.Background()

	outcome, err := agent.ProcessTurn(ctx, domain.TurnInput{
		ThreadID: "t1", UserID: "u1", RawText: "send money to my sister",
	})
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeNeedsInput, outcome.Kind)
	assert.Equal(t, "recipient", outcome.FieldName)

	outcome, err = agent.Resume(ctx, "t1", "u1", "sister-checking")
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeNeedsInput, outcome.Kind)
	assert.Equal(t, "amount", outcome.FieldName)

	outcome, err = agent.Resume(ctx, "t1", "u1", "100")
	require.NoError(t, err)
	require.Equal(t, domain.OutcomeNeedsConfirmation, outcome.Kind)

	outcome, err = agent.Resume(ctx, "t1", "u1", "yes")
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFinal, outcome.Kind)
	assert.Contains(t, outcome.Message, "sister-checking")
}

func TestAgent_UnknownIntent(t *testing.T) {
	agent := newTestAgent()

	outcome, err := agent.ProcessTurn(context.Background(), domain.TurnInput{
		ThreadID: "t1", UserID: "u1", RawText: "what's the weather like?",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeError, outcome.Kind)
	assert.Equal(t, domain.CodeUnknownIntent, outcome.Code)
}

func TestAgent_SuppliedIntentSkipsClassification(t *testing.T) {
	agent := newTestAgent()

	outcome, err := agent.ProcessTurn(context.Background(), domain.TurnInput{
		ThreadID:       "t1",
		UserID:         "u1",
		RawText:        "gibberish the classifier would reject",
		SuppliedIntent: "balance_inquiry",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OutcomeFinal, outcome.Kind)
}
