package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_PausedAndTerminal(t *testing.T) {
	assert.True(t, StepAwaitingInput.Paused())
	assert.True(t, StepAwaitingConfirmation.Paused())
	assert.False(t, StepExecuteTools.Paused())
	assert.False(t, StepDone.Paused())

	assert.True(t, StepDone.Terminal())
	assert.False(t, StepError.Terminal())
	assert.False(t, StepAwaitingInput.Terminal())
}

func TestWorkflowState_CloneIsDeep(t *testing.T) {
	s := NewState()
	s.Intent = "transfer_funds"
	s.CollectedData["recipient"] = "alice-savings"
	s.ToolResults["get_balance"] = "2500.00"
	s.PendingQuestion = &PendingQuestion{FieldName: "amount", Prompt: "How much?"}
	s.Error = &StateError{Code: "TOOL_FAILED", Message: "boom"}

	c := s.Clone()
	require.Equal(t, s, c)

	c.CollectedData["recipient"] = "mallory"
	c.ToolResults["get_balance"] = "0"
	c.PendingQuestion.FieldName = "other"
	c.Error.Code = "CHANGED"

	assert.Equal(t, "alice-savings", s.CollectedData["recipient"])
	assert.Equal(t, "2500.00", s.ToolResults["get_balance"])
	assert.Equal(t, "amount", s.PendingQuestion.FieldName)
	assert.Equal(t, "TOOL_FAILED", s.Error.Code)
}

func TestWorkflowState_CloneNil(t *testing.T) {
	var s *WorkflowState
	assert.Nil(t, s.Clone())
}

func TestTurnInput_AnswerPrefersFeedback(t *testing.T) {
	assert.Equal(t, "yes", TurnInput{RawText: "some text", Feedback: "yes"}.Answer())
	assert.Equal(t, "some text", TurnInput{RawText: "some text"}.Answer())
	assert.Empty(t, TurnInput{}.Answer())
}
