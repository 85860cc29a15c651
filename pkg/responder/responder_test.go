package responder

import (
	"context"
	"testing"

	"github.com/quorumbank/teller/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestRender_Template(t *testing.T) {
	r := New()
	msg := r.Render(context.Background(), domain.ResponseContext{
		Intent:   "transfer_funds",
		Template: "Sent ${{.amount}} to {{.recipient}}.",
		Data:     map[string]any{"amount": "250", "recipient": "alice-savings"},
		Fallback: "All done.",
	})
	assert.Equal(t, "Sent $250 to alice-savings.", msg)
}

func TestRender_NestedToolResult(t *testing.T) {
	r := New()
	msg := r.Render(context.Background(), domain.ResponseContext{
		Template: "Your balance is ${{.get_balance.balance}}.",
		Data: map[string]any{
			"get_balance": map[string]any{"balance": "1204.55"},
		},
		Fallback: "All done.",
	})
	assert.Equal(t, "Your balance is $1204.55.", msg)
}

func TestRender_EmptyTemplateFallsBack(t *testing.T) {
	r := New()
	msg := r.Render(context.Background(), domain.ResponseContext{
		Template: "   ",
		Fallback: "All done.",
	})
	assert.Equal(t, "All done.", msg)
}

func TestRender_BrokenTemplateFallsBack(t *testing.T) {
	r := New()
	msg := r.Render(context.Background(), domain.ResponseContext{
		Template: "{{.amount",
		Fallback: "Sorry, I couldn't complete that request.",
	})
	assert.Equal(t, "Sorry, I couldn't complete that request.", msg)
}

func TestRender_MissingKeyRendersPlaceholder(t *testing.T) {
	r := New()
	msg := r.Render(context.Background(), domain.ResponseContext{
		Template: "Case {{.case_number}} is open.",
		Data:     map[string]any{},
		Fallback: "All done.",
	})
	assert.NotContains(t, msg, "<no value>")
}
