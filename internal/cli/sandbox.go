package cli

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/quorumbank/teller"
	"github.com/quorumbank/teller/pkg/domain"
)

// sandboxBank is the simulated core banking system behind the standalone
// binary. Every user starts with the same seeded accounts; all mutations are
// in-memory and vanish with the process.
type sandboxBank struct {
	mu       sync.Mutex
	balances map[string]map[string]float64 // user -> account type -> balance
	nextCase int
}

func newSandboxBank() *sandboxBank {
	return &sandboxBank{
		balances: make(map[string]map[string]float64),
		nextCase: 1000,
	}
}

func (b *sandboxBank) accounts(userID string) map[string]float64 {
	acc, ok := b.balances[userID]
	if !ok {
		acc = map[string]float64{"checking": 2500.00, "savings": 10400.50}
		b.balances[userID] = acc
	}
	return acc
}

func (b *sandboxBank) caseID(prefix string) string {
	b.nextCase++
	return fmt.Sprintf("%s-%d", prefix, b.nextCase)
}

func userID(params map[string]any) string {
	id, _ := params["user_id"].(string)
	return id
}

func amountOf(params map[string]any) (float64, error) {
	switch v := params["amount"].(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, &domain.ToolError{Code: "INVALID_AMOUNT", Message: fmt.Sprintf("amount %q is not a number", v)}
		}
		return f, nil
	default:
		return 0, &domain.ToolError{Code: "INVALID_AMOUNT", Message: "amount is missing"}
	}
}

// RegisterSandboxTools wires the simulated bank into the agent's registry.
// The tool surface matches what the built-in catalog references, so the
// standalone binary works end to end without a real core banking backend.
func RegisterSandboxTools(agent *teller.Agent) {
	bank := newSandboxBank()

	agent.RegisterTool("get_balance", func(ctx context.Context, params map[string]any) (any, error) {
		bank.mu.Lock()
		defer bank.mu.Unlock()
		acc := bank.accounts(userID(params))

		accountType, _ := params["account_type"].(string)
		if accountType == "" {
			accountType = "checking"
		}
		balance, ok := acc[accountType]
		if !ok {
			return nil, &domain.ToolError{Code: "ACCOUNT_NOT_FOUND", Message: fmt.Sprintf("no %s account", accountType)}
		}
		return map[string]any{"account_type": accountType, "balance": fmt.Sprintf("%.2f", balance)}, nil
	})

	agent.RegisterTool("execute_transfer", func(ctx context.Context, params map[string]any) (any, error) {
		bank.mu.Lock()
		defer bank.mu.Unlock()
		acc := bank.accounts(userID(params))

		amount, err := amountOf(params)
		if err != nil {
			return nil, err
		}
		if acc["checking"] < amount {
			return nil, &domain.ToolError{Code: "INSUFFICIENT_FUNDS", Message: "checking balance is too low for this transfer"}
		}
		acc["checking"] -= amount
		return map[string]any{
			"confirmation_number": bank.caseID("TRF"),
			"remaining_balance":   fmt.Sprintf("%.2f", acc["checking"]),
		}, nil
	})

	agent.RegisterTool("block_card", func(ctx context.Context, params map[string]any) (any, error) {
		bank.mu.Lock()
		defer bank.mu.Unlock()
		return map[string]any{"case_number": bank.caseID("BLK"), "blocked_at": time.Now().UTC().Format(time.RFC3339)}, nil
	})

	agent.RegisterTool("activate_card", func(ctx context.Context, params map[string]any) (any, error) {
		return map[string]any{"status": "active"}, nil
	})

	agent.RegisterTool("create_fraud_case", func(ctx context.Context, params map[string]any) (any, error) {
		bank.mu.Lock()
		defer bank.mu.Unlock()
		return map[string]any{"case_number": bank.caseID("FRD")}, nil
	})

	agent.RegisterTool("create_dispute", func(ctx context.Context, params map[string]any) (any, error) {
		bank.mu.Lock()
		defer bank.mu.Unlock()
		return map[string]any{"case_number": bank.caseID("DSP")}, nil
	})

	agent.RegisterTool("get_transactions", func(ctx context.Context, params map[string]any) (any, error) {
		return map[string]any{
			"transactions": "1) -$42.10 GROCERY MART  2) -$9.99 STREAMFLIX  3) +$1,250.00 PAYROLL",
		}, nil
	})

	agent.RegisterTool("schedule_payment", func(ctx context.Context, params map[string]any) (any, error) {
		bank.mu.Lock()
		defer bank.mu.Unlock()
		return map[string]any{"confirmation_number": bank.caseID("PAY")}, nil
	})
}
