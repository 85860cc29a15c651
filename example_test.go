package teller_test

import (
	"context"
	"fmt"
	"log"

	"github.com/quorumbank/teller"
	"github.com/quorumbank/teller/pkg/domain"
)

// ExampleNew demonstrates the full pause/resume cycle of a confirmed money
// movement: slot filling one field per turn, an explicit confirmation, and
// the deferred commit.
func ExampleNew() {
	agent := teller.New()
	agent.RegisterTool("get_balance", func(ctx context.Context, params map[string]any) (any, error) {
		return map[string]any{"balance": "2500.00"}, nil
	})
	agent.RegisterTool("execute_transfer", func(ctx context.Context, params map[string]any) (any, error) {
		return map[string]any{"confirmation_number": "TRF-1001"}, nil
	})

	ctx := context.Background()
	turn := func(text, feedback string) {
		outcome, err := agent.ProcessTurn(ctx, domain.TurnInput{
			ThreadID: "example",
			UserID:   "customer-42",
			RawText:  text,
			Feedback: feedback,
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(outcome.Message)
	}

	turn("I want to transfer money", "")
	turn("", "alice-savings")
	turn("", "250")
	turn("", "yes")

	// Output:
	// Which account should receive the funds?
	// How much would you like to transfer?
	// You're about to transfer $250 to alice-savings. Proceed? (yes/no)
	// Done! $250 is on its way to alice-savings.
}
