/*
Package teller is a multi-turn workflow engine for conversational banking
agents. It drives each customer goal through a deterministic step machine,
pausing whenever it needs more information from the user and resuming exactly
where it left off on the next turn.

# Concept

A conversation is a series of threads. Each thread owns one workflow state:
the classified intent, the data collected so far, cached tool results and the
step the machine is currently in. The engine advances the state through
intent analysis, data collection, tool execution and response generation,
checkpointing after every turn so a thread survives process restarts. Side
effects that move money or change account status run behind an explicit
yes/no confirmation and are never executed twice for the same goal.

This Hexagonal Architecture keeps the engine pure: storage, tool transport,
intent classification and response rendering are all ports with swappable
adapters (in-memory, file, Redis; in-process registry; keyword classifier;
Go templates).

# Key Features

  - Deterministic stepping: same state and input always produce the same
    successor state.
  - Durable pause/resume: slot filling and confirmations span turns and
    process restarts.
  - Single-flight threads: at most one turn per thread is in flight, locally
    and (with the Redis locker) across replicas.
  - Optimistic checkpointing: a turn sequence guard rejects lost updates.

# Usage

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/quorumbank/teller"
		"github.com/quorumbank/teller/pkg/domain"
	)

	func main() {
		agent := teller.New()
		agent.RegisterTool("get_balance", func(ctx context.Context, params map[string]any) (any, error) {
			return map[string]any{"balance": 1204.55}, nil
		})

		ctx := context.Background()
		outcome, err := agent.ProcessTurn(ctx, domain.TurnInput{
			ThreadID: "thread-1",
			UserID:   "customer-42",
			RawText:  "what's my balance?",
		})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(outcome.Message)
	}

When a turn returns OutcomeNeedsInput or OutcomeNeedsConfirmation, feed the
user's next message through Resume (or a TurnInput with Feedback set) and the
workflow picks up from its pause point.
*/
package teller
