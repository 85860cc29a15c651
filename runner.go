package teller

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/quorumbank/teller/pkg/domain"
)

// Runner handles an interactive chat loop against an Agent using provided IO.
// This allows for easy testing and integration with different frontends
// (plain CLI, TUI, automated scripts).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	ThreadID string
	UserID   string
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer transforms assistant messages before outputting them.
// This allows for TUI rendering (markdown to ANSI) without coupling the core
// package to a terminal library.
type ContentRenderer func(string) (string, error)

// Run executes the chat loop until EOF or an explicit exit command.
// Each line read is one turn; while the workflow is paused the line is fed
// back as feedback so slot answers and confirmations land where the engine
// expects them.
func (r *Runner) Run(ctx context.Context, agent *Agent) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	if r.ThreadID == "" || r.UserID == "" {
		return fmt.Errorf("thread id and user id must be set")
	}

	lineReader := bufio.NewReader(r.Input)

	if !r.Headless {
		fmt.Fprintln(r.Output, "--- teller chat (type 'exit' to quit) ---")
	}

	paused := false
	for {
		fmt.Fprint(r.Output, "> ")
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				break
			}
			return fmt.Errorf("input error: %w", err)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if text == "exit" || text == "quit" {
			fmt.Fprintln(r.Output, "Bye!")
			break
		}

		turn := domain.TurnInput{ThreadID: r.ThreadID, UserID: r.UserID}
		if paused {
			turn.Feedback = text
		} else {
			turn.RawText = text
		}

		outcome, err := agent.ProcessTurn(ctx, turn)
		if err != nil && !errors.Is(err, domain.ErrBusy) && !errors.Is(err, domain.ErrConcurrentModification) {
			return fmt.Errorf("turn failed: %w", err)
		}

		output := outcome.Message
		if r.Renderer != nil {
			if rendered, rerr := r.Renderer(outcome.Message); rerr == nil {
				output = rendered
			}
		}
		fmt.Fprintln(r.Output, strings.TrimSpace(output))

		paused = outcome.Kind == domain.OutcomeNeedsInput || outcome.Kind == domain.OutcomeNeedsConfirmation
	}
	return nil
}
