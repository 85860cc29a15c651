package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/quorumbank/teller"
	"github.com/quorumbank/teller/internal/cli"
	"github.com/quorumbank/teller/internal/presentation/tui"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive banking chat",
	Long: `Starts an interactive session against the sandbox bank. Each line is one
turn; answers to pending questions and yes/no confirmations are routed back
into the paused workflow automatically.`,
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		cfg, err := cli.LoadConfig(configPath)
		if err != nil {
			fmt.Printf("Error loading config: %v\n", err)
			os.Exit(1)
		}

		threadID, _ := cmd.Flags().GetString("thread")
		userID, _ := cmd.Flags().GetString("user")
		plain, _ := cmd.Flags().GetBool("plain")

		app, err := cli.BuildApp(cfg)
		if err != nil {
			fmt.Printf("Error initializing teller: %v\n", err)
			os.Exit(1)
		}
		defer app.Close()

		interactive := term.IsTerminal(int(os.Stdout.Fd())) && !plain

		runner := &teller.Runner{
			Input:    os.Stdin,
			Output:   os.Stdout,
			ThreadID: threadID,
			UserID:   userID,
			Headless: !interactive,
		}
		if interactive {
			tui.PrintBanner()
			runner.Renderer = teller.ContentRenderer(tui.NewRenderer())
		}

		if err := runner.Run(context.Background(), app.Agent); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().String("thread", "local-chat", "Conversation thread ID")
	chatCmd.Flags().String("user", "local-user", "Authenticated user ID")
	chatCmd.Flags().Bool("plain", false, "Disable the TUI renderer (plain text output)")
}
