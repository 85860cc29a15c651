package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "teller",
	Short: "Teller is a multi-turn workflow engine for banking conversations",
	Long: `Teller drives customer goals (balance checks, transfers, card blocks, disputes)
through a deterministic step machine that pauses for missing data and
confirmations, and resumes exactly where it left off on the next turn.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to the YAML config file")
}
