package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/quorumbank/teller/pkg/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect intent catalogs",
}

var catalogValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a YAML catalog file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cat, err := catalog.Load(args[0])
		if err != nil {
			fmt.Printf("Invalid catalog: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("OK: %d intents\n", len(cat.Intents()))
	},
}

var catalogListCmd = &cobra.Command{
	Use:   "list [file]",
	Short: "List intents (built-in catalog when no file is given)",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cat := catalog.Default()
		if len(args) > 0 {
			loaded, err := catalog.Load(args[0])
			if err != nil {
				fmt.Printf("Invalid catalog: %v\n", err)
				os.Exit(1)
			}
			cat = loaded
		}
		for _, intent := range cat.Intents() {
			fmt.Println(intent)
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.AddCommand(catalogValidateCmd)
	catalogCmd.AddCommand(catalogListCmd)
}
