package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner for the teller chat.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Teal-to-green gradient
	s1 := termenv.String("  _       _ _           ").Foreground(p.Color("#2dd4bf"))
	s2 := termenv.String(" | |_ ___| | | ___ _ __ ").Foreground(p.Color("#34d399"))
	s3 := termenv.String(" | __/ _ \\ | |/ _ \\ '__|").Foreground(p.Color("#4ade80"))
	s4 := termenv.String(" | ||  __/ | |  __/ |   ").Foreground(p.Color("#a3e635"))
	s5 := termenv.String("  \\__\\___|_|_|\\___|_|   ").Foreground(p.Color("#facc15"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
