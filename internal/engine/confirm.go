package engine

import "strings"

type verdict int

const (
	verdictUnknown verdict = iota
	verdictAffirmative
	verdictNegative
)

// Confirmation vocabulary. Matching is case-insensitive and exact: anything
// outside the two sets re-asks the question rather than guessing.
var (
	affirmatives = []string{"yes", "y", "confirm", "correct"}
	negatives    = []string{"no", "n", "cancel", "stop"}
)

func classifyConfirmation(input string) verdict {
	clean := strings.ToLower(strings.TrimSpace(input))
	for _, w := range affirmatives {
		if clean == w {
			return verdictAffirmative
		}
	}
	for _, w := range negatives {
		if clean == w {
			return verdictNegative
		}
	}
	return verdictUnknown
}
