// Package domain contains the core types of the teller workflow engine:
// the workflow state snapshot, turn input/outcome contracts, intent schemas
// and the error taxonomy. It has no dependencies outside the standard
// library so every other package can import it freely.
package domain
