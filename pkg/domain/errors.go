package domain

import "errors"

// ErrThreadNotFound is returned when a thread ID has no checkpoint in the store.
var ErrThreadNotFound = errors.New("thread not found")

// ErrUnknownIntent is returned when the catalog has no schema for an intent.
var ErrUnknownIntent = errors.New("unknown intent")

// ErrBusy is returned when a turn for the same thread is already in flight.
var ErrBusy = errors.New("turn already in flight for thread")

// ErrConcurrentModification is returned when a checkpoint save carries a
// turn sequence that does not follow the stored one, indicating a stale or
// duplicated client retry.
var ErrConcurrentModification = errors.New("stale checkpoint: turn sequence conflict")

// Stable failure codes surfaced on error outcomes.
const (
	CodeUnknownIntent          = "UNKNOWN_INTENT"
	CodeToolFailed             = "TOOL_FAILED"
	CodeTimeout                = "TIMEOUT"
	CodeConcurrentModification = "CONCURRENT_MODIFICATION"
	CodeBusy                   = "BUSY"
	CodeInternal               = "INTERNAL"
)
