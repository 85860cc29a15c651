package domain

// ResponseContext is everything a Responder needs to produce one
// user-visible message. The engine selects the template and assembles the
// data; the responder only formats.
type ResponseContext struct {
	Intent string `json:"intent,omitempty"`

	// Template is the text to render, typically from the intent schema.
	// When empty (or rendering fails) the responder returns Fallback.
	Template string `json:"template,omitempty"`

	// Data exposes collected fields and tool results to the template.
	Data map[string]any `json:"data,omitempty"`

	// Fallback is a plain message that is always safe to show.
	Fallback string `json:"fallback"`
}
