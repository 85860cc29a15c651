package domain

// ToolError is a failed tool invocation. Code is preserved end to end so the
// caller sees the tool's own failure code, not a generic one.
type ToolError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *ToolError) Error() string {
	return "tool error " + e.Code + ": " + e.Message
}
