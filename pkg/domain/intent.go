package domain

// Rule declares the validation constraints for a single field.
// Only the constraints relevant to the field's kind are set; unset bounds
// are not enforced. Numeric bounds are inclusive on both ends and string
// length bounds apply after trimming surrounding whitespace.
type Rule struct {
	// MinLen/MaxLen bound the trimmed length of a string value.
	MinLen *int `json:"min_len,omitempty" yaml:"min_len,omitempty" mapstructure:"min_len"`
	MaxLen *int `json:"max_len,omitempty" yaml:"max_len,omitempty" mapstructure:"max_len"`

	// Min/Max bound a numeric value (string values are parsed first).
	Min *float64 `json:"min,omitempty" yaml:"min,omitempty" mapstructure:"min"`
	Max *float64 `json:"max,omitempty" yaml:"max,omitempty" mapstructure:"max"`

	// OneOf restricts the value to an enumerated set.
	OneOf []string `json:"one_of,omitempty" yaml:"one_of,omitempty" mapstructure:"one_of"`

	// Bool requires the value to be a boolean (true/false, yes/no).
	Bool bool `json:"bool,omitempty" yaml:"bool,omitempty" mapstructure:"bool"`
}

// IntentSchema describes everything the engine needs to drive one intent:
// which fields to collect, how to validate them, whether to confirm before
// committing, and which tools to run.
type IntentSchema struct {
	// Intent is the catalog key.
	Intent string `json:"intent" yaml:"intent"`

	// RequiredFields in declared order. The order is load-bearing: missing
	// and invalid fields are always reported (and prompted for) in this
	// order so conversations are reproducible.
	RequiredFields []string `json:"required" yaml:"required"`

	// OptionalFields are validated when present but never prompted for.
	OptionalFields []string `json:"optional,omitempty" yaml:"optional,omitempty"`

	// Defaults fill absent fields before validation.
	Defaults map[string]any `json:"defaults,omitempty" yaml:"defaults,omitempty"`

	// Rules maps field name to its validation rule.
	Rules map[string]Rule `json:"rules,omitempty" yaml:"rules,omitempty"`

	// NeedsConfirmation defers commit tools until an explicit affirmative.
	NeedsConfirmation bool `json:"needs_confirmation,omitempty" yaml:"needs_confirmation,omitempty"`

	// ReadTools have no side effects and may run before confirmation,
	// e.g. a balance lookup used to display the confirmation summary.
	ReadTools []string `json:"read_tools,omitempty" yaml:"read_tools,omitempty"`

	// CommitTools mutate external state and never run before confirmation
	// succeeds (when confirmation is required).
	CommitTools []string `json:"commit_tools,omitempty" yaml:"commit_tools,omitempty"`

	// MaxToolRetries bounds synchronous sequential retries of a failing
	// tool invocation within one turn. Zero means no retry.
	MaxToolRetries int `json:"max_tool_retries,omitempty" yaml:"max_tool_retries,omitempty"`

	// Prompts maps field name to the question template shown when that
	// field is requested. Missing entries fall back to a generic prompt.
	Prompts map[string]string `json:"prompts,omitempty" yaml:"prompts,omitempty"`

	// ConfirmPrompt is the confirmation question template.
	ConfirmPrompt string `json:"confirm_prompt,omitempty" yaml:"confirm_prompt,omitempty"`

	// ResponseTemplate renders the final answer once the goal completes.
	ResponseTemplate string `json:"response,omitempty" yaml:"response,omitempty"`
}

// FieldOrder returns required then optional fields in declared order.
func (s *IntentSchema) FieldOrder() []string {
	order := make([]string, 0, len(s.RequiredFields)+len(s.OptionalFields))
	order = append(order, s.RequiredFields...)
	order = append(order, s.OptionalFields...)
	return order
}
