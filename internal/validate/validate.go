// Package validate checks collected conversation data against an intent
// schema. It is a pure function over its inputs: no side effects, no
// external calls, identical results on repeated invocations.
package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/quorumbank/teller/pkg/domain"
)

// FieldError names a present-but-invalid field and why it failed.
type FieldError struct {
	Field  string
	Reason string
}

// Result is the structured outcome of a validation pass.
// Both slices follow the schema's declared field order (required first, then
// optional), independent of the input map's iteration order, so prompts to
// the user are deterministic.
type Result struct {
	MissingRequired []string
	Invalid         []FieldError
}

// Clean reports whether the data satisfies the schema.
func (r Result) Clean() bool {
	return len(r.MissingRequired) == 0 && len(r.Invalid) == 0
}

// First returns the first problem in schema order: missing fields win over
// invalid ones at the same position only when they come earlier in the
// declared order. The boolean is false when the result is clean.
func (r Result) First(schema *domain.IntentSchema) (field, reason string, ok bool) {
	missing := make(map[string]bool, len(r.MissingRequired))
	for _, f := range r.MissingRequired {
		missing[f] = true
	}
	invalid := make(map[string]string, len(r.Invalid))
	for _, fe := range r.Invalid {
		invalid[fe.Field] = fe.Reason
	}
	for _, f := range schema.FieldOrder() {
		if missing[f] {
			return f, "required", true
		}
		if reason, bad := invalid[f]; bad {
			return f, reason, true
		}
	}
	return "", "", false
}

// Validate checks collected data against the schema's rules.
//
// A required field is missing when absent or empty (after trimming, for
// strings). A present field is invalid when it fails its declared rule.
// Defaults are the caller's concern: apply them before validating.
func Validate(schema *domain.IntentSchema, collected map[string]any) Result {
	var res Result

	for _, f := range schema.RequiredFields {
		if isEmpty(collected[f]) {
			res.MissingRequired = append(res.MissingRequired, f)
		}
	}

	for _, f := range schema.FieldOrder() {
		v := collected[f]
		if isEmpty(v) {
			continue
		}
		rule, ok := schema.Rules[f]
		if !ok {
			continue
		}
		if reason := checkRule(rule, v); reason != "" {
			res.Invalid = append(res.Invalid, FieldError{Field: f, Reason: reason})
		}
	}

	return res
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	default:
		return false
	}
}

func checkRule(rule domain.Rule, v any) string {
	if rule.Bool {
		if _, ok := asBool(v); !ok {
			return "must be a boolean"
		}
		return ""
	}

	if len(rule.OneOf) > 0 {
		s := strings.TrimSpace(fmt.Sprintf("%v", v))
		for _, allowed := range rule.OneOf {
			if strings.EqualFold(s, allowed) {
				return ""
			}
		}
		return fmt.Sprintf("must be one of %s", strings.Join(rule.OneOf, ", "))
	}

	if rule.Min != nil || rule.Max != nil {
		n, ok := asNumber(v)
		if !ok {
			return "must be a number"
		}
		// Bounds are inclusive on both ends.
		if rule.Min != nil && n < *rule.Min {
			return fmt.Sprintf("must be at least %v", *rule.Min)
		}
		if rule.Max != nil && n > *rule.Max {
			return fmt.Sprintf("must be at most %v", *rule.Max)
		}
		return ""
	}

	if rule.MinLen != nil || rule.MaxLen != nil {
		s, ok := v.(string)
		if !ok {
			s = fmt.Sprintf("%v", v)
		}
		// Length bounds apply after trimming surrounding whitespace.
		length := len(strings.TrimSpace(s))
		if rule.MinLen != nil && length < *rule.MinLen {
			return fmt.Sprintf("must be at least %d characters", *rule.MinLen)
		}
		if rule.MaxLen != nil && length > *rule.MaxLen {
			return fmt.Sprintf("must be at most %d characters", *rule.MaxLen)
		}
	}

	return ""
}

func asNumber(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case string:
		n, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func asBool(v any) (bool, bool) {
	switch t := v.(type) {
	case bool:
		return t, true
	case string:
		switch strings.ToLower(strings.TrimSpace(t)) {
		case "true", "yes", "y", "1":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
	}
	return false, false
}
