package validate

import (
	"testing"

	"github.com/quorumbank/teller/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

func transferSchema() *domain.IntentSchema {
	return &domain.IntentSchema{
		Intent:         "transfer_funds",
		RequiredFields: []string{"recipient", "amount"},
		Rules: map[string]domain.Rule{
			"recipient": {MinLen: intp(4), MaxLen: intp(34)},
			"amount":    {Min: floatp(0.01), Max: floatp(25000)},
		},
	}
}

func TestValidate_MissingRequiredInSchemaOrder(t *testing.T) {
	res := Validate(transferSchema(), map[string]any{})

	require.Equal(t, []string{"recipient", "amount"}, res.MissingRequired)
	assert.Empty(t, res.Invalid)
	assert.False(t, res.Clean())
}

func TestValidate_EmptyStringCountsAsMissing(t *testing.T) {
	res := Validate(transferSchema(), map[string]any{
		"recipient": "   ",
		"amount":    "250",
	})

	assert.Equal(t, []string{"recipient"}, res.MissingRequired)
	assert.Empty(t, res.Invalid)
}

func TestValidate_InvalidIsNotMissing(t *testing.T) {
	// A present-but-invalid value must be reported as invalid, never as
	// missing, so the user is told why their answer was rejected.
	res := Validate(transferSchema(), map[string]any{
		"recipient": "alice-savings",
		"amount":    "-5",
	})

	assert.Empty(t, res.MissingRequired)
	require.Len(t, res.Invalid, 1)
	assert.Equal(t, "amount", res.Invalid[0].Field)
	assert.Contains(t, res.Invalid[0].Reason, "at least")
}

func TestValidate_NumericBoundsAreInclusive(t *testing.T) {
	schema := &domain.IntentSchema{
		Intent:         "t",
		RequiredFields: []string{"amount"},
		Rules:          map[string]domain.Rule{"amount": {Min: floatp(0.01), Max: floatp(25000)}},
	}

	for _, v := range []string{"0.01", "25000", "100"} {
		res := Validate(schema, map[string]any{"amount": v})
		assert.True(t, res.Clean(), "amount %s should be accepted", v)
	}
	for _, v := range []string{"0", "25000.01", "abc"} {
		res := Validate(schema, map[string]any{"amount": v})
		assert.False(t, res.Clean(), "amount %s should be rejected", v)
	}
}

func TestValidate_LengthBoundsApplyAfterTrim(t *testing.T) {
	schema := &domain.IntentSchema{
		Intent:         "t",
		RequiredFields: []string{"card_last4"},
		Rules:          map[string]domain.Rule{"card_last4": {MinLen: intp(4), MaxLen: intp(4)}},
	}

	res := Validate(schema, map[string]any{"card_last4": "  4921  "})
	assert.True(t, res.Clean())

	res = Validate(schema, map[string]any{"card_last4": "12345"})
	require.Len(t, res.Invalid, 1)
	assert.Contains(t, res.Invalid[0].Reason, "at most 4")
}

func TestValidate_OneOfIsCaseInsensitive(t *testing.T) {
	schema := &domain.IntentSchema{
		Intent:         "t",
		RequiredFields: []string{"reason"},
		Rules: map[string]domain.Rule{
			"reason": {OneOf: []string{"unauthorized", "duplicate"}},
		},
	}

	assert.True(t, Validate(schema, map[string]any{"reason": "Duplicate"}).Clean())

	res := Validate(schema, map[string]any{"reason": "whatever"})
	require.Len(t, res.Invalid, 1)
	assert.Contains(t, res.Invalid[0].Reason, "one of")
}

func TestValidate_BoolRule(t *testing.T) {
	schema := &domain.IntentSchema{
		Intent:         "t",
		RequiredFields: []string{"overdraft"},
		Rules:          map[string]domain.Rule{"overdraft": {Bool: true}},
	}

	for _, v := range []any{"yes", "no", "true", "0", true} {
		assert.True(t, Validate(schema, map[string]any{"overdraft": v}).Clean(), "value %v", v)
	}
	assert.False(t, Validate(schema, map[string]any{"overdraft": "maybe"}).Clean())
}

func TestValidate_OptionalFieldsValidatedWhenPresent(t *testing.T) {
	schema := &domain.IntentSchema{
		Intent:         "balance_inquiry",
		OptionalFields: []string{"account_type"},
		Rules: map[string]domain.Rule{
			"account_type": {OneOf: []string{"checking", "savings"}},
		},
	}

	assert.True(t, Validate(schema, map[string]any{}).Clean())
	assert.False(t, Validate(schema, map[string]any{"account_type": "offshore"}).Clean())
}

func TestFirst_SchemaOrderWinsOverKind(t *testing.T) {
	schema := &domain.IntentSchema{
		Intent:         "t",
		RequiredFields: []string{"a", "b", "c"},
		Rules:          map[string]domain.Rule{"a": {MinLen: intp(3)}},
	}

	// a is invalid, b is missing: a comes first in schema order.
	res := Validate(schema, map[string]any{"a": "x", "c": "fine"})
	field, reason, ok := res.First(schema)
	require.True(t, ok)
	assert.Equal(t, "a", field)
	assert.NotEqual(t, "required", reason)

	// With a fixed, the first problem is the missing b.
	res = Validate(schema, map[string]any{"a": "xyz", "c": "fine"})
	field, reason, ok = res.First(schema)
	require.True(t, ok)
	assert.Equal(t, "b", field)
	assert.Equal(t, "required", reason)
}

func TestValidate_IsIdempotent(t *testing.T) {
	schema := transferSchema()
	data := map[string]any{"recipient": "ok", "amount": "90000"}

	first := Validate(schema, data)
	second := Validate(schema, data)
	assert.Equal(t, first, second)
}
