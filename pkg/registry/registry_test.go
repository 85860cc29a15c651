package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/quorumbank/teller/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_InvokeRegisteredTool(t *testing.T) {
	reg := New()
	reg.Register("get_balance", func(ctx context.Context, params map[string]any) (any, error) {
		return params["user_id"], nil
	})

	result, err := reg.Invoke(context.Background(), "get_balance", map[string]any{"user_id": "u1"})
	require.NoError(t, err)
	assert.Equal(t, "u1", result)
	assert.Equal(t, []string{"get_balance"}, reg.Names())
}

func TestRegistry_UnknownToolIsAToolError(t *testing.T) {
	reg := New()

	_, err := reg.Invoke(context.Background(), "missing", nil)
	require.Error(t, err)

	var toolErr *domain.ToolError
	require.True(t, errors.As(err, &toolErr))
	assert.Equal(t, "TOOL_NOT_FOUND", toolErr.Code)
}

func TestRegistry_RegisterOverwrites(t *testing.T) {
	reg := New()
	reg.Register("t", func(ctx context.Context, params map[string]any) (any, error) { return 1, nil })
	reg.Register("t", func(ctx context.Context, params map[string]any) (any, error) { return 2, nil })

	result, err := reg.Invoke(context.Background(), "t", nil)
	require.NoError(t, err)
	assert.Equal(t, 2, result)
}
