package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/quorumbank/teller/internal/engine"
	"github.com/quorumbank/teller/pkg/adapters/memory"
	"github.com/quorumbank/teller/pkg/catalog"
	"github.com/quorumbank/teller/pkg/domain"
	"github.com/quorumbank/teller/pkg/registry"
	"github.com/quorumbank/teller/pkg/responder"
	"github.com/quorumbank/teller/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()

	reg := registry.New()
	reg.Register("get_balance", func(ctx context.Context, params map[string]any) (any, error) {
		return map[string]any{"balance": "2500.00"}, nil
	})
	reg.Register("execute_transfer", func(ctx context.Context, params map[string]any) (any, error) {
		return map[string]any{"confirmation_number": "TRF-1"}, nil
	})

	cat := catalog.Default()
	eng := engine.New(cat, reg, responder.New(), engine.WithClassifier(cat))
	coord := session.NewCoordinator(memory.NewStore(), eng,
		session.WithTranscript(memory.NewTranscript()))
	return NewHandler(coord)
}

func postTurn(t *testing.T, handler http.Handler, turn domain.TurnInput) (*httptest.ResponseRecorder, domain.TurnOutcome) {
	t.Helper()
	body, err := json.Marshal(turn)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/turns", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var outcome domain.TurnOutcome
	if rec.Code == http.StatusOK || rec.Code == http.StatusConflict {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &outcome))
	}
	return rec, outcome
}

func TestProcessTurnEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	rec, outcome := postTurn(t, handler, domain.TurnInput{
		ThreadID: "t1", UserID: "u1", RawText: "what's my balance?",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, domain.OutcomeFinal, outcome.Kind)
	assert.Contains(t, outcome.Message, "2500.00")
}

func TestProcessTurnEndpoint_PauseAndResume(t *testing.T) {
	handler := newTestHandler(t)

	rec, outcome := postTurn(t, handler, domain.TurnInput{
		ThreadID: "t1", UserID: "u1", RawText: "transfer money",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, domain.OutcomeNeedsInput, outcome.Kind)
	assert.Equal(t, "recipient", outcome.FieldName)

	rec, outcome = postTurn(t, handler, domain.TurnInput{
		ThreadID: "t1", UserID: "u1", Feedback: "alice-savings",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "amount", outcome.FieldName)
}

func TestProcessTurnEndpoint_BadBody(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/turns", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInspectEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/threads/nope", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	postTurn(t, handler, domain.TurnInput{ThreadID: "t1", UserID: "u1", RawText: "transfer money"})

	req = httptest.NewRequest(http.MethodGet, "/v1/threads/t1", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var state domain.WorkflowState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))
	assert.Equal(t, domain.StepAwaitingInput, state.CurrentStep)
	assert.Equal(t, "transfer_funds", state.Intent)
}

func TestHistoryEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	// No turns yet: an empty JSON array, not null.
	req := httptest.NewRequest(http.MethodGet, "/v1/threads/t1/history", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	postTurn(t, handler, domain.TurnInput{ThreadID: "t1", UserID: "u1", RawText: "what's my balance?"})

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/threads/t1/history", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var entries []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 2)
	assert.Equal(t, "user", entries[0]["role"])
	assert.Equal(t, "assistant", entries[1]["role"])
}

func TestHealthEndpoint(t *testing.T) {
	handler := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
