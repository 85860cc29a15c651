// Package httpapi exposes the Session Coordinator as a JSON HTTP API:
//
//	POST /v1/turns                    process one user turn
//	GET  /v1/threads/{threadID}       inspect a thread's workflow state
//	GET  /v1/threads/{threadID}/history  read the display transcript
//	GET  /health                      liveness probe
//	GET  /metrics                     Prometheus metrics (when configured)
//
// Authentication, rate limiting and TLS are the deployment's concern.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/quorumbank/teller/internal/logging"
	"github.com/quorumbank/teller/pkg/domain"
	"github.com/quorumbank/teller/pkg/ports"
	"github.com/quorumbank/teller/pkg/session"
)

// Server wires the coordinator into HTTP handlers.
type Server struct {
	coord   *session.Coordinator
	metrics http.Handler
	logger  *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithMetricsHandler mounts a metrics endpoint (e.g. promhttp.Handler()).
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) { s.metrics = h }
}

// WithLogger sets a structured logger for request failures.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// NewHandler builds the chi router for a coordinator.
func NewHandler(coord *session.Coordinator, opts ...Option) http.Handler {
	s := &Server{
		coord:  coord,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Post("/v1/turns", s.processTurn)
	r.Get("/v1/threads/{threadID}", s.inspectThread)
	r.Get("/v1/threads/{threadID}/history", s.threadHistory)
	r.Get("/health", s.health)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return r
}

func (s *Server) processTurn(w http.ResponseWriter, r *http.Request) {
	var turn domain.TurnInput
	if err := json.NewDecoder(r.Body).Decode(&turn); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		s.logger.Warn("process turn: invalid request body", "err", err)
		return
	}

	outcome, err := s.coord.ProcessTurn(r.Context(), turn)
	switch {
	case err == nil:
		writeJSON(w, http.StatusOK, outcome, s.logger)
	case errors.Is(err, domain.ErrBusy):
		// The outcome carries the user-facing Busy message.
		writeJSON(w, http.StatusConflict, outcome, s.logger)
	case errors.Is(err, domain.ErrConcurrentModification):
		writeJSON(w, http.StatusConflict, outcome, s.logger)
	default:
		http.Error(w, "failed to process turn", http.StatusInternalServerError)
		s.logger.Error("process turn failed", "thread_id", turn.ThreadID, "err", err)
	}
}

func (s *Server) inspectThread(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")

	state, err := s.coord.Inspect(r.Context(), threadID)
	if err != nil {
		if errors.Is(err, domain.ErrThreadNotFound) {
			http.Error(w, "thread not found", http.StatusNotFound)
			return
		}
		http.Error(w, "failed to inspect thread", http.StatusInternalServerError)
		s.logger.Error("inspect failed", "thread_id", threadID, "err", err)
		return
	}
	writeJSON(w, http.StatusOK, state, s.logger)
}

func (s *Server) threadHistory(w http.ResponseWriter, r *http.Request) {
	threadID := chi.URLParam(r, "threadID")

	entries, err := s.coord.History(r.Context(), threadID)
	if err != nil {
		http.Error(w, "failed to read history", http.StatusInternalServerError)
		s.logger.Error("history failed", "thread_id", threadID, "err", err)
		return
	}
	if entries == nil {
		entries = []ports.TranscriptEntry{} // render as [], not null
	}
	writeJSON(w, http.StatusOK, entries, s.logger)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
