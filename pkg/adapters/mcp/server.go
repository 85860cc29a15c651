// Package mcp exposes the Session Coordinator as an MCP server, so agent
// hosts can drive banking conversations through tool calls (stdio or SSE).
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/quorumbank/teller"
	"github.com/quorumbank/teller/pkg/catalog"
	"github.com/quorumbank/teller/pkg/domain"
	"github.com/quorumbank/teller/pkg/session"
)

// Server wraps a Coordinator and exposes it over MCP.
type Server struct {
	coord     *session.Coordinator
	catalog   *catalog.Catalog
	mcpServer *server.MCPServer
}

// NewServer creates an MCP server for a coordinator. The catalog is used
// for intent listing and may be nil.
func NewServer(coord *session.Coordinator, cat *catalog.Catalog) *Server {
	s := &Server{
		coord:     coord,
		catalog:   cat,
		mcpServer: server.NewMCPServer("teller-mcp", strings.TrimSpace(teller.Version)),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	processTool := mcp.NewTool("process_turn",
		mcp.WithDescription("Process one user turn of a banking conversation. Resumes the thread's workflow if one is paused."),
		mcp.WithString("thread_id", mcp.Required(), mcp.Description("Stable conversation identifier")),
		mcp.WithString("user_id", mcp.Required(), mcp.Description("Authenticated principal")),
		mcp.WithString("text", mcp.Description("The user's message")),
		mcp.WithString("intent", mcp.Description("Pre-classified intent key (optional)")),
		mcp.WithString("feedback", mcp.Description("Answer to a pending question or yes/no confirmation")),
		mcp.WithOutputSchema[domain.TurnOutcome](),
	)
	s.mcpServer.AddTool(processTool, mcp.NewStructuredToolHandler(s.handleProcessTurn))

	s.mcpServer.AddTool(mcp.NewTool("inspect_thread",
		mcp.WithDescription("Return the current workflow state for a thread."),
		mcp.WithString("thread_id", mcp.Required(), mcp.Description("Stable conversation identifier")),
	), s.handleInspectThread)

	s.mcpServer.AddTool(mcp.NewTool("list_intents",
		mcp.WithDescription("List the intent keys the catalog supports."),
	), s.handleListIntents)
}

func (s *Server) handleProcessTurn(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (domain.TurnOutcome, error) {
	turn := domain.TurnInput{}
	turn.ThreadID, _ = args["thread_id"].(string)
	turn.UserID, _ = args["user_id"].(string)
	turn.RawText, _ = args["text"].(string)
	turn.SuppliedIntent, _ = args["intent"].(string)
	turn.Feedback, _ = args["feedback"].(string)

	outcome, err := s.coord.ProcessTurn(ctx, turn)
	if err != nil && outcome.Kind == "" {
		return domain.TurnOutcome{}, fmt.Errorf("process turn failed: %w", err)
	}
	// Busy and conflict outcomes are valid results for the agent to act on.
	return outcome, nil
}

func (s *Server) handleInspectThread(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	threadID, _ := request.GetArguments()["thread_id"].(string)

	state, err := s.coord.Inspect(ctx, threadID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("inspect failed: %v", err)), nil
	}
	jsonBytes, _ := json.Marshal(state)
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleListIntents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.catalog == nil {
		return mcp.NewToolResultText("[]"), nil
	}
	jsonBytes, _ := json.Marshal(s.catalog.Intents())
	return mcp.NewToolResultText(string(jsonBytes)), nil
}
