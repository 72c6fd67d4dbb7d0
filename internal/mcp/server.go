package mcpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"gridboard/internal/logging"
	"gridboard/internal/service"
)

// Server is the MCP server for the layout editor.
// It exposes tools, resources, and prompts so AI agents can edit layouts.
type Server struct {
	mcp      *server.MCPServer
	emitter  EventEmitter
	approval *ApprovalQueue
	layout   *LayoutEngine
	logger   *log.Logger

	editor  *service.EditorService
	exec    service.Executor
	layouts *service.LayoutService
}

// Deps holds all dependencies passed from the App layer to the MCP server.
type Deps struct {
	Emitter EventEmitter
	Editor  *service.EditorService
	// Exec runs editor calls on the editor's goroutine. Tool calls arrive
	// concurrently, so this must serialise them.
	Exec       service.Executor
	Layouts    *service.LayoutService // optional; enables the save/open tools
	ApprovalDB *sql.DB                // When set, use SQLite-based approval (standalone mode)
}

// New creates and configures a new MCP server with all tools and resources.
// Deletions on the editor go through the approval queue from here on; New
// fails when the queue cannot be installed.
func New(ctx context.Context, deps Deps) (*Server, error) {
	approval := NewApprovalQueue(ctx, deps.Emitter)
	if deps.ApprovalDB != nil {
		approval.SetDB(deps.ApprovalDB)
	}
	exec := deps.Exec
	if exec == nil {
		exec = service.Inline
	}
	s := &Server{
		emitter:  deps.Emitter,
		approval: approval,
		layout:   NewLayoutEngine(),
		logger:   logging.FromContext(ctx).WithPrefix("mcp"),
		editor:   deps.Editor,
		exec:     exec,
		layouts:  deps.Layouts,
	}
	if err := exec(ctx, func() { deps.Editor.SetDeletionHook(approval.DeletionHook()) }); err != nil {
		return nil, fmt.Errorf("install deletion hook: %w", err)
	}

	s.mcp = server.NewMCPServer(
		"gridboard-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
	)

	s.registerCanvasTools()
	s.registerItemTools()
	s.registerHistoryTools()
	s.registerPersistenceTools()
	s.registerResources()
	s.registerPrompts()

	return s, nil
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	s.logger.Info("starting stdio server")
	return server.ServeStdio(s.mcp)
}

// Approve forwards a user approval to the approval queue.
func (s *Server) Approve(actionID string) {
	s.approval.Approve(actionID)
}

// Reject forwards a user rejection to the approval queue.
func (s *Server) Reject(actionID string) {
	s.approval.Reject(actionID)
}

// ── Helpers ────────────────────────────────────────────────

// do runs fn on the editor goroutine and returns its error.
func (s *Server) do(ctx context.Context, fn func() error) error {
	var inner error
	if err := s.exec(ctx, func() { inner = fn() }); err != nil {
		return err
	}
	return inner
}

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

func boolPtr(v bool) *bool { return &v }
