package mcpserver

import (
	"context"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerHistoryTools() {
	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last change"),
	), s.handleUndo)

	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo the last undone change"),
	), s.handleRedo)
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.step(ctx, "undo", s.editor.Undo)
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.step(ctx, "redo", s.editor.Redo)
}

func (s *Server) step(ctx context.Context, name string, fn func() bool) (*mcp.CallToolResult, error) {
	var ok bool
	if err := s.do(ctx, func() error { ok = fn(); return nil }); err != nil {
		return nil, err
	}
	if !ok {
		return textResult("Nothing to " + name), nil
	}
	return textResult(strings.ToUpper(name[:1]) + name[1:] + " done"), nil
}
