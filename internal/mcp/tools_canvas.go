package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"gridboard/internal/domain"
)

func (s *Server) registerCanvasTools() {
	// ── list_canvases ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_canvases",
		mcp.WithDescription("List the canvases of the open layout in page order, with item counts"),
	), s.handleListCanvases)

	// ── get_layout ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("get_layout",
		mcp.WithDescription("Get the items of one canvas, or the whole layout when canvasId is omitted. Positions and sizes are grid units; a canvas is 50 units wide."),
		mcp.WithString("canvasId", mcp.Description("Canvas ID (optional)")),
	), s.handleGetLayout)

	// ── add_canvas ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_canvas",
		mcp.WithDescription("Append an empty canvas to the layout"),
		mcp.WithString("canvasId", mcp.Description("ID for the new canvas (optional, generated if omitted)")),
	), s.handleAddCanvas)

	// ── remove_canvas (destructive) ────────────────────
	s.mcp.AddTool(mcp.NewTool("remove_canvas",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove a canvas and every item on it. Requires user approval."),
		mcp.WithString("canvasId", mcp.Description("Canvas ID"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleRemoveCanvas)
}

type canvasSummary struct {
	ID    string `json:"id"`
	Items int    `json:"items"`
}

func (s *Server) handleListCanvases(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var out []canvasSummary
	err := s.do(ctx, func() error {
		snap := s.editor.Snapshot()
		for _, id := range snap.Order {
			out = append(out, canvasSummary{ID: id, Items: len(snap.Items(id))})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return jsonResult(out)
}

func (s *Server) handleGetLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	canvasID := req.GetString("canvasId", "")
	var data domain.ExportData
	var items []domain.GridItem
	var found bool
	err := s.do(ctx, func() error {
		if canvasID == "" {
			data = s.editor.Export()
			return nil
		}
		_, found = s.editor.Snapshot().Canvas(canvasID)
		items = s.editor.Snapshot().Items(canvasID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if canvasID == "" {
		return jsonResult(data)
	}
	if !found {
		return nil, fmt.Errorf("canvas not found: %s", canvasID)
	}
	return jsonResult(items)
}

func (s *Server) handleAddCanvas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var id string
	err := s.do(ctx, func() error {
		var err error
		id, err = s.editor.AddCanvas(req.GetString("canvasId", ""))
		return err
	})
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Canvas %s added", id)), nil
}

func (s *Server) handleRemoveCanvas(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	canvasID, err := requireString(req.GetArguments(), "canvasId")
	if err != nil {
		return nil, err
	}
	var removed bool
	err = s.do(ctx, func() error {
		var err error
		removed, err = s.editor.RemoveCanvas(withTool(ctx, "remove_canvas"), canvasID)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !removed {
		return textResult("Action rejected by user"), nil
	}
	return textResult(fmt.Sprintf("Canvas %s removed", canvasID)), nil
}
