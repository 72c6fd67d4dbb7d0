package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"gridboard/internal/domain"
	"gridboard/internal/storage"
)

func (s *Server) registerPersistenceTools() {
	// ── export_layout ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("export_layout",
		mcp.WithDescription("Export the open layout as JSON"),
	), s.handleExportLayout)

	// ── import_layout ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("import_layout",
		mcp.WithDescription("🛑 Replace the open layout with exported JSON. Clears undo history."),
		mcp.WithString("data", mcp.Description("Layout JSON as produced by export_layout"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleImportLayout)

	if s.layouts == nil {
		return
	}

	// ── save_layout ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("save_layout",
		mcp.WithDescription("Save the open layout under a name, replacing a saved layout with the same name"),
		mcp.WithString("name", mcp.Description("Layout name"), mcp.Required()),
	), s.handleSaveLayout)

	// ── list_layouts ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_layouts",
		mcp.WithDescription("List saved layouts, newest first"),
	), s.handleListLayouts)

	// ── open_layout ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("open_layout",
		mcp.WithDescription("Open a saved layout by ID or name. Clears undo history."),
		mcp.WithString("layout", mcp.Description("Layout ID or name"), mcp.Required()),
	), s.handleOpenLayout)
}

func (s *Server) handleExportLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var data domain.ExportData
	if err := s.do(ctx, func() error { data = s.editor.Export(); return nil }); err != nil {
		return nil, err
	}
	return jsonResult(data)
}

func (s *Server) handleImportLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := requireString(req.GetArguments(), "data")
	if err != nil {
		return nil, err
	}
	var data domain.ExportData
	if err := parseJSON(raw, &data); err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}
	if err := s.do(ctx, func() error { return s.editor.Import(data) }); err != nil {
		return nil, fmt.Errorf("import layout: %w", err)
	}
	return textResult(fmt.Sprintf("Imported %d canvas(es)", len(data.Canvases))), nil
}

func (s *Server) handleSaveLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := requireString(req.GetArguments(), "name")
	if err != nil {
		return nil, err
	}
	doc, err := s.layouts.SaveLayout(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("save layout: %w", err)
	}
	return textResult(fmt.Sprintf("Saved layout %q (%s)", doc.Name, doc.ID)), nil
}

type layoutSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	UpdatedAt string `json:"updatedAt"`
}

func (s *Server) handleListLayouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	docs, err := s.layouts.ListLayouts()
	if err != nil {
		return nil, fmt.Errorf("list layouts: %w", err)
	}
	out := make([]layoutSummary, len(docs))
	for i, d := range docs {
		out[i] = layoutSummary{ID: d.ID, Name: d.Name, UpdatedAt: d.UpdatedAt.Format("2006-01-02 15:04:05")}
	}
	return jsonResult(out)
}

func (s *Server) handleOpenLayout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ref, err := requireString(req.GetArguments(), "layout")
	if err != nil {
		return nil, err
	}
	doc, err := s.layouts.LoadLayout(ctx, ref)
	if errors.Is(err, storage.ErrLayoutNotFound) {
		doc, err = s.layouts.LoadLayoutByName(ctx, ref)
	}
	if err != nil {
		return nil, fmt.Errorf("open layout: %w", err)
	}
	return textResult(fmt.Sprintf("Opened layout %q", doc.Name)), nil
}
