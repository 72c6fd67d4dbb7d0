package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"gridboard/internal/domain"
)

const (
	layoutURI         = "gridboard://layout"
	componentsURI     = "gridboard://components"
	canvasURIPrefix   = "gridboard://canvas/"
	canvasURISuffix   = "/items"
	canvasURITemplate = canvasURIPrefix + "{canvasId}" + canvasURISuffix
)

func (s *Server) registerResources() {
	// ── gridboard://layout ─────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		layoutURI,
		"Open Layout",
		mcp.WithMIMEType("application/json"),
	), s.handleLayoutResource)

	// ── gridboard://components ─────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		componentsURI,
		"Component Types",
		mcp.WithMIMEType("application/json"),
	), s.handleComponentsResource)

	// ── gridboard://canvas/{canvasId}/items ────────────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			canvasURITemplate,
			"Items on a Canvas",
		),
		s.handleCanvasItemsResource,
	)
}

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal resource: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleLayoutResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	var data domain.ExportData
	if err := s.do(ctx, func() error { data = s.editor.Export(); return nil }); err != nil {
		return nil, err
	}
	return jsonResource(layoutURI, data)
}

func (s *Server) handleComponentsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return jsonResource(componentsURI, s.editor.Definitions().List())
}

func (s *Server) handleCanvasItemsResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	canvasID := canvasIDFromURI(uri)
	if canvasID == "" {
		return nil, fmt.Errorf("could not extract canvasId from URI: %s", uri)
	}
	var items []domain.GridItem
	var found bool
	err := s.do(ctx, func() error {
		snap := s.editor.Snapshot()
		_, found = snap.Canvas(canvasID)
		items = snap.Items(canvasID)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("canvas not found: %s", canvasID)
	}
	return jsonResource(uri, items)
}

// canvasIDFromURI extracts the canvas id from "gridboard://canvas/{id}/items".
func canvasIDFromURI(uri string) string {
	if !strings.HasPrefix(uri, canvasURIPrefix) || !strings.HasSuffix(uri, canvasURISuffix) {
		return ""
	}
	id := strings.TrimSuffix(strings.TrimPrefix(uri, canvasURIPrefix), canvasURISuffix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
