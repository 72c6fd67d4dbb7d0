package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"gridboard/internal/domain"
	"gridboard/internal/grid"
	"gridboard/internal/service"
)

func (s *Server) registerItemTools() {
	// ── place_component ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("place_component",
		mcp.WithDescription("Place a component on a canvas. Position is auto-calculated if not provided. The component gets its default size, clamped to the canvas."),
		mcp.WithString("type",
			mcp.Description("Component type, e.g. header, text, image, button, gallery, video, card, divider, spacer"),
			mcp.Required(),
		),
		mcp.WithString("canvasId", mcp.Description("Canvas ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("Column in grid units (optional, auto-layout if omitted)")),
		mcp.WithNumber("y", mcp.Description("Row in grid units (optional, auto-layout if omitted)")),
		mcp.WithString("config", mcp.Description("Initial config as a JSON object (optional)")),
	), s.handlePlaceComponent)

	// ── move_item ──────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_item",
		mcp.WithDescription("Move an item to a grid position, optionally onto another canvas. The position is clamped to the canvas."),
		mcp.WithString("itemId", mcp.Description("Item ID"), mcp.Required()),
		mcp.WithNumber("x", mcp.Description("New column"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("New row"), mcp.Required()),
		mcp.WithString("canvasId", mcp.Description("Target canvas (optional, defaults to the item's canvas)")),
	), s.handleMoveItem)

	// ── resize_item ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("resize_item",
		mcp.WithDescription("Resize an item in grid units. The size is clamped to the component's limits and the canvas width."),
		mcp.WithString("itemId", mcp.Description("Item ID"), mcp.Required()),
		mcp.WithNumber("width", mcp.Description("New width"), mcp.Required()),
		mcp.WithNumber("height", mcp.Description("New height"), mcp.Required()),
	), s.handleResizeItem)

	// ── nudge_item ─────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("nudge_item",
		mcp.WithDescription("Move an item one grid unit"),
		mcp.WithString("itemId", mcp.Description("Item ID"), mcp.Required()),
		mcp.WithString("direction", mcp.Description("up, down, left or right"), mcp.Required()),
	), s.handleNudgeItem)

	// ── update_config ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_config",
		mcp.WithDescription("Merge a JSON object into the config of one or more items. A null value removes the key."),
		mcp.WithString("itemIds", mcp.Description("Comma-separated item IDs"), mcp.Required()),
		mcp.WithString("config", mcp.Description("JSON object to merge"), mcp.Required()),
	), s.handleUpdateConfig)

	// ── delete_items (destructive) ─────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_items",
		mcp.WithDescription("🛑 DESTRUCTIVE: Delete one or more items with a single approval. Requires user approval."),
		mcp.WithString("itemIds", mcp.Description("Comma-separated item IDs to delete"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteItems)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handlePlaceComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	typ, err := requireString(args, "type")
	if err != nil {
		return nil, err
	}
	canvasID, err := requireString(args, "canvasId")
	if err != nil {
		return nil, err
	}
	var config domain.Config
	if raw, _ := args["config"].(string); raw != "" {
		if err := parseJSON(raw, &config); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	x, hasX := getInt(args, "x")
	y, hasY := getInt(args, "y")

	var placed *domain.GridItem
	err = s.do(ctx, func() error {
		if !hasX || !hasY {
			def, ok := s.editor.Definitions().Definition(typ)
			if !ok {
				return fmt.Errorf("%w: %s", service.ErrUnknownComponent, typ)
			}
			size, _ := grid.ConstrainSize(def, grid.CanvasWidthUnits)
			snap := s.editor.Snapshot()
			x, y = s.layout.NextPosition(snap.Items(canvasID), snap.Viewport, size.Width, size.Height)
		}
		var err error
		placed, err = s.editor.PlaceComponent(ctx, canvasID, typ, x, y, config)
		return err
	})
	if err != nil {
		return nil, err
	}
	if placed == nil {
		return textResult(fmt.Sprintf("A %s component does not fit on the canvas", typ)), nil
	}
	return jsonResult(placed)
}

func (s *Server) handleMoveItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "itemId")
	if err != nil {
		return nil, err
	}
	x, err := requireInt(args, "x")
	if err != nil {
		return nil, err
	}
	y, err := requireInt(args, "y")
	if err != nil {
		return nil, err
	}
	canvasID := req.GetString("canvasId", "")
	return s.itemResult(ctx, id, func() (bool, error) { return s.editor.MoveItem(id, canvasID, x, y) })
}

func (s *Server) handleResizeItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "itemId")
	if err != nil {
		return nil, err
	}
	w, err := requireInt(args, "width")
	if err != nil {
		return nil, err
	}
	h, err := requireInt(args, "height")
	if err != nil {
		return nil, err
	}
	return s.itemResult(ctx, id, func() (bool, error) { return s.editor.ResizeItem(id, w, h) })
}

func (s *Server) handleNudgeItem(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := requireString(args, "itemId")
	if err != nil {
		return nil, err
	}
	dir, err := requireString(args, "direction")
	if err != nil {
		return nil, err
	}
	return s.itemResult(ctx, id, func() (bool, error) { return s.editor.Nudge(id, service.Direction(dir)) })
}

// itemResult runs a single-item change and reports the item as it ended up.
func (s *Server) itemResult(ctx context.Context, id string, change func() (bool, error)) (*mcp.CallToolResult, error) {
	var changed bool
	var after domain.GridItem
	err := s.do(ctx, func() error {
		var err error
		if changed, err = change(); err != nil {
			return err
		}
		ref, _ := s.editor.Snapshot().FindItem(id)
		after = ref.Item
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !changed {
		return textResult(fmt.Sprintf("Item %s unchanged", id)), nil
	}
	return jsonResult(after)
}

func (s *Server) handleUpdateConfig(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	idsStr, err := requireString(args, "itemIds")
	if err != nil {
		return nil, err
	}
	raw, err := requireString(args, "config")
	if err != nil {
		return nil, err
	}
	var patch domain.Config
	if err := parseJSON(raw, &patch); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	var n int
	err = s.do(ctx, func() error {
		var err error
		n, err = s.editor.UpdateConfig(splitIDs(idsStr), patch)
		return err
	})
	if err != nil {
		return nil, err
	}
	return textResult(fmt.Sprintf("Updated config of %d item(s)", n)), nil
}

func (s *Server) handleDeleteItems(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ids := splitIDs(req.GetString("itemIds", ""))
	if len(ids) == 0 {
		return nil, fmt.Errorf("itemIds is required")
	}
	var deleted bool
	err := s.do(ctx, func() error {
		var err error
		deleted, err = s.editor.DeleteItems(withTool(ctx, "delete_items"), ids)
		return err
	})
	if err != nil {
		return nil, err
	}
	if !deleted {
		return textResult("Action rejected by user"), nil
	}
	return textResult(fmt.Sprintf("Deleted %d item(s)", len(ids))), nil
}
