package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("landing_page",
		mcp.WithPromptDescription("Guide through laying out a landing page across hero and feature canvases"),
		mcp.WithArgument("product",
			mcp.ArgumentDescription("Product or topic the page is about"),
			mcp.RequiredArgument(),
		),
	), s.handleLandingPagePrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("tidy_canvas",
		mcp.WithPromptDescription("Rearrange the items of one canvas so nothing overlaps"),
		mcp.WithArgument("canvasId",
			mcp.ArgumentDescription("Canvas to tidy"),
			mcp.RequiredArgument(),
		),
	), s.handleTidyCanvasPrompt)
}

func userPrompt(description, text string) *mcp.GetPromptResult {
	return &mcp.GetPromptResult{
		Description: description,
		Messages: []mcp.PromptMessage{
			{
				Role:    mcp.RoleUser,
				Content: mcp.TextContent{Type: "text", Text: text},
			},
		},
	}
}

func (s *Server) handleLandingPagePrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	product := req.Params.Arguments["product"]
	return userPrompt(fmt.Sprintf("Lay out a landing page for: %s", product),
		fmt.Sprintf(`Build a landing page for "%s". Follow these steps:

1. Use list_canvases. If there is no "hero" or "features" canvas, create them with add_canvas.
2. On "hero", place a header (place_component type=header) and set its text with update_config to the product name.
3. Add a text block under the header with a one-line pitch, then a button linking to the signup page.
4. On "features", place three cards side by side. Leave x and y out so they are auto-placed.
5. Check the result with get_layout and fix overlaps with move_item or resize_item.
6. Save the result with save_layout.

Grid positions are in units; every canvas is 50 units wide.`, product)), nil
}

func (s *Server) handleTidyCanvasPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	canvasID := req.Params.Arguments["canvasId"]
	return userPrompt(fmt.Sprintf("Tidy canvas %s", canvasID),
		fmt.Sprintf(`Tidy the canvas "%s":

1. Read its items with get_layout canvasId=%s.
2. Find items whose rectangles overlap.
3. Move the lower or later item of each overlapping pair with move_item until no two items overlap. Keep the reading order top to bottom, left to right.
4. Do not delete anything. Every move can be undone with undo.`, canvasID, canvasID)), nil
}
