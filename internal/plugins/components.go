package plugins

import (
	"gridboard/internal/domain"
	"gridboard/internal/service"
)

// ─────────────────────────────────────────────────────────────
// Built-in components
// ─────────────────────────────────────────────────────────────

// component is a static definition with an optional starting config.
type component struct {
	def      domain.ComponentDefinition
	defaults domain.Config
}

func (c component) Definition() domain.ComponentDefinition { return c.def }

func (c component) DefaultConfig() domain.Config { return c.defaults }

func size(w, h int) *domain.Size { return &domain.Size{Width: w, Height: h} }

// Builtins returns the components every editor starts with.
func Builtins() []service.ComponentPlugin {
	return []service.ComponentPlugin{
		component{
			def: domain.ComponentDefinition{
				Type: "header", Name: "Header", Icon: "heading",
				DefaultSize: domain.Size{Width: 50, Height: 4},
				MinSize:     size(10, 2),
			},
			defaults: domain.Config{"text": "Heading", "level": 1},
		},
		component{
			def: domain.ComponentDefinition{
				Type: "text", Name: "Text", Icon: "paragraph",
				DefaultSize: domain.Size{Width: 20, Height: 6},
				MinSize:     size(4, 2),
			},
			defaults: domain.Config{"text": ""},
		},
		component{
			def: domain.ComponentDefinition{
				Type: "image", Name: "Image", Icon: "image",
				DefaultSize: domain.Size{Width: 15, Height: 10},
				MinSize:     size(3, 3),
			},
			defaults: domain.Config{"src": "", "alt": "", "fit": "cover"},
		},
		component{
			def: domain.ComponentDefinition{
				Type: "button", Name: "Button", Icon: "cursor",
				DefaultSize: domain.Size{Width: 8, Height: 3},
				MinSize:     size(4, 2),
				MaxSize:     size(25, 4),
			},
			defaults: domain.Config{"label": "Click me", "href": ""},
		},
		component{
			def: domain.ComponentDefinition{
				Type: "gallery", Name: "Gallery", Icon: "images",
				DefaultSize: domain.Size{Width: 30, Height: 15},
				MinSize:     size(10, 6),
			},
			defaults: domain.Config{"images": []any{}, "columns": 3},
		},
		component{
			def: domain.ComponentDefinition{
				Type: "video", Name: "Video", Icon: "film",
				DefaultSize: domain.Size{Width: 24, Height: 14},
				MinSize:     size(8, 5),
			},
			defaults: domain.Config{"src": "", "autoplay": false},
		},
		component{
			def: domain.ComponentDefinition{
				Type: "card", Name: "Card", Icon: "square",
				DefaultSize: domain.Size{Width: 15, Height: 12},
				MinSize:     size(6, 4),
				MaxSize:     size(50, 30),
			},
			defaults: domain.Config{"title": "", "body": ""},
		},
		// Dividers are one row tall; only width can change.
		component{
			def: domain.ComponentDefinition{
				Type: "divider", Name: "Divider", Icon: "minus",
				DefaultSize: domain.Size{Width: 50, Height: 1},
				MinSize:     size(2, 1),
				MaxSize:     size(50, 1),
			},
		},
		component{
			def: domain.ComponentDefinition{
				Type: "spacer", Name: "Spacer", Icon: "space",
				DefaultSize: domain.Size{Width: 50, Height: 2},
				MinSize:     size(1, 1),
			},
		},
	}
}

// RegisterBuiltins adds the built-in components to reg.
func RegisterBuiltins(reg *service.DefinitionRegistry) {
	for _, p := range Builtins() {
		reg.Register(p)
	}
}
