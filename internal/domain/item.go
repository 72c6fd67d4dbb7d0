package domain

type Viewport string

const (
	ViewportDesktop Viewport = "desktop"
	ViewportMobile  Viewport = "mobile"
)

// Layout is a position and size in grid units. Customized is only meaningful
// for non-desktop viewports: false means the layout is derived from desktop.
type Layout struct {
	X          int  `json:"x"`
	Y          int  `json:"y"`
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Customized bool `json:"customized,omitempty"`
}

// Config is the opaque payload handed to the rendering side.
type Config map[string]any

type GridItem struct {
	ID       string              `json:"id"`
	CanvasID string              `json:"canvasId"`
	Type     string              `json:"type"`
	Name     string              `json:"name,omitempty"`
	ZIndex   int                 `json:"zIndex"`
	Layouts  map[Viewport]Layout `json:"layouts"`
	Config   Config              `json:"config,omitempty"`
}

// Layout returns the layout for viewport v. A mobile layout that was never
// customized is derived from desktop.
func (it GridItem) Layout(v Viewport) Layout {
	l, ok := it.Layouts[v]
	if v == ViewportDesktop || (ok && l.Customized) {
		return l
	}
	d := it.Layouts[ViewportDesktop]
	d.Customized = false
	return d
}

// SetLayout writes l into viewport v. Non-desktop layouts are marked
// customized, and a zero width or height is seeded from desktop.
func (it *GridItem) SetLayout(v Viewport, l Layout) {
	if it.Layouts == nil {
		it.Layouts = make(map[Viewport]Layout, 2)
	}
	if v != ViewportDesktop {
		d := it.Layouts[ViewportDesktop]
		if l.Width == 0 {
			l.Width = d.Width
		}
		if l.Height == 0 {
			l.Height = d.Height
		}
		l.Customized = true
	} else {
		l.Customized = false
	}
	it.Layouts[v] = l
}

// Clone returns a deep copy; later writes to either value never reach the other.
func (it GridItem) Clone() GridItem {
	out := it
	if it.Layouts != nil {
		out.Layouts = make(map[Viewport]Layout, len(it.Layouts))
		for k, v := range it.Layouts {
			out.Layouts[k] = v
		}
	}
	out.Config = it.Config.Clone()
	return out
}

// Clone deep-copies nested maps and slices. Other values are shared, which is
// fine for the JSON-compatible payloads the editor stores.
func (c Config) Clone() Config {
	if c == nil {
		return nil
	}
	out := make(Config, len(c))
	for k, v := range c {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Config(t).Clone())
	case Config:
		return t.Clone()
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		return append([]string(nil), t...)
	default:
		return v
	}
}
