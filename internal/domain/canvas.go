package domain

// Canvas is a named region. Item order is paint order.
type Canvas struct {
	ID            string     `json:"id"`
	Items         []GridItem `json:"items"`
	ZIndexCounter int        `json:"zIndexCounter"`
}

func (c *Canvas) Clone() *Canvas {
	if c == nil {
		return nil
	}
	out := &Canvas{ID: c.ID, ZIndexCounter: c.ZIndexCounter}
	if c.Items != nil {
		out.Items = make([]GridItem, len(c.Items))
		for i := range c.Items {
			out.Items[i] = c.Items[i].Clone()
		}
	}
	return out
}

// IndexOf returns the position of itemID in Items, or -1.
func (c *Canvas) IndexOf(itemID string) int {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return i
		}
	}
	return -1
}

// NextZIndex hands out the next stacking index for this canvas.
func (c *Canvas) NextZIndex() int {
	c.ZIndexCounter++
	return c.ZIndexCounter
}

type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// ComponentDefinition describes the size limits of a component type.
// MinSize and MaxSize are optional.
type ComponentDefinition struct {
	Type        string `json:"type"`
	Name        string `json:"name"`
	Icon        string `json:"icon,omitempty"`
	DefaultSize Size   `json:"defaultSize"`
	MinSize     *Size  `json:"minSize,omitempty"`
	MaxSize     *Size  `json:"maxSize,omitempty"`
}

// DefinitionLookup resolves a component type. ok is false for unknown types.
type DefinitionLookup interface {
	Definition(componentType string) (*ComponentDefinition, bool)
}
