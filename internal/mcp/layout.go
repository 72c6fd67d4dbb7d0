package mcpserver

import (
	"gridboard/internal/domain"
	"gridboard/internal/grid"
)

// LayoutEngine finds free grid slots so agent-placed components don't land
// on top of existing ones. All values are grid units.
type LayoutEngine struct {
	columns int
}

func NewLayoutEngine() *LayoutEngine {
	return &LayoutEngine{columns: grid.CanvasWidthUnits}
}

// rect is a simple axis-aligned bounding box.
type rect struct {
	x, y, w, h int
}

func (a rect) intersects(b rect) bool {
	return a.x < b.x+b.w && a.x+a.w > b.x &&
		a.y < b.y+b.h && a.y+a.h > b.y
}

// NextPosition returns the first slot, scanning rows top to bottom and
// columns left to right, where a w×h component overlaps nothing in
// existing. When no row above the lowest item has room it falls back to
// the row below all items.
func (le *LayoutEngine) NextPosition(existing []domain.GridItem, vp domain.Viewport, w, h int) (int, int) {
	if w > le.columns {
		w = le.columns
	}
	occupied := make([]rect, len(existing))
	bottom := 0
	for i, it := range existing {
		l := it.Layout(vp)
		occupied[i] = rect{l.X, l.Y, l.Width, l.Height}
		bottom = max(bottom, l.Y+l.Height)
	}

	candidate := rect{w: w, h: h}
	for y := 0; y < bottom; y++ {
		for x := 0; x+w <= le.columns; x++ {
			candidate.x, candidate.y = x, y
			free := true
			for _, occ := range occupied {
				if candidate.intersects(occ) {
					free = false
					break
				}
			}
			if free {
				return x, y
			}
		}
	}
	return 0, bottom
}
