package grid

import "gridboard/internal/domain"

// Placement is the outcome of ApplyBoundaryConstraints.
type Placement struct {
	X                int  `json:"x"`
	Y                int  `json:"y"`
	Width            int  `json:"width"`
	Height           int  `json:"height"`
	PositionAdjusted bool `json:"positionAdjusted"`
	SizeAdjusted     bool `json:"sizeAdjusted"`
}

// CanFit reports whether the component's minimum width fits the canvas.
// Height is unbounded.
func CanFit(def *domain.ComponentDefinition, canvasWidth int) bool {
	if def == nil || def.MinSize == nil {
		return true
	}
	return def.MinSize.Width <= canvasWidth
}

// ConstrainSize starts from the default size, shrinks the width to the canvas
// and then clamps both axes into [MinSize, MaxSize].
func ConstrainSize(def *domain.ComponentDefinition, canvasWidth int) (domain.Size, bool) {
	size := def.DefaultSize
	if size.Width > canvasWidth {
		size.Width = canvasWidth
	}
	size = ClampSize(def, size)
	return size, size != def.DefaultSize
}

// ClampSize clamps size into the definition's min/max bounds.
func ClampSize(def *domain.ComponentDefinition, size domain.Size) domain.Size {
	if def == nil {
		return size
	}
	if m := def.MinSize; m != nil {
		size.Width = max(size.Width, m.Width)
		size.Height = max(size.Height, m.Height)
	}
	if m := def.MaxSize; m != nil {
		if m.Width > 0 {
			size.Width = min(size.Width, m.Width)
		}
		if m.Height > 0 {
			size.Height = min(size.Height, m.Height)
		}
	}
	return size
}

// ConstrainPosition clamps x into [0, canvasWidth-width] and y into [0, ∞).
// It is idempotent.
func ConstrainPosition(x, y, width, _, canvasWidth int) (int, int, bool) {
	nx, ny := x, y
	if maxX := canvasWidth - width; nx > maxX {
		nx = maxX
	}
	if nx < 0 {
		nx = 0
	}
	if ny < 0 {
		ny = 0
	}
	return nx, ny, nx != x || ny != y
}

// ApplyBoundaryConstraints places a new component at (x, y). It returns nil
// when the component cannot fit the canvas at all.
func ApplyBoundaryConstraints(def *domain.ComponentDefinition, x, y, canvasWidth int) *Placement {
	if def == nil || !CanFit(def, canvasWidth) {
		return nil
	}
	size, sizeAdjusted := ConstrainSize(def, canvasWidth)
	nx, ny, posAdjusted := ConstrainPosition(x, y, size.Width, size.Height, canvasWidth)
	return &Placement{
		X:                nx,
		Y:                ny,
		Width:            size.Width,
		Height:           size.Height,
		PositionAdjusted: posAdjusted,
		SizeAdjusted:     sizeAdjusted,
	}
}
