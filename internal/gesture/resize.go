package gesture

import (
	"math"

	"gridboard/internal/domain"
	"gridboard/internal/frame"
	"gridboard/internal/grid"
)

type ResizeConfig struct {
	Coords      *grid.System
	Measurer    ContainerMeasurer
	Surface     Surface
	Scheduler   frame.Scheduler
	Definitions domain.DefinitionLookup
	Viewport    func() domain.Viewport

	// OnUpdate receives the item with its new layout, once per gesture.
	OnUpdate func(domain.GridItem)
}

// Resize tracks one item's resize gesture. The edge opposite the grabbed
// handle stays put while the live rectangle is clamped to the component's
// size limits and the canvas on every frame.
type Resize struct {
	cfg  ResizeConfig
	coal *frame.Coalescer

	active   bool
	handle   Handle
	item     domain.GridItem
	def      *domain.ComponentDefinition
	viewport domain.Viewport
	start    Rect
	dx, dy   float64
}

func NewResize(cfg ResizeConfig) *Resize {
	return &Resize{cfg: cfg, coal: frame.NewCoalescer(cfg.Scheduler)}
}

func (r *Resize) Active() bool { return r.active }

// Start refuses handles that touch a locked axis.
func (r *Resize) Start(item domain.GridItem, h Handle) bool {
	if r.active || !h.Valid() {
		return false
	}
	var def *domain.ComponentDefinition
	if r.cfg.Definitions != nil {
		def, _ = r.cfg.Definitions.Definition(item.Type)
	}
	if !handleEnabled(def, h) {
		return false
	}
	r.active = true
	r.handle = h
	r.item = item.Clone()
	r.def = def
	r.viewport = domain.ViewportDesktop
	if r.cfg.Viewport != nil {
		r.viewport = r.cfg.Viewport()
	}
	r.dx, r.dy = 0, 0

	pos := r.cfg.Surface.Transform(item.ID)
	w, hh := r.cfg.Surface.Size(item.ID)
	if w <= 0 || hh <= 0 {
		l := r.item.Layout(r.viewport)
		w = r.cfg.Coords.GridToPixels(l.Width, grid.AxisX, item.CanvasID)
		hh = r.cfg.Coords.GridToPixels(l.Height, grid.AxisY, item.CanvasID)
	}
	r.start = Rect{X: pos.X, Y: pos.Y, W: w, H: hh}
	return true
}

// Move accumulates a pointer delta and schedules the clamped live rectangle.
func (r *Resize) Move(dx, dy float64) {
	if !r.active {
		return
	}
	r.dx += dx
	r.dy += dy

	rect := r.clampLimits(r.candidate())
	cw, ch := r.canvasSize()
	rect = r.clampCanvas(rect, cw, ch)

	id := r.item.ID
	r.coal.Schedule(func() {
		r.cfg.Surface.SetTransform(id, Point{X: rect.X, Y: rect.Y})
		r.cfg.Surface.SetSize(id, rect.W, rect.H)
	})
}

// End snaps the rectangle to the grid and commits it. Width and height snap
// up when growing and down when shrinking.
func (r *Resize) End() bool {
	if !r.active {
		return false
	}
	r.active = false
	r.coal.Cancel()

	canvasID := r.item.CanvasID
	ux := r.cfg.Coords.UnitSize(canvasID, grid.AxisX)
	uy := r.cfg.Coords.UnitSize(canvasID, grid.AxisY)
	c := r.candidate()

	w := directionalSnap(c.W, r.start.W, ux)
	h := directionalSnap(c.H, r.start.H, uy)
	x := grid.Snap(c.X, ux)
	y := grid.Snap(c.Y, uy)
	if r.handle.Left() {
		x = grid.Snap(r.start.Right(), ux) - w
	}
	if r.handle.Top() {
		y = grid.Snap(r.start.Bottom(), uy) - h
	}
	rect := r.clampLimits(Rect{X: x, Y: y, W: w, H: h})
	cw, ch := r.canvasSize()
	rect = r.clampCanvas(rect, cw, ch)

	gx := grid.ToUnits(rect.X, ux)
	gy := grid.ToUnits(rect.Y, uy)
	gw := grid.ToUnits(rect.W, ux)
	gh := grid.ToUnits(rect.H, uy)
	gx, gy, gw, gh = fitCanvas(r.def, gx, gy, gw, gh, heightUnits(ch, uy))

	l := r.item.Layout(r.viewport)
	l.X, l.Y, l.Width, l.Height = gx, gy, gw, gh
	it := r.item
	it.SetLayout(r.viewport, l)

	r.cfg.Surface.SetTransform(it.ID, Point{X: grid.ToPixels(gx, ux), Y: grid.ToPixels(gy, uy)})
	r.cfg.Surface.SetSize(it.ID, grid.ToPixels(gw, ux), grid.ToPixels(gh, uy))
	if r.cfg.OnUpdate != nil {
		r.cfg.OnUpdate(it)
	}
	return true
}

// Destroy abandons the gesture without committing.
func (r *Resize) Destroy() {
	r.coal.Cancel()
	r.active = false
}

func (r *Resize) candidate() Rect {
	c := r.start
	if r.handle.Right() {
		c.W += r.dx
	}
	if r.handle.Left() {
		c.X += r.dx
		c.W -= r.dx
	}
	if r.handle.Bottom() {
		c.H += r.dy
	}
	if r.handle.Top() {
		c.Y += r.dy
		c.H -= r.dy
	}
	return c
}

// clampLimits enforces min/max size, keeping the opposite edge fixed.
func (r *Resize) clampLimits(c Rect) Rect {
	canvasID := r.item.CanvasID
	minW := r.cfg.Coords.UnitSize(canvasID, grid.AxisX)
	minH := r.cfg.Coords.UnitSize(canvasID, grid.AxisY)
	maxW, maxH := math.Inf(1), math.Inf(1)
	if r.def != nil {
		if m := r.def.MinSize; m != nil {
			minW = math.Max(minW, r.cfg.Coords.GridToPixels(m.Width, grid.AxisX, canvasID))
			minH = math.Max(minH, r.cfg.Coords.GridToPixels(m.Height, grid.AxisY, canvasID))
		}
		if m := r.def.MaxSize; m != nil {
			if m.Width > 0 {
				maxW = r.cfg.Coords.GridToPixels(m.Width, grid.AxisX, canvasID)
			}
			if m.Height > 0 {
				maxH = r.cfg.Coords.GridToPixels(m.Height, grid.AxisY, canvasID)
			}
		}
	}

	if w := clamp(c.W, minW, maxW); w != c.W {
		if r.handle.Left() {
			c.X = c.Right() - w
		}
		c.W = w
	}
	if h := clamp(c.H, minH, maxH); h != c.H {
		if r.handle.Top() {
			c.Y = c.Bottom() - h
		}
		c.H = h
	}
	return c
}

// clampCanvas stops the moving edges at the canvas bounds. A zero height
// means the canvas has no measured bottom.
func (r *Resize) clampCanvas(c Rect, cw, ch float64) Rect {
	if r.handle.Left() && c.X < 0 {
		c.W += c.X
		c.X = 0
	}
	if r.handle.Right() && c.Right() > cw {
		c.W = cw - c.X
	}
	if r.handle.Top() && c.Y < 0 {
		c.H += c.Y
		c.Y = 0
	}
	if r.handle.Bottom() && ch > 0 && c.Bottom() > ch {
		c.H = ch - c.Y
	}
	return c
}

func (r *Resize) canvasSize() (float64, float64) {
	w := r.cfg.Coords.CanvasWidthPx(r.item.CanvasID)
	var h float64
	if r.cfg.Measurer != nil {
		if mw, mh, ok := r.cfg.Measurer.Measure(r.item.CanvasID); ok {
			w, h = math.Min(w, mw), mh
		}
	}
	return w, h
}

func heightUnits(h, unitY float64) int {
	if h <= 0 {
		return 0
	}
	return int(math.Floor(h / unitY))
}

// fitCanvas shrinks before it repositions. If the minimum size still cannot
// fit, the item keeps its minimum and is anchored at the top left edge.
func fitCanvas(def *domain.ComponentDefinition, x, y, w, h, canvasH int) (int, int, int, int) {
	const cw = grid.CanvasWidthUnits
	if w > cw {
		w = cw
	}
	if canvasH > 0 && h > canvasH {
		h = canvasH
	}
	s := grid.ClampSize(def, domain.Size{Width: max(w, 1), Height: max(h, 1)})
	w, h = s.Width, s.Height

	if x+w > cw {
		x = cw - w
	}
	if canvasH > 0 && y+h > canvasH {
		y = canvasH - h
	}
	return max(x, 0), max(y, 0), w, h
}

func directionalSnap(px, startPx, unit float64) float64 {
	switch {
	case px > startPx:
		return math.Ceil(px/unit) * unit
	case px < startPx:
		return math.Floor(px/unit) * unit
	default:
		return math.Round(px/unit) * unit
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
