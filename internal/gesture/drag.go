package gesture

import (
	"time"

	"gridboard/internal/domain"
	"gridboard/internal/frame"
	"gridboard/internal/grid"
)

// DragOutcome says how a drag ended.
type DragOutcome int

const (
	DragIgnored DragOutcome = iota
	DragCommitted
	DragTransferred
	DragSnappedBack
)

func (o DragOutcome) String() string {
	switch o {
	case DragCommitted:
		return "committed"
	case DragTransferred:
		return "transferred"
	case DragSnappedBack:
		return "snapped-back"
	default:
		return "ignored"
	}
}

// Transfer describes an item dropped on a canvas other than its own.
// Position is the drop point relative to the target canvas, in pixels.
type Transfer struct {
	Item           domain.GridItem
	SourceCanvasID string
	TargetCanvasID string
	Position       Point
}

type DragConfig struct {
	Coords    *grid.System
	Regions   RegionLocator
	Surface   Surface
	Scheduler frame.Scheduler
	Viewport  func() domain.Viewport

	SnapBackDuration time.Duration

	// OnUpdate receives the item with its new layout, once per drop.
	OnUpdate func(domain.GridItem)
	// OnTransfer hands a cross-canvas drop to the orchestrator.
	OnTransfer func(Transfer)
	// OnSnapBack fires after an invalid drop was animated home.
	OnSnapBack func(itemID string)
}

// Drag tracks one item's drag gesture. Pointer moves only touch the Surface,
// at most once per frame; the editor store sees a single update on drop.
type Drag struct {
	cfg  DragConfig
	coal *frame.Coalescer

	active   bool
	item     domain.GridItem
	viewport domain.Viewport
	origin   Point
	delta    Point
}

func NewDrag(cfg DragConfig) *Drag {
	if cfg.SnapBackDuration <= 0 {
		cfg.SnapBackDuration = 200 * time.Millisecond
	}
	return &Drag{cfg: cfg, coal: frame.NewCoalescer(cfg.Scheduler)}
}

func (d *Drag) Active() bool { return d.active }

// Start begins dragging item from its current visual offset.
func (d *Drag) Start(item domain.GridItem) bool {
	if d.active {
		return false
	}
	d.active = true
	d.item = item.Clone()
	d.viewport = d.currentViewport()
	d.origin = d.cfg.Surface.Transform(item.ID)
	d.delta = Point{}
	return true
}

// Move accumulates a pointer delta and schedules a visual update.
func (d *Drag) Move(dx, dy float64) {
	if !d.active {
		return
	}
	d.delta.X += dx
	d.delta.Y += dy
	p := d.origin.Add(d.delta)
	id := d.item.ID
	d.coal.Schedule(func() { d.cfg.Surface.SetTransform(id, p) })
}

// End resolves the drop target and either commits, hands off or snaps back.
func (d *Drag) End() DragOutcome {
	if !d.active {
		return DragIgnored
	}
	d.active = false
	d.coal.Cancel()

	it := d.item
	local := d.origin.Add(d.delta)

	var source Region
	found := false
	for _, r := range d.cfg.Regions.Regions() {
		if r.CanvasID == it.CanvasID {
			source, found = r, true
			break
		}
	}
	if !found {
		return d.snapBack()
	}

	w, h := d.itemSize()
	abs := Rect{X: source.Bounds.X + local.X, Y: source.Bounds.Y + local.Y, W: w, H: h}
	target, ok := ResolveRegion(d.cfg.Regions.Regions(), abs)
	if !ok || !target.HasContainer {
		return d.snapBack()
	}

	if target.CanvasID != it.CanvasID {
		d.cfg.Surface.SetTransform(it.ID, local)
		if d.cfg.OnTransfer != nil {
			d.cfg.OnTransfer(Transfer{
				Item:           it.Clone(),
				SourceCanvasID: it.CanvasID,
				TargetCanvasID: target.CanvasID,
				Position:       Point{X: abs.X - target.Bounds.X, Y: abs.Y - target.Bounds.Y},
			})
		}
		return DragTransferred
	}

	unitX := d.cfg.Coords.UnitSize(it.CanvasID, grid.AxisX)
	unitY := d.cfg.Coords.UnitSize(it.CanvasID, grid.AxisY)
	l := it.Layout(d.viewport)
	gx, gy, _ := grid.ConstrainPosition(grid.ToUnits(local.X, unitX), grid.ToUnits(local.Y, unitY), l.Width, l.Height, grid.CanvasWidthUnits)
	l.X, l.Y = gx, gy
	it.SetLayout(d.viewport, l)

	d.cfg.Surface.SetTransform(it.ID, Point{X: grid.ToPixels(gx, unitX), Y: grid.ToPixels(gy, unitY)})
	if d.cfg.OnUpdate != nil {
		d.cfg.OnUpdate(it)
	}
	return DragCommitted
}

// Destroy abandons the gesture without committing.
func (d *Drag) Destroy() {
	d.coal.Cancel()
	d.active = false
}

func (d *Drag) snapBack() DragOutcome {
	d.cfg.Surface.AnimateTo(d.item.ID, d.origin, d.cfg.SnapBackDuration)
	if d.cfg.OnSnapBack != nil {
		d.cfg.OnSnapBack(d.item.ID)
	}
	return DragSnappedBack
}

func (d *Drag) itemSize() (float64, float64) {
	w, h := d.cfg.Surface.Size(d.item.ID)
	if w > 0 && h > 0 {
		return w, h
	}
	l := d.item.Layout(d.viewport)
	return d.cfg.Coords.GridToPixels(l.Width, grid.AxisX, d.item.CanvasID),
		d.cfg.Coords.GridToPixels(l.Height, grid.AxisY, d.item.CanvasID)
}

func (d *Drag) currentViewport() domain.Viewport {
	if d.cfg.Viewport == nil {
		return domain.ViewportDesktop
	}
	return d.cfg.Viewport()
}
