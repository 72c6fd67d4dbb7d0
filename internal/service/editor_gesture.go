package service

import (
	"fmt"

	"gridboard/internal/command"
	"gridboard/internal/domain"
	"gridboard/internal/gesture"
	"gridboard/internal/grid"
	"gridboard/internal/state"
)

// ─────────────────────────────────────────────────────────────
// Gesture commits: one command per completed gesture
// ─────────────────────────────────────────────────────────────

// CommitGesture applies a drag or resize result. before is the item as it
// was when the gesture started. It reports whether a command was pushed;
// a gesture that changed nothing pushes none.
func (s *EditorService) CommitGesture(before, after domain.GridItem) bool {
	snap := s.store.Snapshot()
	ref, ok := snap.FindItem(before.ID)
	if !ok {
		s.logger.Debug("gesture item vanished", "item", before.ID)
		return false
	}
	vp := snap.Viewport
	if after.CanvasID != "" && after.CanvasID != ref.CanvasID {
		l := after.Layout(vp)
		return s.transfer(ref, after.CanvasID, l.X, l.Y)
	}
	if sameRect(before.Layout(vp), after.Layout(vp)) {
		return false
	}

	after = after.Clone()
	after.CanvasID = ref.CanvasID
	after.ZIndex = ref.Item.ZIndex
	if err := s.store.Update(func(next *state.Snapshot) error { return next.ReplaceItem(after) }); err != nil {
		s.logger.Error("commit gesture", "item", after.ID, "err", err)
		return false
	}
	s.history.Push(command.NewMove(s.env, before, after, vp, ref.Index, ref.Index))
	s.emitter.Emit(s.ctx, EventItemUpdated, after)
	return true
}

// TransferItem moves an item dropped on another canvas. The drop position is
// converted with the target canvas's own unit size and clamped to it; the
// item goes on top of the target's stack.
func (s *EditorService) TransferItem(tr gesture.Transfer) bool {
	snap := s.store.Snapshot()
	ref, ok := snap.FindItem(tr.Item.ID)
	if !ok {
		return false
	}
	ux := s.coords.UnitSize(tr.TargetCanvasID, grid.AxisX)
	uy := s.coords.UnitSize(tr.TargetCanvasID, grid.AxisY)
	return s.transfer(ref, tr.TargetCanvasID, grid.ToUnits(tr.Position.X, ux), grid.ToUnits(tr.Position.Y, uy))
}

func (s *EditorService) transfer(ref state.ItemRef, targetID string, x, y int) bool {
	snap := s.store.Snapshot()
	if _, ok := snap.Canvas(targetID); !ok {
		s.logger.Debug("transfer target missing", "item", ref.Item.ID, "canvas", targetID)
		return false
	}
	vp := snap.Viewport
	moved := ref.Item.Clone()
	l := moved.Layout(vp)
	l.X, l.Y, _ = grid.ConstrainPosition(x, y, l.Width, l.Height, grid.CanvasWidthUnits)
	moved.SetLayout(vp, l)

	var placed domain.GridItem
	targetIndex := -1
	err := s.store.Update(func(next *state.Snapshot) error {
		if _, err := next.RemoveItem(moved.ID); err != nil {
			return err
		}
		if err := next.AppendItem(targetID, moved); err != nil {
			return err
		}
		items := next.Items(targetID)
		targetIndex = len(items) - 1
		placed = items[targetIndex]
		return nil
	})
	if err != nil {
		s.logger.Error("transfer item", "item", moved.ID, "err", err)
		return false
	}
	s.history.Push(command.NewMove(s.env, ref.Item, placed, vp, ref.Index, targetIndex))
	s.emitter.Emit(s.ctx, EventItemUpdated, placed)
	return true
}

// Direction is an arrow-key nudge direction.
type Direction string

const (
	DirUp    Direction = "up"
	DirDown  Direction = "down"
	DirLeft  Direction = "left"
	DirRight Direction = "right"
)

func (d Direction) delta() (int, int, error) {
	switch d {
	case DirUp:
		return 0, -1, nil
	case DirDown:
		return 0, 1, nil
	case DirLeft:
		return -1, 0, nil
	case DirRight:
		return 1, 0, nil
	}
	return 0, 0, fmt.Errorf("unknown direction %q", d)
}

// Nudge moves an item one grid unit. Nudges that would not change the
// position, such as pushing against a canvas edge, push no command.
func (s *EditorService) Nudge(itemID string, dir Direction) (bool, error) {
	dx, dy, err := dir.delta()
	if err != nil {
		return false, err
	}
	snap := s.store.Snapshot()
	ref, ok := snap.FindItem(itemID)
	if !ok {
		return false, fmt.Errorf("nudge %s: %w", itemID, state.ErrItemNotFound)
	}
	vp := snap.Viewport
	l := ref.Item.Layout(vp)
	nx, ny, _ := grid.ConstrainPosition(l.X+dx, l.Y+dy, l.Width, l.Height, grid.CanvasWidthUnits)
	if nx == l.X && ny == l.Y {
		return false, nil
	}
	after := ref.Item.Clone()
	l.X, l.Y = nx, ny
	after.SetLayout(vp, l)
	return s.CommitGesture(ref.Item, after), nil
}

// NudgeSelected nudges the selected item, if any.
func (s *EditorService) NudgeSelected(dir Direction) (bool, error) {
	id := s.store.Snapshot().SelectedItemID
	if id == "" {
		return false, nil
	}
	return s.Nudge(id, dir)
}

// MoveItem places an item at a grid position, on another canvas when
// canvasID differs from the item's own. An empty canvasID keeps the canvas.
func (s *EditorService) MoveItem(itemID, canvasID string, x, y int) (bool, error) {
	snap := s.store.Snapshot()
	ref, ok := snap.FindItem(itemID)
	if !ok {
		return false, fmt.Errorf("move %s: %w", itemID, state.ErrItemNotFound)
	}
	if canvasID != "" && canvasID != ref.CanvasID {
		if _, ok := snap.Canvas(canvasID); !ok {
			return false, fmt.Errorf("move %s: %w", itemID, state.ErrCanvasNotFound)
		}
		return s.transfer(ref, canvasID, x, y), nil
	}
	vp := snap.Viewport
	l := ref.Item.Layout(vp)
	l.X, l.Y, _ = grid.ConstrainPosition(x, y, l.Width, l.Height, grid.CanvasWidthUnits)
	after := ref.Item.Clone()
	after.SetLayout(vp, l)
	return s.CommitGesture(ref.Item, after), nil
}

// ResizeItem sets an item's size in grid units. The size is shrunk to the
// canvas, then clamped to the component limits; the item moves left when it
// would overflow the right edge.
func (s *EditorService) ResizeItem(itemID string, width, height int) (bool, error) {
	snap := s.store.Snapshot()
	ref, ok := snap.FindItem(itemID)
	if !ok {
		return false, fmt.Errorf("resize %s: %w", itemID, state.ErrItemNotFound)
	}
	if width <= 0 || height <= 0 {
		return false, fmt.Errorf("resize %s: size %dx%d must be positive", itemID, width, height)
	}
	def, _ := s.defs.Definition(ref.Item.Type)
	size := domain.Size{Width: min(width, grid.CanvasWidthUnits), Height: height}
	size = grid.ClampSize(def, size)

	vp := snap.Viewport
	l := ref.Item.Layout(vp)
	l.Width, l.Height = size.Width, size.Height
	l.X, l.Y, _ = grid.ConstrainPosition(l.X, l.Y, l.Width, l.Height, grid.CanvasWidthUnits)
	after := ref.Item.Clone()
	after.SetLayout(vp, l)
	return s.CommitGesture(ref.Item, after), nil
}

func sameRect(a, b domain.Layout) bool {
	return a.X == b.X && a.Y == b.Y && a.Width == b.Width && a.Height == b.Height
}

// ─────────────────────────────────────────────────────────────
// ItemController: wired drag and resize handlers for one item
// ─────────────────────────────────────────────────────────────

// ItemController owns the drag and resize engines of one item. Before a
// gesture starts it writes the item's committed position and size to the
// surface, so the engines start from where the item is drawn even when the
// store changed since the last gesture (undo, import, agent edits).
type ItemController struct {
	editor  *EditorService
	itemID  string
	surface gesture.Surface
	drag    *gesture.Drag
	resize  *gesture.Resize
	before  domain.GridItem
}

// NewItemController builds the gesture handlers for itemID, drawing live
// visual updates on surface.
func (s *EditorService) NewItemController(itemID string, surface gesture.Surface) *ItemController {
	c := &ItemController{editor: s, itemID: itemID, surface: surface}
	commit := func(after domain.GridItem) { s.CommitGesture(c.before, after) }
	c.drag = gesture.NewDrag(gesture.DragConfig{
		Coords:           s.coords,
		Regions:          s.regions,
		Surface:          surface,
		Scheduler:        s.sched,
		Viewport:         s.Viewport,
		SnapBackDuration: s.opts.SnapBackDuration,
		OnUpdate:         commit,
		OnTransfer:       func(tr gesture.Transfer) { s.TransferItem(tr) },
		OnSnapBack: func(id string) {
			s.logger.Debug("drop outside any canvas", "item", id)
			s.emitter.Emit(s.ctx, EventSnapBack, id)
		},
	})
	c.resize = gesture.NewResize(gesture.ResizeConfig{
		Coords:      s.coords,
		Measurer:    s.regions,
		Surface:     surface,
		Scheduler:   s.sched,
		Definitions: s.defs,
		Viewport:    s.Viewport,
		OnUpdate:    commit,
	})
	return c
}

func (c *ItemController) ItemID() string { return c.itemID }

func (c *ItemController) current() (domain.GridItem, bool) {
	ref, ok := c.editor.store.Snapshot().FindItem(c.itemID)
	return ref.Item, ok
}

// sync writes the committed layout of it to the surface in canvas pixels.
func (c *ItemController) sync(it domain.GridItem) {
	coords := c.editor.coords
	l := it.Layout(c.editor.Viewport())
	c.surface.SetTransform(it.ID, gesture.Point{
		X: coords.GridToPixels(l.X, grid.AxisX, it.CanvasID),
		Y: coords.GridToPixels(l.Y, grid.AxisY, it.CanvasID),
	})
	c.surface.SetSize(it.ID,
		coords.GridToPixels(l.Width, grid.AxisX, it.CanvasID),
		coords.GridToPixels(l.Height, grid.AxisY, it.CanvasID))
}

// activate marks the item's canvas as the active one.
func (c *ItemController) activate(canvasID string) {
	if c.editor.store.Snapshot().ActiveCanvasID == canvasID {
		return
	}
	err := c.editor.store.Update(func(next *state.Snapshot) error {
		next.ActiveCanvasID = canvasID
		return nil
	})
	if err != nil {
		c.editor.logger.Error("activate canvas", "canvas", canvasID, "err", err)
	}
}

// begin prepares a gesture on the current item. It refuses while another
// gesture of this item is in flight.
func (c *ItemController) begin() (domain.GridItem, bool) {
	it, ok := c.current()
	if !ok || c.drag.Active() || c.resize.Active() {
		return domain.GridItem{}, false
	}
	c.sync(it)
	c.activate(it.CanvasID)
	c.before = it.Clone()
	return it, true
}

func (c *ItemController) StartDrag() bool {
	it, ok := c.begin()
	if !ok {
		return false
	}
	return c.drag.Start(it)
}

func (c *ItemController) MoveDrag(dx, dy float64) { c.drag.Move(dx, dy) }

func (c *ItemController) EndDrag() gesture.DragOutcome { return c.drag.End() }

func (c *ItemController) StartResize(h gesture.Handle) bool {
	if !h.Valid() {
		return false
	}
	it, ok := c.begin()
	if !ok {
		return false
	}
	return c.resize.Start(it, h)
}

func (c *ItemController) MoveResize(dx, dy float64) { c.resize.Move(dx, dy) }

func (c *ItemController) EndResize() bool { return c.resize.End() }

// Destroy aborts any gesture in flight without committing.
func (c *ItemController) Destroy() {
	c.drag.Destroy()
	c.resize.Destroy()
}
