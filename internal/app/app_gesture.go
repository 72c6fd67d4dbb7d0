package app

import (
	"fmt"

	"gridboard/internal/gesture"
	"gridboard/internal/service"
	"gridboard/internal/state"
)

// ─────────────────────────────────────────────────────────────
// Gesture bindings: pointer events forwarded from the frontend
// ─────────────────────────────────────────────────────────────
//
// Moves carry the pointer delta since the previous event, in pixels. Live
// visual updates come back as gesture:frame events; the editor store is only
// written when the gesture ends.

// controller returns the gesture controller for itemID, creating it on first
// use. Must run on the loop.
func (a *App) controller(itemID string) *service.ItemController {
	c, ok := a.controllers[itemID]
	if !ok {
		c = a.editor.NewItemController(itemID, a.surface)
		a.controllers[itemID] = c
	}
	return c
}

// dropController aborts and forgets the controller for a removed item.
// Must run on the loop.
func (a *App) dropController(itemID string) {
	if c, ok := a.controllers[itemID]; ok {
		c.Destroy()
		delete(a.controllers, itemID)
	}
	a.surface.Forget(itemID)
}

// watchItems drops controllers once their item leaves the layout, however
// it was removed. Store subscribers run on the loop.
func (a *App) watchItems() func() {
	return a.editor.Store().Subscribe(a.pruneControllers)
}

func (a *App) pruneControllers(snap *state.Snapshot) {
	for id := range a.controllers {
		if _, ok := snap.FindItem(id); !ok {
			a.dropController(id)
		}
	}
}

// BeginDrag starts dragging an item. It reports false when the item is
// missing or already resizing.
func (a *App) BeginDrag(itemID string) (bool, error) {
	var ok bool
	err := a.do(func() { ok = a.controller(itemID).StartDrag() })
	return ok, err
}

func (a *App) DragMove(itemID string, dx, dy float64) error {
	return a.do(func() { a.controller(itemID).MoveDrag(dx, dy) })
}

// DragEnd drops the item and returns how the drag ended: committed,
// transferred, snapped-back or ignored.
func (a *App) DragEnd(itemID string) (string, error) {
	var outcome gesture.DragOutcome
	err := a.do(func() { outcome = a.controller(itemID).EndDrag() })
	return outcome.String(), err
}

// BeginResize starts a resize from handle (n, s, e, w, ne, nw, se, sw).
func (a *App) BeginResize(itemID, handle string) (bool, error) {
	h := gesture.Handle(handle)
	if !h.Valid() {
		return false, fmt.Errorf("begin resize %s: unknown handle %q", itemID, handle)
	}
	var ok bool
	err := a.do(func() { ok = a.controller(itemID).StartResize(h) })
	return ok, err
}

func (a *App) ResizeMove(itemID string, dx, dy float64) error {
	return a.do(func() { a.controller(itemID).MoveResize(dx, dy) })
}

// ResizeEnd commits the resize and reports whether the layout changed.
func (a *App) ResizeEnd(itemID string) (bool, error) {
	var ok bool
	err := a.do(func() { ok = a.controller(itemID).EndResize() })
	return ok, err
}

// CancelGesture aborts any gesture on the item without committing.
func (a *App) CancelGesture(itemID string) error {
	return a.do(func() { a.dropController(itemID) })
}
