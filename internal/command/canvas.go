package command

import (
	"gridboard/internal/domain"
	"gridboard/internal/state"
)

type AddCanvas struct {
	env      Env
	CanvasID string
	Index    int
}

func NewAddCanvas(env Env, canvasID string, index int) *AddCanvas {
	return &AddCanvas{env: env, CanvasID: canvasID, Index: index}
}

func (c *AddCanvas) Description() string { return "Add canvas " + c.CanvasID }

func (c *AddCanvas) Undo() {
	c.env.apply(c.Description(), func(next *state.Snapshot) error {
		_, _, err := next.RemoveCanvas(c.CanvasID)
		return err
	})
}

func (c *AddCanvas) Redo() {
	c.env.apply(c.Description(), func(next *state.Snapshot) error {
		return next.InsertCanvas(c.Index, &domain.Canvas{ID: c.CanvasID, Items: []domain.GridItem{}})
	})
}

// RemoveCanvas keeps a full copy of the removed canvas, items and z-index
// counter included.
type RemoveCanvas struct {
	env    Env
	canvas *domain.Canvas
	Index  int
}

func NewRemoveCanvas(env Env, removed *domain.Canvas, index int) *RemoveCanvas {
	return &RemoveCanvas{env: env, canvas: removed.Clone(), Index: index}
}

func (c *RemoveCanvas) CanvasID() string { return c.canvas.ID }

func (c *RemoveCanvas) Description() string { return "Remove canvas " + c.canvas.ID }

func (c *RemoveCanvas) Undo() {
	c.env.apply(c.Description(), func(next *state.Snapshot) error {
		return next.InsertCanvas(c.Index, c.canvas.Clone())
	})
}

func (c *RemoveCanvas) Redo() {
	c.env.apply(c.Description(), func(next *state.Snapshot) error {
		_, _, err := next.RemoveCanvas(c.canvas.ID)
		return err
	})
}
