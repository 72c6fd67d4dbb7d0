package command

import (
	"fmt"

	"gridboard/internal/domain"
	"gridboard/internal/state"
)

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Move records a position change, a size change, a canvas change or any
// combination of them as one command.
type Move struct {
	env    Env
	before domain.GridItem
	after  domain.GridItem

	ItemID         string
	Viewport       domain.Viewport
	SourceCanvasID string
	TargetCanvasID string
	SourcePosition Position
	TargetPosition Position
	SourceIndex    int
	TargetIndex    int
	// SourceSize and TargetSize are set only when the size changed.
	SourceSize *domain.Size
	TargetSize *domain.Size
}

// NewMove builds a Move from the item as it was before the gesture and as it
// is now. sourceIndex is the item's index on the source canvas before the
// change and targetIndex its index on the target canvas after it.
func NewMove(env Env, before, after domain.GridItem, viewport domain.Viewport, sourceIndex, targetIndex int) *Move {
	bl, al := before.Layout(viewport), after.Layout(viewport)
	m := &Move{
		env:            env,
		before:         before.Clone(),
		after:          after.Clone(),
		ItemID:         after.ID,
		Viewport:       viewport,
		SourceCanvasID: before.CanvasID,
		TargetCanvasID: after.CanvasID,
		SourcePosition: Position{X: bl.X, Y: bl.Y},
		TargetPosition: Position{X: al.X, Y: al.Y},
		SourceIndex:    sourceIndex,
		TargetIndex:    targetIndex,
	}
	if bl.Width != al.Width || bl.Height != al.Height {
		m.SourceSize = &domain.Size{Width: bl.Width, Height: bl.Height}
		m.TargetSize = &domain.Size{Width: al.Width, Height: al.Height}
	}
	return m
}

func (m *Move) CrossCanvas() bool { return m.SourceCanvasID != m.TargetCanvasID }

func (m *Move) Resized() bool { return m.TargetSize != nil }

func (m *Move) Moved() bool { return m.SourcePosition != m.TargetPosition }

func (m *Move) Description() string {
	label := typeLabel(m.after)
	switch {
	case m.CrossCanvas():
		return fmt.Sprintf("Move %s to %s", label, m.TargetCanvasID)
	case m.Resized() && m.Moved():
		return fmt.Sprintf("Move and resize %s", label)
	case m.Resized():
		return fmt.Sprintf("Resize %s", label)
	default:
		return fmt.Sprintf("Move %s", label)
	}
}

func (m *Move) Undo() {
	m.env.apply(m.Description(), func(next *state.Snapshot) error {
		return m.place(next, m.before, m.SourceCanvasID, m.SourceIndex)
	})
}

func (m *Move) Redo() {
	m.env.apply(m.Description(), func(next *state.Snapshot) error {
		return m.place(next, m.after, m.TargetCanvasID, m.TargetIndex)
	})
}

func (m *Move) place(next *state.Snapshot, it domain.GridItem, canvasID string, index int) error {
	if !m.CrossCanvas() {
		return next.ReplaceItem(it.Clone())
	}
	if _, err := next.RemoveItem(m.ItemID); err != nil {
		return err
	}
	return next.InsertItem(canvasID, index, it.Clone())
}
