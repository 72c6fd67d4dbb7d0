package app

import (
	"fmt"

	"gridboard/internal/domain"
	"gridboard/internal/gesture"
	"gridboard/internal/service"
)

// ─────────────────────────────────────────────────────────────
// Editor bindings: every call runs on the frame loop
// ─────────────────────────────────────────────────────────────

// GetLayout returns the whole layout in the export shape.
func (a *App) GetLayout() (domain.ExportData, error) {
	var data domain.ExportData
	err := a.do(func() { data = a.editor.Export() })
	return data, err
}

// ListComponents returns the registered component definitions.
func (a *App) ListComponents() []domain.ComponentDefinition {
	return a.editor.Definitions().List()
}

// PlaceComponent adds a component at grid position (x, y). A nil item means
// the component cannot fit and an item:rejected event was emitted.
func (a *App) PlaceComponent(canvasID, componentType string, x, y int, config map[string]any) (*domain.GridItem, error) {
	var it *domain.GridItem
	var err error
	if doErr := a.do(func() { it, err = a.editor.PlaceComponent(a.ctx, canvasID, componentType, x, y, config) }); doErr != nil {
		return nil, doErr
	}
	return it, err
}

// DeleteItems removes items and reports whether anything was deleted.
func (a *App) DeleteItems(ids []string) (bool, error) {
	var ok bool
	var err error
	if doErr := a.do(func() { ok, err = a.editor.DeleteItems(a.ctx, ids) }); doErr != nil {
		return false, doErr
	}
	return ok, err
}

// UpdateConfig merges patch into each item's config.
func (a *App) UpdateConfig(ids []string, patch map[string]any) (int, error) {
	var n int
	var err error
	if doErr := a.do(func() { n, err = a.editor.UpdateConfig(ids, patch) }); doErr != nil {
		return 0, doErr
	}
	return n, err
}

// MoveItem places an item at a grid position, optionally on another canvas.
func (a *App) MoveItem(itemID, canvasID string, x, y int) (bool, error) {
	var ok bool
	var err error
	if doErr := a.do(func() { ok, err = a.editor.MoveItem(itemID, canvasID, x, y) }); doErr != nil {
		return false, doErr
	}
	return ok, err
}

// ResizeItem sets an item's size in grid units.
func (a *App) ResizeItem(itemID string, width, height int) (bool, error) {
	var ok bool
	var err error
	if doErr := a.do(func() { ok, err = a.editor.ResizeItem(itemID, width, height) }); doErr != nil {
		return false, doErr
	}
	return ok, err
}

// Nudge moves an item one grid unit in dir: up, down, left or right.
func (a *App) Nudge(itemID, dir string) (bool, error) {
	var ok bool
	var err error
	if doErr := a.do(func() { ok, err = a.editor.Nudge(itemID, service.Direction(dir)) }); doErr != nil {
		return false, doErr
	}
	return ok, err
}

// NudgeSelected nudges the selected item, if any.
func (a *App) NudgeSelected(dir string) (bool, error) {
	var ok bool
	var err error
	if doErr := a.do(func() { ok, err = a.editor.NudgeSelected(service.Direction(dir)) }); doErr != nil {
		return false, doErr
	}
	return ok, err
}

// ── Canvases ──────────────────────────────────────────────

// AddCanvas appends an empty canvas and returns its id.
func (a *App) AddCanvas(id string) (string, error) {
	var out string
	var err error
	if doErr := a.do(func() { out, err = a.editor.AddCanvas(id) }); doErr != nil {
		return "", doErr
	}
	return out, err
}

// RemoveCanvas deletes a canvas and all of its items.
func (a *App) RemoveCanvas(id string) (bool, error) {
	var ok bool
	var err error
	if doErr := a.do(func() { ok, err = a.editor.RemoveCanvas(a.ctx, id) }); doErr != nil {
		return false, doErr
	}
	return ok, err
}

// UpdateRegion records where a canvas is laid out on the page, in pixels.
// The frontend calls it on mount and whenever the canvas container resizes.
func (a *App) UpdateRegion(canvasID string, x, y, width, height float64, hasContainer bool) error {
	if width <= 0 || height < 0 {
		return fmt.Errorf("update region %s: invalid size %.0fx%.0f", canvasID, width, height)
	}
	return a.do(func() {
		a.editor.Regions().Set(gesture.Region{
			CanvasID:     canvasID,
			Bounds:       gesture.Rect{X: x, Y: y, W: width, H: height},
			HasContainer: hasContainer,
		})
	})
}

// RemoveRegion forgets a canvas's page region, e.g. when it unmounts.
func (a *App) RemoveRegion(canvasID string) error {
	return a.do(func() { a.editor.Regions().Remove(canvasID) })
}

// ── Selection and viewport ────────────────────────────────

func (a *App) SelectItem(itemID string) error {
	var err error
	if doErr := a.do(func() { err = a.editor.SelectItem(itemID) }); doErr != nil {
		return doErr
	}
	return err
}

// SetViewport switches between desktop and mobile layouts.
func (a *App) SetViewport(viewport string) error {
	var err error
	if doErr := a.do(func() { err = a.editor.SetViewport(domain.Viewport(viewport)) }); doErr != nil {
		return doErr
	}
	return err
}

// ── History ───────────────────────────────────────────────

// HistoryView is the undo state shown in the toolbar.
type HistoryView struct {
	CanUndo      bool     `json:"canUndo"`
	CanRedo      bool     `json:"canRedo"`
	Position     int      `json:"position"`
	Descriptions []string `json:"descriptions"`
}

func (a *App) Undo() (bool, error) {
	var ok bool
	err := a.do(func() { ok = a.editor.Undo() })
	return ok, err
}

func (a *App) Redo() (bool, error) {
	var ok bool
	err := a.do(func() { ok = a.editor.Redo() })
	return ok, err
}

// GetHistory returns undo availability and the command descriptions.
func (a *App) GetHistory() (HistoryView, error) {
	var v HistoryView
	err := a.do(func() {
		av := a.editor.Availability()
		v = HistoryView{
			CanUndo:      av.CanUndo,
			CanRedo:      av.CanRedo,
			Position:     av.Position,
			Descriptions: a.editor.History().Descriptions(),
		}
	})
	return v, err
}
