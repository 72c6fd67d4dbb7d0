package app

import (
	"encoding/json"
	"fmt"

	"gridboard/internal/domain"
)

// ─────────────────────────────────────────────────────────────
// Layout persistence bindings
// ─────────────────────────────────────────────────────────────

// SaveLayout stores the current layout under name.
func (a *App) SaveLayout(name string) (*domain.LayoutDocument, error) {
	return a.layouts.SaveLayout(a.ctx, name)
}

// LoadLayout replaces the editor contents with a saved layout.
func (a *App) LoadLayout(id string) (*domain.LayoutDocument, error) {
	return a.layouts.LoadLayout(a.ctx, id)
}

func (a *App) ListLayouts() ([]domain.LayoutDocument, error) {
	return a.layouts.ListLayouts()
}

func (a *App) DeleteLayout(id string) error {
	return a.layouts.DeleteLayout(a.ctx, id)
}

// CurrentLayout returns the id and name of the open layout, empty when the
// layout was never saved.
func (a *App) CurrentLayout() map[string]string {
	id, name := a.layouts.Current()
	return map[string]string{"id": id, "name": name}
}

func (a *App) ListRevisions(layoutID string) ([]domain.LayoutRevision, error) {
	return a.layouts.ListRevisions(layoutID)
}

func (a *App) RestoreRevision(revisionID string) error {
	return a.layouts.RestoreRevision(a.ctx, revisionID)
}

// ExportLayoutFile writes the layout to path and reloads it whenever the
// file is edited outside the app.
func (a *App) ExportLayoutFile(path string) error {
	if err := a.watcher.ExportTo(a.ctx, path); err != nil {
		return err
	}
	return a.watcher.Watch(path)
}

// StopWatchingLayout stops reloading the exported file.
func (a *App) StopWatchingLayout() {
	a.watcher.Stop()
}

// ImportLayoutJSON replaces the layout with an exported document.
func (a *App) ImportLayoutJSON(raw string) error {
	var data domain.ExportData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return fmt.Errorf("parse layout: %w", err)
	}
	var err error
	if doErr := a.do(func() {
		err = a.editor.Import(data)
		if err == nil {
			for id := range a.controllers {
				a.dropController(id)
			}
		}
	}); doErr != nil {
		return doErr
	}
	return err
}
