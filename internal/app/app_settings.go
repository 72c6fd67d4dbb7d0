package app

import (
	"gridboard/internal/grid"
	"gridboard/internal/service"
)

// ─────────────────────────────────────────────────────────────
// Settings bindings
// ─────────────────────────────────────────────────────────────

func (a *App) GetGridSettings() grid.Config {
	return a.settings.LoadGridSettings()
}

// SaveGridSettings persists cfg and applies it to the live coordinate system.
func (a *App) SaveGridSettings(cfg grid.Config) error {
	if err := a.settings.SaveGridSettings(cfg); err != nil {
		return err
	}
	return a.do(func() { a.editor.Coords().SetConfig(cfg) })
}

func (a *App) GetWindowSize() service.WindowSize {
	return a.settings.LoadWindowSize()
}

// SaveWindowSize is called by the frontend on resize (debounced).
func (a *App) SaveWindowSize(width, height int) error {
	return a.settings.SaveWindowSize(width, height)
}

func (a *App) GetAutosaveSchedule() string {
	return a.settings.AutosaveSchedule()
}

// SetAutosaveSchedule validates spec by scheduling it, then persists it.
func (a *App) SetAutosaveSchedule(spec string) error {
	if err := a.startAutosave(spec); err != nil {
		return err
	}
	return a.settings.SetAutosaveSchedule(spec)
}
