package service

import (
	"database/sql"
	"fmt"
	"strconv"

	"gridboard/internal/grid"
	"gridboard/internal/storage"
)

// ─────────────────────────────────────────────────────────────
// Settings Persistence
// ─────────────────────────────────────────────────────────────
//
// Window size and grid configuration survive restarts as key-value rows in
// app_settings. The table is created by the storage layer migration.

// WindowSize holds the saved window dimensions.
type WindowSize struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// SettingsService persists user settings between sessions.
type SettingsService struct {
	db *storage.DB
}

func NewSettingsService(db *storage.DB) *SettingsService {
	return &SettingsService{db: db}
}

const (
	settingWindowWidth    = "window_width"
	settingWindowHeight   = "window_height"
	settingGridFraction   = "grid_responsive_fraction"
	settingGridMinPx      = "grid_min_px"
	settingGridMaxPx      = "grid_max_px"
	settingGridVerticalPx = "grid_vertical_px"
	settingAutosaveSpec   = "autosave_schedule"
	defaultWindowWidth    = 1280
	defaultWindowHeight   = 800
	defaultAutosaveSpec   = "@every 30s"
)

// LoadWindowSize returns the saved window dimensions, or sensible defaults.
func (s *SettingsService) LoadWindowSize() WindowSize {
	if s.db == nil {
		return WindowSize{Width: defaultWindowWidth, Height: defaultWindowHeight}
	}
	w := s.intSetting(settingWindowWidth, defaultWindowWidth)
	h := s.intSetting(settingWindowHeight, defaultWindowHeight)
	if w < 800 {
		w = defaultWindowWidth
	}
	if h < 600 {
		h = defaultWindowHeight
	}
	return WindowSize{Width: w, Height: h}
}

// SaveWindowSize persists the current window dimensions.
func (s *SettingsService) SaveWindowSize(width, height int) error {
	if s.db == nil {
		return fmt.Errorf("settings: no db")
	}
	conn := s.db.Conn()
	if err := upsertSetting(conn, settingWindowWidth, strconv.Itoa(width)); err != nil {
		return err
	}
	return upsertSetting(conn, settingWindowHeight, strconv.Itoa(height))
}

// LoadGridSettings returns the saved grid configuration. Missing or invalid
// values fall back to grid.DefaultConfig.
func (s *SettingsService) LoadGridSettings() grid.Config {
	def := grid.DefaultConfig()
	if s.db == nil {
		return def
	}
	cfg := grid.Config{
		ResponsiveFraction: s.floatSetting(settingGridFraction, def.ResponsiveFraction),
		MinPx:              s.floatSetting(settingGridMinPx, def.MinPx),
		MaxPx:              s.floatSetting(settingGridMaxPx, def.MaxPx),
		VerticalPx:         s.floatSetting(settingGridVerticalPx, def.VerticalPx),
	}
	if cfg.Validate() != nil {
		return def
	}
	return cfg
}

// SaveGridSettings validates and persists cfg.
func (s *SettingsService) SaveGridSettings(cfg grid.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("save grid settings: %w", err)
	}
	if s.db == nil {
		return fmt.Errorf("settings: no db")
	}
	conn := s.db.Conn()
	for key, v := range map[string]float64{
		settingGridFraction:   cfg.ResponsiveFraction,
		settingGridMinPx:      cfg.MinPx,
		settingGridMaxPx:      cfg.MaxPx,
		settingGridVerticalPx: cfg.VerticalPx,
	} {
		if err := upsertSetting(conn, key, strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
			return fmt.Errorf("save grid settings: %w", err)
		}
	}
	return nil
}

// AutosaveSchedule returns the cron spec for autosave.
func (s *SettingsService) AutosaveSchedule() string {
	if s.db == nil {
		return defaultAutosaveSpec
	}
	var v string
	if err := s.db.Conn().QueryRow(`SELECT value FROM app_settings WHERE key = ?`, settingAutosaveSpec).Scan(&v); err != nil || v == "" {
		return defaultAutosaveSpec
	}
	return v
}

func (s *SettingsService) SetAutosaveSchedule(spec string) error {
	if s.db == nil {
		return fmt.Errorf("settings: no db")
	}
	return upsertSetting(s.db.Conn(), settingAutosaveSpec, spec)
}

func (s *SettingsService) intSetting(key string, fallback int) int {
	var v string
	if err := s.db.Conn().QueryRow(`SELECT value FROM app_settings WHERE key = ?`, key).Scan(&v); err != nil {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func (s *SettingsService) floatSetting(key string, fallback float64) float64 {
	var v string
	if err := s.db.Conn().QueryRow(`SELECT value FROM app_settings WHERE key = ?`, key).Scan(&v); err != nil {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func upsertSetting(conn *sql.DB, key, value string) error {
	_, err := conn.Exec(
		`INSERT INTO app_settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	return err
}
