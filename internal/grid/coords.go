package grid

import (
	"fmt"
	"math"
	"sync"
)

// CanvasWidthUnits is the width of every canvas in grid units.
const CanvasWidthUnits = 50

// Axis selects the horizontal or vertical grid dimension.
type Axis int

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisY {
		return "y"
	}
	return "x"
}

// Config controls the responsive unit size. The horizontal unit is
// ResponsiveFraction of the container width clamped to [MinPx, MaxPx];
// the vertical unit is the constant VerticalPx.
type Config struct {
	ResponsiveFraction float64 `json:"responsiveFraction"`
	MinPx              float64 `json:"minPx"`
	MaxPx              float64 `json:"maxPx"`
	VerticalPx         float64 `json:"verticalPx"`
}

// DefaultConfig is 2% of the container width across, bounded to 10-50px,
// and 20px down.
func DefaultConfig() Config {
	return Config{
		ResponsiveFraction: 0.02,
		MinPx:              10,
		MaxPx:              50,
		VerticalPx:         20,
	}
}

// Validate reports the first out-of-range setting.
func (c Config) Validate() error {
	switch {
	case c.ResponsiveFraction <= 0 || c.ResponsiveFraction > 1:
		return fmt.Errorf("responsive fraction %v out of range (0, 1]", c.ResponsiveFraction)
	case c.MinPx <= 0:
		return fmt.Errorf("min unit size must be positive, got %v", c.MinPx)
	case c.MaxPx < c.MinPx:
		return fmt.Errorf("max unit size %v below min %v", c.MaxPx, c.MinPx)
	case c.VerticalPx <= 0:
		return fmt.Errorf("vertical unit size must be positive, got %v", c.VerticalPx)
	}
	return nil
}

// UnitSize computes the horizontal unit size for a container width.
func UnitSize(containerWidthPx float64, cfg Config) float64 {
	u := containerWidthPx * cfg.ResponsiveFraction
	if u < cfg.MinPx {
		return cfg.MinPx
	}
	if u > cfg.MaxPx {
		return cfg.MaxPx
	}
	return u
}

// ToPixels scales grid units by unit. It is a pure linear scale.
func ToPixels(units int, unit float64) float64 {
	return float64(units) * unit
}

// ToUnits converts pixels to the nearest whole grid unit.
func ToUnits(px, unit float64) int {
	return int(math.Round(px / unit))
}

// Snap rounds px to the nearest multiple of unit.
func Snap(px, unit float64) float64 {
	return math.Round(px/unit) * unit
}

// WidthSource reports the live pixel width of a container.
type WidthSource interface {
	ContainerWidth(containerID string) (float64, bool)
}

type cacheEntry struct {
	width float64
	unit  float64
}

// System converts between grid units and pixels for each container. The
// horizontal unit size is cached per container until ContainerResized reports
// a different width or the cache is invalidated.
type System struct {
	mu     sync.Mutex
	cfg    Config
	widths WidthSource
	cache  map[string]cacheEntry
}

// NewSystem returns a System that reads container widths from widths.
func NewSystem(cfg Config, widths WidthSource) *System {
	return &System{cfg: cfg, widths: widths, cache: make(map[string]cacheEntry)}
}

func (s *System) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// SetConfig replaces the configuration and drops every cached unit size.
func (s *System) SetConfig(cfg Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = cfg
	s.cache = make(map[string]cacheEntry)
}

// UnitSize returns the unit size in pixels for axis in the given container.
func (s *System) UnitSize(containerID string, axis Axis) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if axis == AxisY {
		return s.cfg.VerticalPx
	}
	if e, ok := s.cache[containerID]; ok {
		return e.unit
	}
	var width float64
	if s.widths != nil {
		width, _ = s.widths.ContainerWidth(containerID)
	}
	e := cacheEntry{width: width, unit: UnitSize(width, s.cfg)}
	s.cache[containerID] = e
	return e.unit
}

// ContainerResized is the resize notification hook. A changed width drops the
// cached unit size for that container.
func (s *System) ContainerResized(containerID string, width float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.cache[containerID]; ok && e.width != width {
		delete(s.cache, containerID)
	}
}

// Invalidate discards the cached unit size of a container, typically after
// it was resized.
func (s *System) Invalidate(containerID string) {
	s.mu.Lock()
	delete(s.cache, containerID)
	s.mu.Unlock()
}

// InvalidateAll discards every cached unit size.
func (s *System) InvalidateAll() {
	s.mu.Lock()
	s.cache = make(map[string]cacheEntry)
	s.mu.Unlock()
}

// GridToPixels converts grid units on axis to pixels inside containerID.
func (s *System) GridToPixels(units int, axis Axis, containerID string) float64 {
	return ToPixels(units, s.UnitSize(containerID, axis))
}

// PixelsToGrid rounds px to the nearest whole unit on axis.
func (s *System) PixelsToGrid(px float64, axis Axis, containerID string) int {
	return ToUnits(px, s.UnitSize(containerID, axis))
}

// CanvasWidthPx is the pixel width of CanvasWidthUnits in the container.
func (s *System) CanvasWidthPx(containerID string) float64 {
	return s.GridToPixels(CanvasWidthUnits, AxisX, containerID)
}
