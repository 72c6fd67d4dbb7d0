package gesture

import (
	"sync"
	"time"
)

// Surface is the live visual state of rendered items: the transform offset of
// each item relative to its canvas and its rendered pixel size. The gesture
// engines write to it every frame without touching the editor store.
type Surface interface {
	Transform(itemID string) Point
	SetTransform(itemID string, p Point)
	Size(itemID string) (w, h float64)
	SetSize(itemID string, w, h float64)
	// AnimateTo moves the item back to p over d.
	AnimateTo(itemID string, p Point, d time.Duration)
}

// MemorySurface keeps visual state in memory and counts writes. It backs
// headless sessions and tests.
type MemorySurface struct {
	mu         sync.Mutex
	transforms map[string]Point
	sizes      map[string][2]float64
	writes     int
	animations int
}

func NewMemorySurface() *MemorySurface {
	return &MemorySurface{transforms: make(map[string]Point), sizes: make(map[string][2]float64)}
}

func (s *MemorySurface) Transform(itemID string) Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transforms[itemID]
}

func (s *MemorySurface) SetTransform(itemID string, p Point) {
	s.mu.Lock()
	s.transforms[itemID] = p
	s.writes++
	s.mu.Unlock()
}

func (s *MemorySurface) Size(itemID string) (float64, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sz := s.sizes[itemID]
	return sz[0], sz[1]
}

func (s *MemorySurface) SetSize(itemID string, w, h float64) {
	s.mu.Lock()
	s.sizes[itemID] = [2]float64{w, h}
	s.mu.Unlock()
}

func (s *MemorySurface) AnimateTo(itemID string, p Point, _ time.Duration) {
	s.mu.Lock()
	s.transforms[itemID] = p
	s.animations++
	s.mu.Unlock()
}

// Forget drops the visual state of a removed item.
func (s *MemorySurface) Forget(itemID string) {
	s.mu.Lock()
	delete(s.transforms, itemID)
	delete(s.sizes, itemID)
	s.mu.Unlock()
}

// Writes reports how many SetTransform calls were made.
func (s *MemorySurface) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *MemorySurface) Animations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animations
}
