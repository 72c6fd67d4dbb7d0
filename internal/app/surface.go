package app

import (
	"time"

	"gridboard/internal/gesture"
)

const (
	EventGestureFrame   = "gesture:frame"
	EventGestureAnimate = "gesture:animate"
)

// surfaceFrame is one live visual update sent to the frontend while a
// gesture is in flight. The frontend applies it as a CSS transform or size.
type surfaceFrame struct {
	ItemID string  `json:"itemId"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	// DurationMs is set for snap-back animations only.
	DurationMs int64 `json:"durationMs,omitempty"`
}

// eventSurface keeps gesture visual state in memory and mirrors every write
// to the frontend as an event.
type eventSurface struct {
	*gesture.MemorySurface
	emit func(event string, data any)
}

func newEventSurface(emit func(event string, data any)) *eventSurface {
	return &eventSurface{MemorySurface: gesture.NewMemorySurface(), emit: emit}
}

func (s *eventSurface) SetTransform(itemID string, p gesture.Point) {
	s.MemorySurface.SetTransform(itemID, p)
	s.emit(EventGestureFrame, s.frame(itemID))
}

func (s *eventSurface) SetSize(itemID string, w, h float64) {
	s.MemorySurface.SetSize(itemID, w, h)
	s.emit(EventGestureFrame, s.frame(itemID))
}

func (s *eventSurface) AnimateTo(itemID string, p gesture.Point, d time.Duration) {
	s.MemorySurface.AnimateTo(itemID, p, d)
	f := s.frame(itemID)
	f.DurationMs = d.Milliseconds()
	s.emit(EventGestureAnimate, f)
}

func (s *eventSurface) frame(itemID string) surfaceFrame {
	p := s.Transform(itemID)
	w, h := s.Size(itemID)
	return surfaceFrame{ItemID: itemID, X: p.X, Y: p.Y, Width: w, Height: h}
}
