package app

import (
	"testing"
	"time"

	"gridboard/internal/gesture"
)

type recorded struct {
	event string
	frame surfaceFrame
}

func TestEventSurface_MirrorsWrites(t *testing.T) {
	var got []recorded
	s := newEventSurface(func(event string, data any) {
		got = append(got, recorded{event, data.(surfaceFrame)})
	})

	s.SetSize("a", 200, 80)
	s.SetTransform("a", gesture.Point{X: 12, Y: -4})
	s.AnimateTo("a", gesture.Point{}, 150*time.Millisecond)

	if len(got) != 3 {
		t.Fatalf("expected 3 events, got %d", len(got))
	}
	if got[0].event != EventGestureFrame || got[0].frame.Width != 200 || got[0].frame.Height != 80 {
		t.Errorf("size frame = %+v", got[0])
	}
	if got[1].frame.X != 12 || got[1].frame.Y != -4 || got[1].frame.Width != 200 {
		t.Errorf("transform frame = %+v", got[1])
	}
	if got[2].event != EventGestureAnimate || got[2].frame.DurationMs != 150 {
		t.Errorf("animate frame = %+v", got[2])
	}
	if s.Writes() != 1 || s.Animations() != 1 {
		t.Errorf("memory surface writes=%d animations=%d", s.Writes(), s.Animations())
	}
}
