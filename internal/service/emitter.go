package service

import "context"

// ─────────────────────────────────────────────────────────────
// EventEmitter: decouples services from wailsRuntime
// ─────────────────────────────────────────────────────────────

// EventEmitter is an interface for emitting events to the frontend.
// The App struct implements this by delegating to wailsRuntime.EventsEmit;
// tests use MockEmitter.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

// Events emitted by the editor.
const (
	EventLayoutChanged  = "layout:changed"
	EventItemUpdated    = "item:updated"
	EventHistoryChanged = "history:changed"
	EventSnapBack       = "gesture:snap-back"
	EventItemRejected   = "item:rejected"
	EventLayoutSaved    = "layout:saved"
	EventLayoutReloaded = "layout:reloaded"
)

// MockEmitter is a test-friendly EventEmitter that records all calls.
type MockEmitter struct {
	Events []EmittedEvent
}

// EmittedEvent holds a single recorded emission for test assertions.
type EmittedEvent struct {
	Event string
	Data  any
}

func (m *MockEmitter) Emit(_ context.Context, event string, data any) {
	m.Events = append(m.Events, EmittedEvent{Event: event, Data: data})
}

// Count returns how many times event was emitted.
func (m *MockEmitter) Count(event string) int {
	n := 0
	for _, e := range m.Events {
		if e.Event == event {
			n++
		}
	}
	return n
}

type nopEmitter struct{}

func (nopEmitter) Emit(context.Context, string, any) {}
