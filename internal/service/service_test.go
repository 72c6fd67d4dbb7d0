package service_test

import (
	"context"
	"testing"
	"time"

	"gridboard/internal/domain"
	"gridboard/internal/service"
)

// ─────────────────────────────────────────────────────────────
// saveGuard tests
// ─────────────────────────────────────────────────────────────

func TestSaveGuard_TryLock(t *testing.T) {
	var g service.ExportedSaveGuard

	if !g.TryLock("layout-1") {
		t.Fatal("expected first TryLock to succeed")
	}
	if g.TryLock("layout-1") {
		t.Fatal("expected second TryLock for same layout to fail")
	}
	if !g.TryLock("layout-2") {
		t.Fatal("expected TryLock for different layout to succeed")
	}
	g.Unlock("layout-1")
	g.Unlock("layout-2")

	if !g.TryLock("layout-1") {
		t.Fatal("expected TryLock to succeed after unlock")
	}
	g.Unlock("layout-1")
}

func TestSaveGuard_WaitAll(t *testing.T) {
	var g service.ExportedSaveGuard

	if !g.TryLock("layout-a") {
		t.Fatal("expected lock to succeed")
	}

	done := make(chan struct{})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
		defer cancel()
		g.WaitAll(ctx)
		close(done)
	}()

	go func() {
		time.Sleep(20 * time.Millisecond)
		g.Unlock("layout-a")
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("WaitAll timed out")
	}
}

// ─────────────────────────────────────────────────────────────
// MockEmitter tests
// ─────────────────────────────────────────────────────────────

func TestMockEmitter_RecordsEvents(t *testing.T) {
	m := &service.MockEmitter{}
	ctx := context.Background()

	m.Emit(ctx, service.EventLayoutChanged, map[string]string{"foo": "bar"})
	m.Emit(ctx, service.EventLayoutChanged, nil)
	m.Emit(ctx, service.EventItemUpdated, nil)

	if len(m.Events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(m.Events))
	}
	if m.Events[2].Event != service.EventItemUpdated {
		t.Errorf("expected %q, got %q", service.EventItemUpdated, m.Events[2].Event)
	}
	if n := m.Count(service.EventLayoutChanged); n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

// ─────────────────────────────────────────────────────────────
// DefinitionRegistry tests
// ─────────────────────────────────────────────────────────────

type defaultsPlugin struct{ defPlugin }

func (defaultsPlugin) DefaultConfig() domain.Config {
	return domain.Config{"level": 1, "items": []any{"a"}}
}

func TestDefinitionRegistry(t *testing.T) {
	reg := service.NewDefinitionRegistry()
	reg.Register(defaultsPlugin{defPlugin{Type: "list", DefaultSize: domain.Size{Width: 4, Height: 4}, MinSize: &domain.Size{Width: 2, Height: 2}}})
	reg.Register(defPlugin{Type: "alpha", DefaultSize: domain.Size{Width: 1, Height: 1}})

	def, ok := reg.Definition("list")
	if !ok || def.MinSize.Width != 2 {
		t.Fatalf("definition = %+v ok=%v", def, ok)
	}
	def.MinSize.Width = 99
	if again, _ := reg.Definition("list"); again.MinSize.Width != 2 {
		t.Error("caller mutated the registered definition")
	}

	cfg := reg.DefaultConfig("list")
	cfg["items"].([]any)[0] = "z"
	if reg.DefaultConfig("list")["items"].([]any)[0] != "a" {
		t.Error("default config shared between calls")
	}
	if reg.DefaultConfig("alpha") != nil {
		t.Error("plugin without defaults returned a config")
	}

	if list := reg.List(); len(list) != 2 || list[0].Type != "alpha" {
		t.Errorf("List = %+v", list)
	}

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	reg.Register(defPlugin{Type: "alpha"})
}
