package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"gridboard/internal/frame"
)

func TestLayoutWatcher_NothingArmedAfterStop(t *testing.T) {
	editor := NewEditorService(context.Background(), EditorOptions{}, nil, frame.NewManual(), nil)
	if _, err := editor.AddCanvas("main"); err != nil {
		t.Fatal(err)
	}
	emitter := &MockEmitter{}
	w := NewLayoutWatcher(context.Background(), editor, Inline, emitter)

	path := filepath.Join(t.TempDir(), "layout.json")
	if err := w.ExportTo(context.Background(), path); err != nil {
		t.Fatal(err)
	}
	if err := w.Watch(path); err != nil {
		t.Fatal(err)
	}
	w.mu.Lock()
	watcher, abs := w.watcher, w.path
	w.mu.Unlock()
	w.Stop()

	// An event the old loop read just before Stop closed it.
	if w.arm(watcher, abs) {
		t.Error("arm succeeded after Stop")
	}
	if w.timer != nil {
		t.Error("a reload timer is pending after Stop")
	}

	// A timer that already fired while Stop ran.
	if err := os.WriteFile(path, []byte(`{"version":"1.0.0","canvases":{}}`), 0644); err != nil {
		t.Fatal(err)
	}
	w.reload(abs)
	if n := emitter.Count(EventLayoutReloaded); n != 0 {
		t.Errorf("reloaded %d times after Stop", n)
	}
	if _, ok := editor.Snapshot().Canvas("main"); !ok {
		t.Error("stale reload replaced the layout")
	}
}
