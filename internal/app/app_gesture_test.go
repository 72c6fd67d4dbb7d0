package app

import (
	"context"
	"testing"

	"gridboard/internal/domain"
	"gridboard/internal/frame"
	"gridboard/internal/gesture"
	"gridboard/internal/service"
)

// newGestureApp wires just enough of App to drive controllers without Wails.
func newGestureApp(t *testing.T) *App {
	t.Helper()
	editor := service.NewEditorService(context.Background(), service.EditorOptions{}, newRegistry(), frame.NewManual(), nil)
	a := &App{
		ctx:         context.Background(),
		editor:      editor,
		surface:     newEventSurface(func(string, any) {}),
		controllers: make(map[string]*service.ItemController),
	}
	a.watchItems()
	for _, id := range []string{"hero", "features"} {
		if _, err := editor.AddCanvas(id); err != nil {
			t.Fatal(err)
		}
	}
	editor.Regions().Set(gesture.Region{CanvasID: "hero", Bounds: gesture.Rect{W: 1000, H: 400}, HasContainer: true})
	editor.ClearHistory()
	return a
}

func TestControllers_PrunedWhenBatchAddUndone(t *testing.T) {
	a := newGestureApp(t)
	added, err := a.editor.AddItems([]domain.GridItem{
		{CanvasID: "hero", Type: "text", Layouts: map[domain.Viewport]domain.Layout{domain.ViewportDesktop: {Width: 6, Height: 4}}},
		{CanvasID: "hero", Type: "text", Layouts: map[domain.Viewport]domain.Layout{domain.ViewportDesktop: {X: 10, Width: 6, Height: 4}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	for _, it := range added {
		if !a.controller(it.ID).StartDrag() {
			t.Fatalf("StartDrag %s refused", it.ID)
		}
	}
	if len(a.controllers) != 2 {
		t.Fatalf("controllers = %d, want 2", len(a.controllers))
	}

	if !a.editor.Undo() {
		t.Fatal("undo failed")
	}
	if len(a.controllers) != 0 {
		t.Errorf("controllers after undo = %d, want 0", len(a.controllers))
	}
	if w, h := a.surface.Size(added[0].ID); w != 0 || h != 0 {
		t.Errorf("surface still sized %vx%v", w, h)
	}
}

func TestControllers_PrunedWithCanvas(t *testing.T) {
	a := newGestureApp(t)
	kept, err := a.editor.PlaceComponent(context.Background(), "hero", "text", 0, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	gone, err := a.editor.PlaceComponent(context.Background(), "features", "text", 0, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	a.controller(kept.ID)
	a.controller(gone.ID)

	if ok, err := a.editor.RemoveCanvas(context.Background(), "features"); !ok || err != nil {
		t.Fatalf("RemoveCanvas = %v, %v", ok, err)
	}
	if _, ok := a.controllers[gone.ID]; ok {
		t.Error("controller of removed canvas item survived")
	}
	if _, ok := a.controllers[kept.ID]; !ok {
		t.Error("controller of surviving item was dropped")
	}
}
