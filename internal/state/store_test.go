package state_test

import (
	"errors"
	"testing"

	"gridboard/internal/domain"
	"gridboard/internal/state"
)

func item(id string, x, y int) domain.GridItem {
	return domain.GridItem{
		ID:      id,
		Type:    "card",
		Layouts: map[domain.Viewport]domain.Layout{domain.ViewportDesktop: {X: x, Y: y, Width: 4, Height: 2}},
		Config:  domain.Config{"title": id, "tags": []any{"a"}},
	}
}

func seeded(t *testing.T) *state.Store {
	t.Helper()
	s := state.New(domain.ViewportDesktop)
	err := s.Update(func(next *state.Snapshot) error {
		if err := next.AddCanvas("hero"); err != nil {
			return err
		}
		if err := next.AddCanvas("features"); err != nil {
			return err
		}
		for _, id := range []string{"a", "b", "c"} {
			if err := next.AppendItem("hero", item(id, 0, 0)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	return s
}

func TestStore_UpdatePublishesNewReference(t *testing.T) {
	s := seeded(t)
	before := s.Snapshot()

	var published []*state.Snapshot
	s.Subscribe(func(snap *state.Snapshot) { published = append(published, snap) })

	err := s.Update(func(next *state.Snapshot) error {
		ref, _ := next.FindItem("a")
		it := ref.Item
		it.SetLayout(domain.ViewportDesktop, domain.Layout{X: 9, Y: 9, Width: 4, Height: 2})
		return next.ReplaceItem(it)
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	after := s.Snapshot()
	if after == before {
		t.Fatal("update must publish a new snapshot reference")
	}
	if len(published) != 1 || published[0] != after {
		t.Fatalf("subscribers saw %d snapshots", len(published))
	}
	if got := before.Canvases["hero"].Items[0].Layouts[domain.ViewportDesktop].X; got != 0 {
		t.Fatalf("old snapshot mutated: x = %d", got)
	}
	if got := after.Canvases["hero"].Items[0].Layouts[domain.ViewportDesktop].X; got != 9 {
		t.Fatalf("new snapshot x = %d, want 9", got)
	}
	if after.Version != before.Version+1 {
		t.Fatalf("version = %d, want %d", after.Version, before.Version+1)
	}
}

func TestStore_FailedUpdatePublishesNothing(t *testing.T) {
	s := seeded(t)
	before := s.Snapshot()
	calls := 0
	s.Subscribe(func(*state.Snapshot) { calls++ })

	err := s.Update(func(next *state.Snapshot) error {
		next.Canvases["hero"].Items = nil
		_, err := next.RemoveItem("missing")
		return err
	})
	if !errors.Is(err, state.ErrItemNotFound) {
		t.Fatalf("err = %v, want ErrItemNotFound", err)
	}
	if s.Snapshot() != before || calls != 0 {
		t.Fatal("failed update must leave the published snapshot untouched")
	}
	if len(before.Canvases["hero"].Items) != 3 {
		t.Fatal("failed update leaked into the published snapshot")
	}
}

func TestSnapshot_InsertItemAtIndex(t *testing.T) {
	s := seeded(t)
	err := s.Update(func(next *state.Snapshot) error {
		ref, err := next.RemoveItem("b")
		if err != nil {
			return err
		}
		if ref.Index != 1 {
			t.Errorf("removed index = %d, want 1", ref.Index)
		}
		return next.InsertItem("hero", 1, ref.Item)
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	items := s.Snapshot().Canvases["hero"].Items
	if items[0].ID != "a" || items[1].ID != "b" || items[2].ID != "c" {
		t.Fatalf("order = %s %s %s", items[0].ID, items[1].ID, items[2].ID)
	}
}

func TestSnapshot_AppendAssignsZIndex(t *testing.T) {
	s := seeded(t)
	hero := s.Snapshot().Canvases["hero"]
	for i, it := range hero.Items {
		if it.ZIndex != i+1 {
			t.Errorf("item %s zIndex = %d, want %d", it.ID, it.ZIndex, i+1)
		}
	}
	if hero.ZIndexCounter != 3 {
		t.Fatalf("counter = %d, want 3", hero.ZIndexCounter)
	}
}

func TestSnapshot_RemoveCanvas(t *testing.T) {
	s := seeded(t)
	var removed *domain.Canvas
	var index int
	err := s.Update(func(next *state.Snapshot) error {
		var err error
		removed, index, err = next.RemoveCanvas("hero")
		return err
	})
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if index != 0 || len(removed.Items) != 3 {
		t.Fatalf("removed index=%d items=%d", index, len(removed.Items))
	}
	if _, ok := s.Snapshot().Canvas("hero"); ok {
		t.Fatal("canvas still present")
	}
	if got := s.Snapshot().Order; len(got) != 1 || got[0] != "features" {
		t.Fatalf("order = %v", got)
	}
}

func TestSnapshot_AddCanvasTwice(t *testing.T) {
	s := seeded(t)
	err := s.Update(func(next *state.Snapshot) error { return next.AddCanvas("hero") })
	if !errors.Is(err, state.ErrCanvasExists) {
		t.Fatalf("err = %v, want ErrCanvasExists", err)
	}
}

func TestGridItem_CloneIsIndependent(t *testing.T) {
	orig := item("a", 1, 2)
	cp := orig.Clone()
	cp.Config["tags"].([]any)[0] = "changed"
	cp.Layouts[domain.ViewportDesktop] = domain.Layout{X: 40}
	if orig.Config["tags"].([]any)[0] != "a" {
		t.Fatal("config slice shared between clone and original")
	}
	if orig.Layouts[domain.ViewportDesktop].X != 1 {
		t.Fatal("layouts shared between clone and original")
	}
}
