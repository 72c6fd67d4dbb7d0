package history_test

import (
	"fmt"
	"testing"

	"gridboard/internal/history"
)

type recordingCommand struct {
	name string
	log  *[]string
}

func (c *recordingCommand) Undo()               { *c.log = append(*c.log, "undo "+c.name) }
func (c *recordingCommand) Redo()               { *c.log = append(*c.log, "redo "+c.name) }
func (c *recordingCommand) Description() string { return c.name }

func push(h *history.History, log *[]string, n int, prefix string) {
	for i := 0; i < n; i++ {
		h.Push(&recordingCommand{name: fmt.Sprintf("%s%d", prefix, i), log: log})
	}
}

func TestHistory_EmptyIsNoop(t *testing.T) {
	h := history.New(0)
	if h.CanUndo() || h.CanRedo() {
		t.Fatal("empty history should not allow undo or redo")
	}
	if h.Undo() || h.Redo() {
		t.Fatal("undo/redo on empty history should report false")
	}
	if h.Position() != -1 {
		t.Fatalf("position = %d, want -1", h.Position())
	}
}

func TestHistory_Branching(t *testing.T) {
	var log []string
	h := history.New(history.DefaultLimit)
	push(h, &log, 5, "c")
	h.Undo()
	h.Undo()
	if h.Position() != 2 {
		t.Fatalf("position = %d, want 2", h.Position())
	}
	if !h.CanRedo() {
		t.Fatal("expected redo to be available after undo")
	}

	h.Push(&recordingCommand{name: "branch", log: &log})
	if h.Len() != 4 {
		t.Fatalf("len = %d, want 4", h.Len())
	}
	if h.CanRedo() {
		t.Fatal("redo must be unavailable after pushing on a branch")
	}
	want := []string{"c0", "c1", "c2", "branch"}
	for i, d := range h.Descriptions() {
		if d != want[i] {
			t.Fatalf("descriptions = %v, want %v", h.Descriptions(), want)
		}
	}
}

func TestHistory_Bound(t *testing.T) {
	var log []string
	h := history.New(50)
	push(h, &log, 51, "c")
	if h.Len() != 50 {
		t.Fatalf("len = %d, want 50", h.Len())
	}
	if h.Position() != 49 {
		t.Fatalf("position = %d, want 49", h.Position())
	}

	undone := 0
	for h.Undo() {
		undone++
	}
	if undone != 50 {
		t.Fatalf("undid %d commands, want 50", undone)
	}
	for _, entry := range log {
		if entry == "undo c0" {
			t.Fatal("evicted command c0 was reachable through undo")
		}
	}
	if log[len(log)-1] != "undo c1" {
		t.Fatalf("last undo = %q, want %q", log[len(log)-1], "undo c1")
	}
}

func TestHistory_UndoRedoOrder(t *testing.T) {
	var log []string
	h := history.New(10)
	push(h, &log, 3, "c")
	h.Undo()
	h.Undo()
	h.Redo()
	h.Redo()
	if h.Redo() {
		t.Fatal("redo at end should report false")
	}
	want := []string{"undo c2", "undo c1", "redo c1", "redo c2"}
	if fmt.Sprint(log) != fmt.Sprint(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
}

func TestHistory_ClearKeepsNothing(t *testing.T) {
	var log []string
	h := history.New(10)
	push(h, &log, 3, "c")
	h.Clear()
	if h.Len() != 0 || h.CanUndo() || h.CanRedo() || h.Position() != -1 {
		t.Fatalf("history not cleared: %+v", h.Availability())
	}
	if len(log) != 0 {
		t.Fatalf("clear must not undo commands, log = %v", log)
	}
}

func TestHistory_Subscribe(t *testing.T) {
	var log []string
	h := history.New(10)
	var got []history.Availability
	unsubscribe := h.Subscribe(func(a history.Availability) { got = append(got, a) })

	push(h, &log, 1, "c")
	h.Undo()
	unsubscribe()
	h.Redo()

	if len(got) != 2 {
		t.Fatalf("got %d notifications, want 2", len(got))
	}
	if !got[0].CanUndo || got[0].CanRedo {
		t.Errorf("after push: %+v", got[0])
	}
	if got[1].CanUndo || !got[1].CanRedo {
		t.Errorf("after undo: %+v", got[1])
	}
}
