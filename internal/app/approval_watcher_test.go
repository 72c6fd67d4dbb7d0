package app

import (
	"context"
	"path/filepath"
	"testing"

	"gridboard/internal/domain"
	mcpserver "gridboard/internal/mcp"
	"gridboard/internal/service"
	"gridboard/internal/storage"
)

func TestApprovalWatcher_EmitsOncePerApproval(t *testing.T) {
	dir := t.TempDir()
	db, err := openStorage(dir)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	if filepath.Dir(db.DataDir()) != dir {
		t.Errorf("exports should live under the data dir, got %s", db.DataDir())
	}

	emitter := &service.MockEmitter{}
	w := newApprovalWatcher(context.Background(), db.Conn(), emitter)

	_, err = db.Conn().Exec(`INSERT INTO mcp_approvals (id, tool, description, metadata) VALUES ('a1', 'delete_items', 'Delete 2 item(s)', '{}')`)
	if err != nil {
		t.Fatal(err)
	}
	w.check()
	w.check()
	if n := emitter.Count(EventApprovalRequired); n != 1 {
		t.Fatalf("expected one approval event, got %d", n)
	}
	got := emitter.Events[len(emitter.Events)-1].Data.(mcpserver.PendingAction)
	if got.ID != "a1" || got.Tool != "delete_items" {
		t.Errorf("unexpected payload %+v", got)
	}

	if err := mcpserver.ResolveInDB(db.Conn(), "a1", true); err != nil {
		t.Fatal(err)
	}
	w.check()
	if len(w.emitted) != 0 {
		t.Errorf("resolved approvals should be forgotten, still tracking %v", w.emitted)
	}
	if n := emitter.Count(EventLayoutsChanged); n != 0 {
		t.Errorf("first poll only records the baseline, got %d layout events", n)
	}

	doc := &domain.LayoutDocument{ID: "l1", Name: "Launch", Data: domain.ExportData{Version: domain.ExportVersion, Canvases: map[string]domain.ExportCanvas{}}}
	if err := storage.NewLayoutStore(db).SaveLayout(doc); err != nil {
		t.Fatal(err)
	}
	w.check()
	if n := emitter.Count(EventLayoutsChanged); n != 1 {
		t.Errorf("expected one layouts-changed event, got %d", n)
	}
}

func TestApprovalWatcher_StopIsIdempotent(t *testing.T) {
	w := newApprovalWatcher(context.Background(), nil, &service.MockEmitter{})
	w.Stop()
	w.stopCh = make(chan struct{})
	w.Stop()
	w.Stop()
}
