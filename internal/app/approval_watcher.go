package app

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	mcpserver "gridboard/internal/mcp"
	"gridboard/internal/service"
)

const (
	EventApprovalRequired = "mcp:approval-required"
	EventLayoutsChanged   = "mcp:layouts-changed"
)

// approvalWatcher polls the database for work done by a standalone MCP
// process: pending deletion approvals and saved layouts. It emits events so
// the frontend can prompt the user and refresh its layout list.
type approvalWatcher struct {
	ctx      context.Context
	db       *sql.DB
	emitter  service.EventEmitter
	interval time.Duration

	mu          sync.Mutex
	lastLayouts string // layouts fingerprint (count + max updated_at)
	emitted     map[string]bool
	stopCh      chan struct{}
	stopOnce    sync.Once
}

func newApprovalWatcher(ctx context.Context, db *sql.DB, emitter service.EventEmitter) *approvalWatcher {
	return &approvalWatcher{ctx: ctx, db: db, emitter: emitter, interval: 2 * time.Second, emitted: map[string]bool{}}
}

// Start begins the polling loop. Should be called once on app startup.
func (w *approvalWatcher) Start() {
	w.stopCh = make(chan struct{})
	go w.pollLoop()
}

// Stop terminates the polling loop.
func (w *approvalWatcher) Stop() {
	if w.stopCh != nil {
		w.stopOnce.Do(func() { close(w.stopCh) })
	}
}

func (w *approvalWatcher) pollLoop() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.check()
		case <-w.stopCh:
			return
		case <-w.ctx.Done():
			return
		}
	}
}

func (w *approvalWatcher) check() {
	// ── Layout list changes ─────────────────────────────
	var count int
	var maxUpdated string
	err := w.db.QueryRow(`SELECT COUNT(*), COALESCE(MAX(updated_at), '') FROM layouts`).Scan(&count, &maxUpdated)
	if err == nil {
		fp := fmt.Sprintf("%d:%s", count, maxUpdated)
		w.mu.Lock()
		changed := w.lastLayouts != "" && w.lastLayouts != fp
		w.lastLayouts = fp
		w.mu.Unlock()
		if changed {
			w.emitter.Emit(w.ctx, EventLayoutsChanged, map[string]int{"count": count})
		}
	}

	// ── Pending MCP approvals (cross-process IPC) ───────
	pending, err := mcpserver.ListPendingInDB(w.db)
	if err != nil {
		return
	}
	live := make(map[string]bool, len(pending))
	for _, p := range pending {
		live[p.ID] = true
		w.mu.Lock()
		alreadySent := w.emitted[p.ID]
		w.emitted[p.ID] = true
		w.mu.Unlock()
		if !alreadySent {
			w.emitter.Emit(w.ctx, EventApprovalRequired, p)
		}
	}

	// Forget approvals the MCP process has resolved and deleted.
	w.mu.Lock()
	for id := range w.emitted {
		if !live[id] {
			delete(w.emitted, id)
		}
	}
	w.mu.Unlock()
}

// ApproveAction approves a pending MCP action.
func (a *App) ApproveAction(actionID string) error {
	return mcpserver.ResolveInDB(a.db.Conn(), actionID, true)
}

// RejectAction rejects a pending MCP action.
func (a *App) RejectAction(actionID string) error {
	return mcpserver.ResolveInDB(a.db.Conn(), actionID, false)
}

// ListPendingActions returns approvals still waiting on the user.
func (a *App) ListPendingActions() ([]mcpserver.PendingAction, error) {
	return mcpserver.ListPendingInDB(a.db.Conn())
}
