package mcpserver

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"gridboard/internal/service"
)

// EventEmitter allows the approval queue to notify the frontend.
type EventEmitter interface {
	Emit(ctx context.Context, event string, data any)
}

const (
	EventApprovalRequired  = "mcp:approval-required"
	EventApprovalDismissed = "mcp:approval-dismissed"
)

// PendingAction represents a destructive operation awaiting user approval.
type PendingAction struct {
	ID          string `json:"id"`
	Tool        string `json:"tool"`
	Description string `json:"description"`
	CreatedAt   string `json:"createdAt"`
	Metadata    string `json:"metadata"` // JSON with extra context (e.g. item IDs)
}

// actionResult is sent through the channel when user approves/rejects.
type actionResult struct {
	approved bool
}

// ApprovalQueue manages human-in-the-loop approval for destructive MCP tool calls.
// It supports two modes:
//   - In-process: uses channels + frontend events
//   - DB-based (standalone MCP): writes to mcp_approvals table, polls for result
type ApprovalQueue struct {
	mu      sync.Mutex
	pending map[string]chan actionResult
	ctx     context.Context
	emitter EventEmitter
	timeout time.Duration
	poll    time.Duration
	// DB-based mode for standalone MCP (cross-process IPC)
	db *sql.DB
}

func NewApprovalQueue(ctx context.Context, emitter EventEmitter) *ApprovalQueue {
	return &ApprovalQueue{
		pending: make(map[string]chan actionResult),
		ctx:     ctx,
		emitter: emitter,
		timeout: 120 * time.Second,
		poll:    500 * time.Millisecond,
	}
}

// SetDB enables DB-based approval mode for standalone MCP.
// The standalone process writes pending actions to SQLite and polls for results.
func (q *ApprovalQueue) SetDB(db *sql.DB) {
	q.db = db
}

// SetTimeout changes how long a request waits for an answer.
func (q *ApprovalQueue) SetTimeout(d time.Duration) {
	q.timeout = d
}

// Request sends an approval request and blocks until approved, rejected,
// timed out or ctx is done. A rejection is (false, nil); a timeout or a
// cancelled ctx is (false, err).
func (q *ApprovalQueue) Request(ctx context.Context, tool, description, metadata string) (bool, error) {
	id := uuid.New().String()
	if metadata == "" {
		metadata = "{}"
	}
	if q.db != nil {
		return q.requestViaDB(ctx, id, tool, description, metadata)
	}
	return q.requestViaChannel(ctx, id, tool, description, metadata)
}

// DeletionHook adapts the queue to the editor's deletion hook. Every
// deletion routed through it waits for the user.
func (q *ApprovalQueue) DeletionHook() service.DeletionHook {
	return func(ctx context.Context, req service.DeletionRequest) (bool, error) {
		meta, err := json.Marshal(req)
		if err != nil {
			return false, fmt.Errorf("encode approval metadata: %w", err)
		}
		return q.Request(ctx, toolFromContext(ctx, req.Kind), req.Description, string(meta))
	}
}

// requestViaDB writes a pending approval to SQLite and polls until resolved.
func (q *ApprovalQueue) requestViaDB(ctx context.Context, id, tool, description, metadata string) (bool, error) {
	_, err := q.db.Exec(
		`INSERT INTO mcp_approvals (id, tool, description, status, metadata) VALUES (?, ?, ?, 'pending', ?)`,
		id, tool, description, metadata,
	)
	if err != nil {
		return false, fmt.Errorf("insert approval: %w", err)
	}
	defer q.db.Exec(`DELETE FROM mcp_approvals WHERE id = ?`, id)

	deadline := time.Now().Add(q.timeout)
	ticker := time.NewTicker(q.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if time.Now().After(deadline) {
				return false, fmt.Errorf("action timed out after %s: %s", q.timeout, tool)
			}
			var status string
			if err := q.db.QueryRow(`SELECT status FROM mcp_approvals WHERE id = ?`, id).Scan(&status); err != nil {
				continue
			}
			switch status {
			case "approved":
				return true, nil
			case "rejected":
				return false, nil
			}
		case <-ctx.Done():
			return false, fmt.Errorf("approval %s: %w", tool, ctx.Err())
		case <-q.ctx.Done():
			return false, fmt.Errorf("approval %s: %w", tool, q.ctx.Err())
		}
	}
}

func (q *ApprovalQueue) requestViaChannel(ctx context.Context, id, tool, description, metadata string) (bool, error) {
	ch := make(chan actionResult, 1)

	q.mu.Lock()
	q.pending[id] = ch
	q.mu.Unlock()
	defer q.cleanup(id)

	q.emitter.Emit(q.ctx, EventApprovalRequired, PendingAction{
		ID:          id,
		Tool:        tool,
		Description: description,
		CreatedAt:   time.Now().UTC().Format(time.RFC3339),
		Metadata:    metadata,
	})

	timer := time.NewTimer(q.timeout)
	defer timer.Stop()
	select {
	case result := <-ch:
		return result.approved, nil
	case <-timer.C:
		q.emitter.Emit(q.ctx, EventApprovalDismissed, map[string]string{"id": id})
		return false, fmt.Errorf("action timed out after %s: %s", q.timeout, tool)
	case <-ctx.Done():
		q.emitter.Emit(q.ctx, EventApprovalDismissed, map[string]string{"id": id})
		return false, fmt.Errorf("approval %s: %w", tool, ctx.Err())
	}
}

// Approve marks a pending action as approved (in-process mode).
func (q *ApprovalQueue) Approve(actionID string) {
	q.resolve(actionID, true)
}

// Reject marks a pending action as rejected (in-process mode).
func (q *ApprovalQueue) Reject(actionID string) {
	q.resolve(actionID, false)
}

func (q *ApprovalQueue) resolve(actionID string, approved bool) {
	q.mu.Lock()
	ch, ok := q.pending[actionID]
	q.mu.Unlock()
	if !ok {
		return
	}
	select {
	case ch <- actionResult{approved: approved}:
	default:
	}
}

func (q *ApprovalQueue) cleanup(id string) {
	q.mu.Lock()
	delete(q.pending, id)
	q.mu.Unlock()
}

// ResolveInDB answers a pending DB-mode approval from another process.
func ResolveInDB(db *sql.DB, actionID string, approved bool) error {
	status := "rejected"
	if approved {
		status = "approved"
	}
	res, err := db.Exec(`UPDATE mcp_approvals SET status = ? WHERE id = ? AND status = 'pending'`, status, actionID)
	if err != nil {
		return fmt.Errorf("resolve approval: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("resolve approval: %s is not pending", actionID)
	}
	return nil
}

// ListPendingInDB returns the approvals waiting for an answer.
func ListPendingInDB(db *sql.DB) ([]PendingAction, error) {
	rows, err := db.Query(`SELECT id, tool, description, created_at, metadata FROM mcp_approvals WHERE status = 'pending' ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list approvals: %w", err)
	}
	defer rows.Close()
	var out []PendingAction
	for rows.Next() {
		var a PendingAction
		if err := rows.Scan(&a.ID, &a.Tool, &a.Description, &a.CreatedAt, &a.Metadata); err != nil {
			return nil, fmt.Errorf("scan approval: %w", err)
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

type toolKey struct{}

// withTool records the calling tool so approval prompts can name it.
func withTool(ctx context.Context, tool string) context.Context {
	return context.WithValue(ctx, toolKey{}, tool)
}

func toolFromContext(ctx context.Context, fallback string) string {
	if t, ok := ctx.Value(toolKey{}).(string); ok && t != "" {
		return t
	}
	return fallback
}
