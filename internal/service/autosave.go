package service

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron/v3"

	"gridboard/internal/logging"
)

// ─────────────────────────────────────────────────────────────
// Autosaver: periodic revisions of the open layout
// ─────────────────────────────────────────────────────────────

type Autosaver struct {
	layouts *LayoutService
	spec    string
	guard   saveGuard
	logger  *log.Logger
	cron    *cron.Cron
}

// NewAutosaver schedules revisions with a cron spec such as "@every 30s".
func NewAutosaver(ctx context.Context, layouts *LayoutService, spec string) *Autosaver {
	if spec == "" {
		spec = defaultAutosaveSpec
	}
	return &Autosaver{layouts: layouts, spec: spec, logger: logging.FromContext(ctx).WithPrefix("autosave")}
}

func (a *Autosaver) Start() error {
	c := cron.New()
	if _, err := c.AddFunc(a.spec, func() { a.RunOnce(context.Background()) }); err != nil {
		return fmt.Errorf("autosave: invalid schedule %q: %w", a.spec, err)
	}
	c.Start()
	a.cron = c
	a.logger.Info("scheduled", "spec", a.spec)
	return nil
}

// RunOnce saves a revision unless one is already being saved for the open
// layout. It reports whether a revision was written.
func (a *Autosaver) RunOnce(ctx context.Context) bool {
	id, _ := a.layouts.Current()
	if id == "" {
		return false
	}
	if !a.guard.TryLock(id) {
		a.logger.Debug("save already running", "layout", id)
		return false
	}
	defer a.guard.Unlock(id)

	saved, err := a.layouts.SaveRevision(ctx, "autosave")
	if err != nil {
		a.logger.Error("autosave failed", "layout", id, "err", err)
		return false
	}
	return saved
}

// Stop halts the schedule and waits for a running save, bounded by ctx.
func (a *Autosaver) Stop(ctx context.Context) {
	if a.cron != nil {
		select {
		case <-a.cron.Stop().Done():
		case <-ctx.Done():
		}
		a.cron = nil
	}
	a.guard.WaitAll(ctx)
}
