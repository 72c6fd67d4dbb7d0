package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"gridboard/internal/domain"
	"gridboard/internal/logging"
)

// ─────────────────────────────────────────────────────────────
// LayoutWatcher: live re-import of an exported layout file
// ─────────────────────────────────────────────────────────────
//
// The editor can export to a JSON file that is then edited by hand or by
// another tool. Every write to the file re-imports it, debounced. Writes
// made by ExportTo itself are recognised and skipped.

const watchDebounce = 500 * time.Millisecond

type LayoutWatcher struct {
	editor   *EditorService
	exec     Executor
	emitter  EventEmitter
	logger   *log.Logger
	debounce time.Duration

	mu      sync.Mutex
	watcher *fsnotify.Watcher
	path    string
	timer   *time.Timer
	written []byte
	done    chan struct{}
}

func NewLayoutWatcher(ctx context.Context, editor *EditorService, exec Executor, emitter EventEmitter) *LayoutWatcher {
	if exec == nil {
		exec = Inline
	}
	if emitter == nil {
		emitter = nopEmitter{}
	}
	return &LayoutWatcher{
		editor:   editor,
		exec:     exec,
		emitter:  emitter,
		logger:   logging.FromContext(ctx).WithPrefix("watch"),
		debounce: watchDebounce,
	}
}

// ExportTo writes the live layout to path as indented JSON.
func (w *LayoutWatcher) ExportTo(ctx context.Context, path string) error {
	var data domain.ExportData
	if err := w.exec(ctx, func() { data = w.editor.Export() }); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}
	w.mu.Lock()
	w.written = raw
	w.mu.Unlock()
	if err := os.WriteFile(path, raw, 0644); err != nil {
		return fmt.Errorf("write layout file: %w", err)
	}
	return nil
}

// Watch starts watching path, replacing any previous watch.
func (w *LayoutWatcher) Watch(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("watch %q: %w", path, err)
	}
	w.Stop()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch dir %q: %w", filepath.Dir(abs), err)
	}

	done := make(chan struct{})
	w.mu.Lock()
	w.watcher, w.path, w.done = watcher, abs, done
	w.mu.Unlock()

	go w.loop(watcher, abs, done)
	w.logger.Info("watching", "path", abs)
	return nil
}

func (w *LayoutWatcher) loop(watcher *fsnotify.Watcher, abs string, done chan struct{}) {
	defer close(done)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.arm(watcher, abs) {
				return
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", "err", err)
		}
	}
}

// arm schedules a debounced reload. It refuses once watcher has been
// stopped or replaced, so no reload is armed after Stop.
func (w *LayoutWatcher) arm(watcher *fsnotify.Watcher, abs string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.watcher != watcher {
		return false
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, func() { w.reload(abs) })
	return true
}

func (w *LayoutWatcher) reload(path string) {
	// A timer that fired while Stop ran must not import.
	w.mu.Lock()
	stale := w.path != path
	w.mu.Unlock()
	if stale {
		return
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		w.logger.Error("read layout file", "path", path, "err", err)
		return
	}
	w.mu.Lock()
	own := bytes.Equal(raw, w.written)
	w.mu.Unlock()
	if own {
		return
	}

	var data domain.ExportData
	if err := json.Unmarshal(raw, &data); err != nil {
		w.logger.Error("decode layout file", "path", path, "err", err)
		return
	}
	ctx := context.Background()
	var importErr error
	if err := w.exec(ctx, func() { importErr = w.editor.Import(data) }); err != nil {
		w.logger.Error("reload layout", "err", err)
		return
	}
	if importErr != nil {
		w.logger.Error("import layout file", "path", path, "err", importErr)
		return
	}
	w.logger.Info("layout reloaded", "path", path)
	w.emitter.Emit(ctx, EventLayoutReloaded, path)
}

// Path returns the watched file, or "" when idle.
func (w *LayoutWatcher) Path() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.path
}

// Stop ends the current watch, if any.
func (w *LayoutWatcher) Stop() {
	w.mu.Lock()
	watcher, done := w.watcher, w.done
	w.watcher, w.path, w.done = nil, "", nil
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.mu.Unlock()

	if watcher != nil {
		watcher.Close()
		<-done
	}
}
