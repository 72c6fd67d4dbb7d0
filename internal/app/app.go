package app

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	wailsRuntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"gridboard/internal/frame"
	"gridboard/internal/logging"
	"gridboard/internal/plugins"
	"gridboard/internal/secret"
	"gridboard/internal/service"
	"gridboard/internal/storage"
)

// App is the main Wails application struct.
// All exported methods are available as Wails bindings.
type App struct {
	ctx    context.Context
	logger *log.Logger

	db        *storage.DB
	loop      *frame.Loop
	editor    *service.EditorService
	layouts   *service.LayoutService
	settings  *service.SettingsService
	mirror    *service.MirrorService
	watcher   *service.LayoutWatcher
	approvals *approvalWatcher

	autosaveMu sync.Mutex
	autosaver  *service.Autosaver

	// Gesture state is only touched on the loop goroutine.
	surface     *eventSurface
	controllers map[string]*service.ItemController
}

// New creates a new App.
func New() *App {
	return &App{}
}

// DataDir returns where gridboard keeps its database and exports.
// GRIDBOARD_DATA_DIR overrides the default.
func DataDir() string {
	if dir := os.Getenv("GRIDBOARD_DATA_DIR"); dir != "" {
		return dir
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".local", "share", "gridboard")
}

// openStorage opens the database under dataDir.
func openStorage(dataDir string) (*storage.DB, error) {
	return storage.New(filepath.Join(dataDir, "gridboard.db"), filepath.Join(dataDir, "exports"))
}

// newRegistry returns a registry holding the built-in components.
func newRegistry() *service.DefinitionRegistry {
	reg := service.NewDefinitionRegistry()
	plugins.RegisterBuiltins(reg)
	return reg
}

// Startup is called when the app starts.
func (a *App) Startup(ctx context.Context) {
	a.logger = logging.New(os.Stderr, logging.ParseLevel(os.Getenv("GRIDBOARD_LOG_LEVEL")))
	ctx = logging.WithLogger(ctx, a.logger)
	a.ctx = ctx

	db, err := openStorage(DataDir())
	if err != nil {
		wailsRuntime.LogFatalf(ctx, "Failed to open database: %v", err)
		return
	}
	a.db = db
	a.settings = service.NewSettingsService(db)

	opts := service.DefaultEditorOptions()
	opts.Grid = a.settings.LoadGridSettings()
	a.loop = frame.NewLoop(opts.FrameDuration())
	go func() {
		if err := a.loop.Run(ctx); err != nil && err != context.Canceled {
			a.logger.Error("frame loop stopped", "err", err)
		}
	}()

	emitter := wailsEmitter{}
	a.editor = service.NewEditorService(ctx, opts, newRegistry(), a.loop, emitter)
	a.surface = newEventSurface(func(event string, data any) { wailsRuntime.EventsEmit(ctx, event, data) })
	a.controllers = make(map[string]*service.ItemController)
	_ = a.loop.Do(ctx, func() {
		a.watchItems()
		if _, err := a.editor.AddCanvas("main"); err != nil {
			a.logger.Error("add default canvas", "err", err)
		}
		a.editor.ClearHistory()
	})

	a.layouts = service.NewLayoutService(ctx, a.editor, a.loop.Do, storage.NewLayoutStore(db), storage.NewRevisionStore(db), emitter)
	a.mirror = service.NewMirrorService(storage.NewMirrorTargetStore(db), secret.NewKeychainStore())
	a.layouts.SetMirror(a.mirror)
	a.watcher = service.NewLayoutWatcher(ctx, a.editor, a.loop.Do, emitter)

	if err := a.startAutosave(a.settings.AutosaveSchedule()); err != nil {
		a.logger.Warn("falling back to default autosave", "err", err)
		_ = a.startAutosave("")
	}

	a.approvals = newApprovalWatcher(ctx, db.Conn(), emitter)
	a.approvals.Start()

	if size := a.settings.LoadWindowSize(); size.Width > 0 {
		wailsRuntime.WindowSetSize(ctx, size.Width, size.Height)
	}
	a.logger.Info("started", "data", DataDir())
}

// Shutdown is called when the app is closing.
func (a *App) Shutdown(ctx context.Context) {
	if a.approvals != nil {
		a.approvals.Stop()
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.autosaveMu.Lock()
	if a.autosaver != nil {
		stopCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		a.autosaver.Stop(stopCtx)
		cancel()
	}
	a.autosaveMu.Unlock()
	if a.loop != nil {
		a.loop.Stop()
	}
	if a.db != nil {
		a.db.Close()
	}
}

func (a *App) startAutosave(spec string) error {
	a.autosaveMu.Lock()
	defer a.autosaveMu.Unlock()
	next := service.NewAutosaver(a.ctx, a.layouts, spec)
	if err := next.Start(); err != nil {
		return err
	}
	if a.autosaver != nil {
		stopCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
		a.autosaver.Stop(stopCtx)
		cancel()
	}
	a.autosaver = next
	return nil
}

// do runs fn on the frame loop and waits for it.
func (a *App) do(fn func()) error {
	return a.loop.Do(a.ctx, fn)
}

// wailsEmitter forwards service events to the frontend.
type wailsEmitter struct{}

func (wailsEmitter) Emit(ctx context.Context, event string, data any) {
	wailsRuntime.EventsEmit(ctx, event, data)
}
