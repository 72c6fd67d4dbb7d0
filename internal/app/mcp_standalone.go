package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gridboard/internal/frame"
	"gridboard/internal/logging"
	mcpserver "gridboard/internal/mcp"
	"gridboard/internal/service"
	"gridboard/internal/storage"
)

// noopEmitter is a no-op EventEmitter used in MCP-only mode (no Wails frontend).
type noopEmitter struct{}

func (noopEmitter) Emit(_ context.Context, _ string, _ any) {}

// ServeMCP runs the editor as a standalone MCP server on stdin/stdout with no
// GUI. Deletions wait for approval from a running app through the database.
func ServeMCP() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// stdout carries the protocol; logs go to stderr.
	logger := logging.New(os.Stderr, logging.ParseLevel(os.Getenv("GRIDBOARD_LOG_LEVEL"))).WithPrefix("mcp")
	ctx = logging.WithLogger(ctx, logger)

	db, err := openStorage(DataDir())
	if err != nil {
		logger.Fatal("Failed to open database", "err", err)
	}
	defer db.Close()

	opts := service.DefaultEditorOptions()
	opts.Grid = service.NewSettingsService(db).LoadGridSettings()
	loop := frame.NewLoop(opts.FrameDuration())
	go loop.Run(ctx)
	defer loop.Stop()

	emitter := noopEmitter{}
	editor := service.NewEditorService(ctx, opts, newRegistry(), loop, emitter)
	if err := loop.Do(ctx, func() {
		if _, err := editor.AddCanvas("main"); err == nil {
			editor.ClearHistory()
		}
	}); err != nil {
		logger.Fatal("editor loop", "err", err)
	}
	layouts := service.NewLayoutService(ctx, editor, loop.Do, storage.NewLayoutStore(db), storage.NewRevisionStore(db), emitter)

	mcpSrv, err := mcpserver.New(ctx, mcpserver.Deps{
		Emitter:    emitter,
		Editor:     editor,
		Exec:       loop.Do,
		Layouts:    layouts,
		ApprovalDB: db.Conn(), // Enable SQLite-based approval IPC
	})
	if err != nil {
		logger.Fatal("MCP server setup", "err", err)
	}

	logger.Info("Starting standalone stdio server...")
	if err := mcpSrv.ServeStdio(); err != nil {
		logger.Fatal("MCP server error", "err", err)
	}
}
