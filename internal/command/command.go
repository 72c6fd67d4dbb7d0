// Package command holds the reversible editor operations recorded in the
// history. Each command is built after its effect is live and carries deep
// copies of everything it needs to undo and redo against the store.
package command

import (
	"github.com/charmbracelet/log"

	"gridboard/internal/domain"
	"gridboard/internal/logging"
	"gridboard/internal/state"
)

// Env is what every command needs at undo/redo time.
type Env struct {
	Store  *state.Store
	Logger *log.Logger
}

func (e Env) apply(desc string, fn func(next *state.Snapshot) error) {
	if err := e.Store.Update(fn); err != nil {
		e.logger().Error("history replay failed", "command", desc, "err", err)
	}
}

func (e Env) logger() *log.Logger {
	if e.Logger == nil {
		return logging.Discard()
	}
	return e.Logger
}

func typeLabel(it domain.GridItem) string {
	if it.Name != "" {
		return it.Name
	}
	if it.Type != "" {
		return it.Type
	}
	return "item"
}
