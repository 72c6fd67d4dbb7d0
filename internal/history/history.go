// Package history implements a bounded, branching undo/redo stack.
//
// Commands are recorded after their effect has already been applied to the
// live state; Push never applies a command. Pushing after an undo discards the
// redo branch. When the bound is exceeded the oldest command is evicted.
package history

import "fmt"

// DefaultLimit bounds the number of retained commands.
const DefaultLimit = 50

// Command is a reversible mutation.
type Command interface {
	Undo()
	Redo()
	Description() string
}

// Availability is published to subscribers after every change.
type Availability struct {
	CanUndo  bool `json:"canUndo"`
	CanRedo  bool `json:"canRedo"`
	Position int  `json:"position"`
	Length   int  `json:"length"`
}

// History is a bounded undo/redo stack. position indexes the last applied
// command; -1 means nothing to undo. Not safe for concurrent use.
type History struct {
	commands  []Command
	position  int
	limit     int
	nextSub   int
	listeners map[int]func(Availability)
	subOrder  []int
}

// New returns an empty History holding at most limit commands. A
// non-positive limit selects DefaultLimit.
func New(limit int) *History {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &History{position: -1, limit: limit, listeners: make(map[int]func(Availability))}
}

// Push records cmd as the newest command.
func (h *History) Push(cmd Command) {
	h.commands = append(h.commands[:h.position+1:h.position+1], cmd)
	if len(h.commands) > h.limit {
		h.commands[0] = nil
		h.commands = h.commands[1:]
	}
	h.position = len(h.commands) - 1
	h.publish()
}

// Undo reverses the current command. It reports false when there is nothing to undo.
func (h *History) Undo() bool {
	h.checkPosition()
	if h.position < 0 {
		return false
	}
	h.commands[h.position].Undo()
	h.position--
	h.publish()
	return true
}

// Redo replays the command after the current position. It reports false at
// the end of the history.
func (h *History) Redo() bool {
	h.checkPosition()
	if h.position >= len(h.commands)-1 {
		return false
	}
	h.position++
	h.commands[h.position].Redo()
	h.publish()
	return true
}

func (h *History) CanUndo() bool { return h.position >= 0 }

func (h *History) CanRedo() bool { return h.position < len(h.commands)-1 }

func (h *History) Len() int { return len(h.commands) }

func (h *History) Position() int { return h.position }

func (h *History) Limit() int { return h.limit }

// Clear forgets every command. The live state is untouched.
func (h *History) Clear() {
	clear(h.commands)
	h.commands = nil
	h.position = -1
	h.publish()
}

// Descriptions lists command descriptions oldest first.
func (h *History) Descriptions() []string {
	out := make([]string, len(h.commands))
	for i, c := range h.commands {
		out[i] = c.Description()
	}
	return out
}

func (h *History) Availability() Availability {
	return Availability{
		CanUndo:  h.CanUndo(),
		CanRedo:  h.CanRedo(),
		Position: h.position,
		Length:   len(h.commands),
	}
}

// Subscribe registers fn for availability changes and returns a function that
// removes it.
func (h *History) Subscribe(fn func(Availability)) func() {
	id := h.nextSub
	h.nextSub++
	h.listeners[id] = fn
	h.subOrder = append(h.subOrder, id)
	return func() {
		delete(h.listeners, id)
		for i, v := range h.subOrder {
			if v == id {
				h.subOrder = append(h.subOrder[:i], h.subOrder[i+1:]...)
				break
			}
		}
	}
}

func (h *History) publish() {
	a := h.Availability()
	for _, id := range h.subOrder {
		if fn, ok := h.listeners[id]; ok {
			fn(a)
		}
	}
}

func (h *History) checkPosition() {
	if h.position < -1 || h.position > len(h.commands)-1 {
		panic(fmt.Sprintf("history: position %d out of range for %d commands", h.position, len(h.commands)))
	}
}
