package frame

// Manual is a Scheduler that only runs callbacks when Flush is called.
type Manual struct {
	next    ID
	pending map[ID]func()
	order   []ID
	frames  int
}

func NewManual() *Manual {
	return &Manual{pending: make(map[ID]func())}
}

func (m *Manual) RequestFrame(fn func()) ID {
	m.next++
	m.pending[m.next] = fn
	m.order = append(m.order, m.next)
	return m.next
}

func (m *Manual) CancelFrame(id ID) {
	delete(m.pending, id)
}

// Pending reports how many callbacks are waiting for the next frame.
func (m *Manual) Pending() int {
	return len(m.pending)
}

// Frames reports how many non-empty frames have been flushed.
func (m *Manual) Frames() int {
	return m.frames
}

// Flush runs one frame: every callback requested before the call, in order.
func (m *Manual) Flush() int {
	order := m.order
	m.order = nil
	ran := 0
	for _, id := range order {
		fn, ok := m.pending[id]
		if !ok {
			continue
		}
		delete(m.pending, id)
		fn()
		ran++
	}
	if ran > 0 {
		m.frames++
	}
	return ran
}
