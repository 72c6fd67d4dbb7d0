// Package frame provides display-frame scheduling for the gesture engines.
//
// The editor is single threaded: pointer events, frame callbacks and state
// mutations all run on one loop goroutine. High-frequency pointer input is
// collapsed to at most one visual update per frame with a Coalescer.
package frame

// ID identifies a requested frame callback. The zero ID is never issued.
type ID uint64

// Scheduler runs callbacks on the next display frame.
type Scheduler interface {
	RequestFrame(fn func()) ID
	CancelFrame(id ID)
}

// Coalescer keeps at most one outstanding frame callback. Scheduling a new
// callback cancels the pending one.
type Coalescer struct {
	sched   Scheduler
	pending ID
}

func NewCoalescer(s Scheduler) *Coalescer {
	return &Coalescer{sched: s}
}

func (c *Coalescer) Schedule(fn func()) {
	if c.pending != 0 {
		c.sched.CancelFrame(c.pending)
	}
	var id ID
	id = c.sched.RequestFrame(func() {
		if c.pending == id {
			c.pending = 0
		}
		fn()
	})
	c.pending = id
}

// Cancel drops the pending callback, if any.
func (c *Coalescer) Cancel() {
	if c.pending != 0 {
		c.sched.CancelFrame(c.pending)
		c.pending = 0
	}
}

func (c *Coalescer) Pending() bool {
	return c.pending != 0
}
