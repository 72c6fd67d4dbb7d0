package frame

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultFrameDuration paces the loop at 60 frames per second.
const DefaultFrameDuration = time.Second / 60

var ErrStopped = errors.New("frame loop stopped")

// Loop is a frame-paced event loop. Posted events run first, then the frame
// callbacks that were requested before the frame began. Every callback runs on
// the goroutine that called Run.
type Loop struct {
	frameDuration time.Duration
	events        chan func()
	stopCh        chan struct{}
	stopOnce      sync.Once

	mu      sync.Mutex
	next    ID
	pending map[ID]func()
	order   []ID
}

func NewLoop(frameDuration time.Duration) *Loop {
	if frameDuration <= 0 {
		frameDuration = DefaultFrameDuration
	}
	return &Loop{
		frameDuration: frameDuration,
		events:        make(chan func(), 1024),
		stopCh:        make(chan struct{}),
		pending:       make(map[ID]func()),
	}
}

// RequestFrame schedules fn for the next frame.
func (l *Loop) RequestFrame(fn func()) ID {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.next++
	l.pending[l.next] = fn
	l.order = append(l.order, l.next)
	return l.next
}

func (l *Loop) CancelFrame(id ID) {
	l.mu.Lock()
	delete(l.pending, id)
	l.mu.Unlock()
}

// Post enqueues fn to run on the loop. It is safe from any goroutine.
func (l *Loop) Post(fn func()) error {
	select {
	case <-l.stopCh:
		return ErrStopped
	default:
	}
	select {
	case l.events <- fn:
		return nil
	case <-l.stopCh:
		return ErrStopped
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	if err := l.Post(func() {
		defer close(done)
		fn()
	}); err != nil {
		return err
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-l.stopCh:
		return ErrStopped
	}
}

// Run processes events and frames until ctx is done or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	ticker := time.NewTicker(l.frameDuration)
	defer ticker.Stop()

	for {
		select {
		case fn := <-l.events:
			fn()
		case <-ticker.C:
			l.runFrame()
		case <-l.stopCh:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Stop terminates Run. It is idempotent.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() { close(l.stopCh) })
}

func (l *Loop) runFrame() {
	l.mu.Lock()
	order := l.order
	l.order = nil
	l.mu.Unlock()

	for _, id := range order {
		l.mu.Lock()
		fn, ok := l.pending[id]
		delete(l.pending, id)
		l.mu.Unlock()
		if ok {
			fn()
		}
	}
}
