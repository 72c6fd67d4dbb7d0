package frame

import (
	"context"
	"testing"
	"time"
)

func TestCoalescer_OneCallbackPerFrame(t *testing.T) {
	m := NewManual()
	c := NewCoalescer(m)

	calls := 0
	last := 0
	for i := 1; i <= 100; i++ {
		v := i
		c.Schedule(func() {
			calls++
			last = v
		})
		if m.Pending() != 1 {
			t.Fatalf("after %d schedules: %d pending, want 1", i, m.Pending())
		}
	}
	m.Flush()
	if calls != 1 || last != 100 {
		t.Fatalf("calls=%d last=%d, want 1 and 100", calls, last)
	}
	if c.Pending() {
		t.Fatal("coalescer still reports a pending frame after it ran")
	}
}

func TestCoalescer_Cancel(t *testing.T) {
	m := NewManual()
	c := NewCoalescer(m)
	ran := false
	c.Schedule(func() { ran = true })
	c.Cancel()
	m.Flush()
	if ran {
		t.Fatal("cancelled callback ran")
	}
	if m.Pending() != 0 {
		t.Fatalf("%d callbacks pending after cancel", m.Pending())
	}
}

func TestManual_RequestDuringFlushRunsNextFrame(t *testing.T) {
	m := NewManual()
	order := []string{}
	m.RequestFrame(func() {
		order = append(order, "a")
		m.RequestFrame(func() { order = append(order, "b") })
	})
	if n := m.Flush(); n != 1 {
		t.Fatalf("first flush ran %d callbacks, want 1", n)
	}
	if n := m.Flush(); n != 1 {
		t.Fatalf("second flush ran %d callbacks, want 1", n)
	}
	if len(order) != 2 || order[0] != "a" || order[1] != "b" {
		t.Fatalf("order = %v", order)
	}
}

func TestLoop_DoRunsOnLoop(t *testing.T) {
	l := NewLoop(time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)
	defer l.Stop()

	got := 0
	if err := l.Do(ctx, func() { got = 42 }); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if got != 42 {
		t.Fatalf("got %d, want 42", got)
	}
}

func TestLoop_FrameCallbacksCoalesce(t *testing.T) {
	l := NewLoop(5 * time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)
	defer l.Stop()

	ran := make(chan int, 10)
	err := l.Do(ctx, func() {
		c := NewCoalescer(l)
		for i := 0; i < 10; i++ {
			v := i
			c.Schedule(func() { ran <- v })
		}
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}

	select {
	case v := <-ran:
		if v != 9 {
			t.Fatalf("ran callback %d, want 9", v)
		}
	case <-time.After(time.Second):
		t.Fatal("frame callback never ran")
	}
	select {
	case v := <-ran:
		t.Fatalf("unexpected extra callback %d", v)
	case <-time.After(30 * time.Millisecond):
	}
}

func TestLoop_PostAfterStop(t *testing.T) {
	l := NewLoop(time.Millisecond)
	l.Stop()
	l.Stop()
	if err := l.Post(func() {}); err != ErrStopped {
		t.Fatalf("Post after Stop = %v, want ErrStopped", err)
	}
}
