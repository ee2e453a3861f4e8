package session

import (
	"context"
	"sync"
)

// Loop is a headless event loop: events are dispatched one at a time on the
// goroutine running Run, and tasks run on their own goroutines.
type Loop struct {
	s      *Session
	events chan Event
	wg     sync.WaitGroup

	stopped  chan struct{}
	stopOnce sync.Once
}

func NewLoop(s *Session, buffer int) *Loop {
	return &Loop{s: s, events: make(chan Event, buffer), stopped: make(chan struct{})}
}

type call struct {
	fn   func(*Session)
	done chan struct{}
}

func (call) event() {}

// Do runs fn on the loop goroutine and waits for it to return. It reports
// false without running fn once Run has returned. It must not be called from
// inside the loop.
func (l *Loop) Do(fn func(*Session)) bool {
	done := make(chan struct{})
	select {
	case l.events <- call{fn: fn, done: done}:
	case <-l.stopped:
		return false
	}
	select {
	case <-done:
		return true
	case <-l.stopped:
		return false
	}
}

// Post enqueues an event. It blocks when the buffer is full and drops the
// event once Run has returned.
func (l *Loop) Post(ev Event) {
	select {
	case l.events <- ev:
	case <-l.stopped:
	}
}

// Run dispatches events until ctx is done, then waits for running tasks.
// Completions arriving after cancellation are dropped.
func (l *Loop) Run(ctx context.Context) {
	defer l.wg.Wait()
	defer l.stopOnce.Do(func() { close(l.stopped) })
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-l.events:
			if c, ok := ev.(call); ok {
				c.fn(l.s)
				close(c.done)
				continue
			}
			if task := l.s.Dispatch(ev); task != nil {
				l.spawn(ctx, task)
			}
		}
	}
}

func (l *Loop) spawn(ctx context.Context, task Task) {
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		ev := task(ctx)
		select {
		case l.events <- ev:
		case <-ctx.Done():
		}
	}()
}
