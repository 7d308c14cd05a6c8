package session

import (
	"context"
	"sync"
	"time"
)

// Loop drives a Session from its own goroutine on a fixed ticker. It is
// the scheduler for hosts without an event loop of their own.
type Loop struct {
	s        *Session
	interval time.Duration

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewLoop creates a loop that calls Frame tickRate times per second.
func NewLoop(s *Session, tickRate int) *Loop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Loop{
		s:        s,
		interval: time.Second / time.Duration(tickRate),
		done:     make(chan struct{}),
	}
}

// Start activates the session and begins scheduling frames. The loop ends
// when the session stops wanting frames, when ctx is done, or on Stop.
// Calling Start twice has no effect.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.started {
		return
	}
	l.started = true

	ctx, l.cancel = context.WithCancel(ctx)
	l.s.SetActive(true)
	go l.run(ctx)
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.s.SetActive(false)
			return
		case <-ticker.C:
			// A tick and a cancellation can be ready together; the
			// cancellation wins.
			if ctx.Err() != nil {
				l.s.SetActive(false)
				return
			}
			if !l.s.Frame() {
				return
			}
		}
	}
}

// Stop cancels the pending frame, waits for the loop goroutine to exit and
// leaves the session deactivated. When Stop returns no frame, callback or
// listener of the session can run. It is idempotent. It must not be called
// from inside a session callback, which runs on the loop goroutine.
func (l *Loop) Stop() {
	l.mu.Lock()
	started := l.started
	cancel := l.cancel
	l.mu.Unlock()

	if !started {
		return
	}
	cancel()
	<-l.done
	l.s.SetActive(false)
}

// Done is closed once the loop goroutine has exited.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
