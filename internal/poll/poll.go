// Package poll provides a restartable interval timer for driving
// periodic refresh work, such as polling a server for task updates.
package poll

import (
	"sync"
	"time"
)

// Ticker invokes a callback at a fixed interval while enabled. The
// callback can be swapped at any time without disturbing the timer, and
// polling can be paused and resumed. The callback runs synchronously on
// the ticker's goroutine, so an invocation never overlaps the next one;
// callers whose callbacks hand work to other goroutines must guard
// against overlapping work themselves.
type Ticker struct {
	interval time.Duration

	mu      sync.Mutex
	fn      func()
	enabled bool
	started bool

	done      chan struct{}
	closeOnce sync.Once
}

// New creates a Ticker that will invoke fn every interval once enabled.
// The timer does not start until the first SetEnabled(true).
func New(interval time.Duration, fn func()) *Ticker {
	return &Ticker{
		interval: interval,
		fn:       fn,
		done:     make(chan struct{}),
	}
}

// Set replaces the callback. The timer keeps its cadence; the next tick
// invokes the new callback.
func (t *Ticker) Set(fn func()) {
	t.mu.Lock()
	t.fn = fn
	t.mu.Unlock()
}

// SetEnabled pauses or resumes the ticker. The underlying timer starts
// lazily on the first enable and keeps running while paused; a paused
// ticker simply skips its callback.
func (t *Ticker) SetEnabled(enabled bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.enabled = enabled
	if enabled && !t.started {
		t.started = true
		go t.loop()
	}
}

// Close stops the ticker permanently. Safe to call more than once.
func (t *Ticker) Close() {
	t.closeOnce.Do(func() {
		close(t.done)
	})
}

func (t *Ticker) loop() {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.mu.Lock()
			fn := t.fn
			enabled := t.enabled
			t.mu.Unlock()

			if enabled && fn != nil {
				fn()
			}
		}
	}
}
