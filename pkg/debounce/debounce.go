// Package debounce provides a cancelable, fire-once timer that coalesces bursts
// of triggers into a single call after a quiet period.
package debounce

import (
	"sync"
	"time"
)

// Timer runs fn once after delay has elapsed without a new Trigger.
// A Trigger while a call is pending cancels it and schedules a new one.
type Timer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func()
	timer   *time.Timer
	gen     uint64
	pending bool
}

// New creates a Timer. Nothing is scheduled until Trigger is called.
func New(delay time.Duration, fn func()) *Timer {
	return &Timer{delay: delay, fn: fn}
}

// Trigger cancels any pending call and schedules fn after the delay.
func (t *Timer) Trigger() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}

	t.gen++
	gen := t.gen
	t.pending = true
	t.timer = time.AfterFunc(t.delay, func() { t.fire(gen) })
}

// Stop cancels a pending call. It reports whether a call was pending.
func (t *Timer) Stop() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cancel()
}

// Flush cancels a pending call and runs fn synchronously in its place.
// It reports whether a call was pending.
func (t *Timer) Flush() bool {
	t.mu.Lock()
	was := t.cancel()
	t.mu.Unlock()

	if was {
		t.fn()
	}
	return was
}

// Pending reports whether a call is scheduled and has not yet started.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending
}

func (t *Timer) cancel() bool {
	if !t.pending {
		return false
	}
	if t.timer != nil {
		t.timer.Stop()
	}
	// invalidate a callback that already fired but has not taken the lock
	t.gen++
	t.pending = false
	return true
}

func (t *Timer) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || !t.pending {
		t.mu.Unlock()
		return
	}
	t.pending = false
	t.mu.Unlock()

	t.fn()
}
