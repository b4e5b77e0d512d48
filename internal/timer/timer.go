package timer

import (
	"sync"
	"time"
)

// Timer tracks one running work session. Elapsed time is always derived from
// the start instant, so a missed display tick never drifts the count.
type Timer struct {
	mu        sync.RWMutex
	running   bool
	startedAt time.Time
}

func New() *Timer {
	return &Timer{}
}

// Start begins a session at now. It reports false if one is already running.
func (t *Timer) Start(now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.running {
		return false
	}

	t.running = true
	t.startedAt = now
	return true
}

// Stop ends the session and returns its start instant. It reports false if
// nothing was running.
func (t *Timer) Stop() (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.running {
		return time.Time{}, false
	}

	t.running = false
	return t.startedAt, true
}

// Reset discards the current session without recording it.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.running = false
	t.startedAt = time.Time{}
}

func (t *Timer) StartedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.startedAt
}

// Elapsed is the time since the start instant, truncated to whole seconds.
// It is zero when the timer is not running.
func (t *Timer) Elapsed(now time.Time) time.Duration {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if !t.running {
		return 0
	}
	d := now.Sub(t.startedAt).Truncate(time.Second)
	if d < 0 {
		return 0
	}
	return d
}

func (t *Timer) Running() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.running
}
