// Package debounce provides the cancellable scheduled-task primitive
// behind interactive search: one pending timer, reset on every trigger,
// firing at most once per quiet window.
package debounce

import (
	"sync"
	"time"
)

// Debouncer coalesces a burst of triggers into a single callback that
// runs after the quiet window elapses without further triggers. Only the
// function passed to the most recent Trigger runs.
type Debouncer struct {
	window time.Duration
	mu     sync.Mutex
	timer  *time.Timer
}

// New creates a Debouncer with the given quiet window.
func New(window time.Duration) *Debouncer {
	return &Debouncer{window: window}
}

// Trigger schedules fn to run once the quiet window passes. Any
// previously pending callback is cancelled first.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, fn)
}

// Stop cancels any pending callback.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Window returns the configured quiet window.
func (d *Debouncer) Window() time.Duration {
	return d.window
}
