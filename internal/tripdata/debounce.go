package tripdata

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of triggers into one callback after a quiet
// period, trailing edge. Each grid's search box owns its own instance so
// typing in one grid never delays another's.
type Debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	timer *time.Timer
}

// DefaultSearchDelay is the quiet period for grid search input.
const DefaultSearchDelay = 300 * time.Millisecond

// NewDebouncer creates a Debouncer with the given quiet period.
// Non-positive delays use DefaultSearchDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultSearchDelay
	}
	return &Debouncer{delay: delay}
}

// Trigger schedules fn to run after the quiet period. A trigger before
// the period elapses discards the pending callback and restarts the
// clock; only the last fn of a burst runs.
func (d *Debouncer) Trigger(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, fn)
}

// Cancel discards any pending callback.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
