package app

import "time"

// ResizeDelay is how long the window size must stay unchanged before the
// particle populations are rebuilt.
const ResizeDelay = 200 * time.Millisecond

// Debouncer coalesces bursts of size changes into one.
//
// Every Trigger restarts the delay; Poll yields the last size once the
// delay has passed without another Trigger.
type Debouncer struct {
	delay   time.Duration
	pending bool
	due     time.Time
	w, h    int
}

// NewDebouncer creates a debouncer with the given delay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{delay: delay}
}

// Trigger records a new size at time now.
func (d *Debouncer) Trigger(now time.Time, w, h int) {
	d.pending = true
	d.due = now.Add(d.delay)
	d.w, d.h = w, h
}

// Poll returns the settled size once it is due. Each settled size is
// returned once.
func (d *Debouncer) Poll(now time.Time) (w, h int, ok bool) {
	if !d.pending || now.Before(d.due) {
		return 0, 0, false
	}
	d.pending = false
	return d.w, d.h, true
}

// Pending reports whether a size is waiting to settle.
func (d *Debouncer) Pending() bool {
	return d.pending
}
