package utils

import "time"

// Timer measures the wall-clock time of one step, such as fetching a source
// or writing a file. NewTimer starts it; Stop freezes the duration.
type Timer struct {
	start    time.Time
	duration time.Duration
}

// NewTimer returns a running timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// Start restarts the measurement.
func (t *Timer) Start() {
	t.start = time.Now()
}

// Stop records the time elapsed since the last start and returns it.
func (t *Timer) Stop() time.Duration {
	t.duration = time.Since(t.start)
	return t.duration
}

// GetDuration returns the duration captured by the last Stop, or zero.
func (t *Timer) GetDuration() time.Duration {
	return t.duration
}
