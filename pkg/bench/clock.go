package bench

import "time"

// Clock supplies the current time to marks.
// The default clock is time.Now, whose monotonic reading keeps diffs immune to
// wall-clock adjustments.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface
type ClockFunc func() time.Time

// Now implements Clock
func (f ClockFunc) Now() time.Time {
	return f()
}

var systemClock Clock = ClockFunc(time.Now)
