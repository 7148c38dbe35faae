package shared

import "time"

// Clock provides the current time. Billing classification, schedule
// resolution and tier computation are all date-dependent, so every
// entry point receives a Clock instead of reading the system time.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by time.Now
type SystemClock struct{}

// Now returns the current system time
func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock is a Clock frozen at a single instant, for tests
type FixedClock struct {
	Time time.Time
}

// Now returns the fixed instant
func (c FixedClock) Now() time.Time {
	return c.Time
}

// NewFixedClock creates a FixedClock at the given instant
func NewFixedClock(t time.Time) FixedClock {
	return FixedClock{Time: t}
}
