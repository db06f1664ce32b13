package clock

import "time"

// Clock is the time source for join timestamps
type Clock interface {
	Now() time.Time
}

// System reads the wall clock, in UTC
type System struct{}

// New returns the system clock
func New() System {
	return System{}
}

// Now returns the current UTC time
func (System) Now() time.Time {
	return time.Now().UTC()
}
