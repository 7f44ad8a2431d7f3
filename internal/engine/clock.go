package engine

import "time"

// Clock abstracts time.Now() to allow deterministic testing.
// Derivation functions take "now" as an explicit argument; callers obtain it
// from a Clock so that no system clock is read inside the engine.
type Clock interface {
	Now() time.Time
}

// RealClock implements Clock using the standard time package.
type RealClock struct{}

// Now returns the current local time.
func (RealClock) Now() time.Time {
	return time.Now()
}
