package hub

import "time"

// Clock is the engine's time source. Implementations must be monotonically
// non-decreasing between operations; the engine never reads wall time
// directly, which keeps every operation replayable in tests.
type Clock interface {
	// Now returns the current time in unix seconds.
	Now() uint64
}

// SystemClock reads the system wall clock.
type SystemClock struct{}

// Now returns the current unix time in seconds.
func (SystemClock) Now() uint64 {
	return uint64(time.Now().Unix())
}
