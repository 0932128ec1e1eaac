package geometry

import "time"

// TimePoint is a monotonic system time in nanoseconds. Snapshots carry
// one per signal category; staleness is detected by comparing time
// points, never by blocking on the producer.
type TimePoint int64

var base = time.Now()

// Now returns the current monotonic time point. Readings are strictly
// non-decreasing within a process; they are not comparable across
// processes or restarts.
func Now() TimePoint {
	return TimePoint(time.Since(base).Nanoseconds())
}

// Sub returns the duration t - u.
func (t TimePoint) Sub(u TimePoint) time.Duration {
	return time.Duration(t - u)
}

// Age returns how far t lies behind now. A zero or negative age means
// t is current.
func (t TimePoint) Age(now TimePoint) time.Duration {
	return time.Duration(now - t)
}

// IsZero reports whether the time point was never set.
func (t TimePoint) IsZero() bool { return t == 0 }
