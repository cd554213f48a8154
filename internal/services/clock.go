package services

import "time"

// Clock abstracts time retrieval so timestamps are deterministic in tests.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// stamp returns the clock's time in UTC at the millisecond precision the
// website has always stored.
func stamp(c Clock) time.Time {
	return c.Now().UTC().Truncate(time.Millisecond)
}
