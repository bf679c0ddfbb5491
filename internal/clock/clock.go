package clock

import "time"

// Clock is the time source used for booking and registration timestamps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// System returns a clock backed by time.Now, truncated to whole seconds
// because the flat files store epoch seconds.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().Truncate(time.Second)
}

type fixedClock struct {
	at time.Time
}

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock {
	return fixedClock{at: t}
}

func (c fixedClock) Now() time.Time {
	return c.at
}
