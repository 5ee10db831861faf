package clock

import "time"

// Clock abstracts time so attendance resolution is reproducible: live
// hour accrual and tests both inject their own now.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System returns the wall clock.
func System() Clock {
	return systemClock{}
}

type fixedClock struct {
	t time.Time
}

func (f fixedClock) Now() time.Time { return f.t }

// Fixed returns a clock frozen at t.
func Fixed(t time.Time) Clock {
	return fixedClock{t: t}
}
