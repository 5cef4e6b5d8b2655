package clock

import "time"

// Clock supplies the current time so date arithmetic stays testable with
// fixed dates. All recurrence and analytics code receives a Clock instead of
// calling time.Now.
type Clock interface {
	Now() time.Time
	Today() time.Time
}

type systemClock struct{}

// System returns the wall clock in UTC.
func System() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func (systemClock) Today() time.Time {
	return midnight(time.Now().UTC())
}

// Fixed is a clock pinned to a single instant, for tests.
type Fixed struct {
	instant time.Time
}

// NewFixed pins the clock to the given instant.
func NewFixed(t time.Time) *Fixed {
	return &Fixed{instant: t.UTC()}
}

func (f *Fixed) Now() time.Time {
	return f.instant
}

func (f *Fixed) Today() time.Time {
	return midnight(f.instant)
}

// Advance moves the fixed clock forward.
func (f *Fixed) Advance(d time.Duration) {
	f.instant = f.instant.Add(d)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
