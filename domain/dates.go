package domain

import "time"

// DateOnly is the wire format for calendar dates (no time component).
const DateOnly = "2006-01-02"

// Midnight truncates a timestamp to its calendar date at UTC midnight.
// All due dates and streak arithmetic operate on these normalized values.
func Midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate parses an ISO calendar date string.
func ParseDate(value string) (time.Time, error) {
	t, err := time.Parse(DateOnly, value)
	if err != nil {
		return time.Time{}, WrapError(ErrCodeInvalidDate, "invalid date", err)
	}
	return Midnight(t), nil
}

// SameDay reports whether two timestamps fall on the same UTC calendar date.
func SameDay(a, b time.Time) bool {
	return Midnight(a).Equal(Midnight(b))
}
