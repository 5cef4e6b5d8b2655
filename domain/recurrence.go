package domain

import "time"

// Schedule expands a start date and frequency into the ordered sequence of
// due dates up to and including horizon. The first element always equals the
// start date; a horizon before the start yields an empty sequence. Pure
// function of its inputs.
func Schedule(start time.Time, freq Frequency, horizon time.Time) ([]time.Time, error) {
	step, err := freq.Step()
	if err != nil {
		return nil, err
	}

	start = Midnight(start)
	horizon = Midnight(horizon)
	if horizon.Before(start) {
		return nil, nil
	}

	var dates []time.Time
	for d := start; !d.After(horizon); d = d.AddDate(0, 0, step) {
		dates = append(dates, d)
	}
	return dates, nil
}

// ScheduleAfter returns only the due dates strictly after the given cutoff.
// Used to extend an existing occurrence set without duplicating dates.
func ScheduleAfter(start time.Time, freq Frequency, cutoff, horizon time.Time) ([]time.Time, error) {
	dates, err := Schedule(start, freq, horizon)
	if err != nil {
		return nil, err
	}
	cutoff = Midnight(cutoff)
	for i, d := range dates {
		if d.After(cutoff) {
			return dates[i:], nil
		}
	}
	return nil, nil
}
