package domain

import "time"

// TaskCategory tags the kind of recurring work a definition schedules.
type TaskCategory string

const (
	TaskCleaning     TaskCategory = "Cleaning"
	TaskDrying       TaskCategory = "Drying"
	TaskDisinfecting TaskCategory = "Disinfecting"
	TaskPractice     TaskCategory = "Practice"
	TaskOther        TaskCategory = "Other"
)

// Valid reports whether the task category is one of the known values.
func (c TaskCategory) Valid() bool {
	switch c {
	case TaskCleaning, TaskDrying, TaskDisinfecting, TaskPractice, TaskOther:
		return true
	}
	return false
}

// FrequencyKind selects how a frequency interval is interpreted.
type FrequencyKind string

const (
	FrequencyDays    FrequencyKind = "days"
	FrequencyWeekly  FrequencyKind = "weekly"
	FrequencyMonthly FrequencyKind = "monthly"
)

// Frequency describes how often occurrences recur. Monthly is an explicit
// 30-day approximation, not calendar-month arithmetic.
type Frequency struct {
	Kind     FrequencyKind `json:"kind"`
	Interval int           `json:"interval"`
}

// Step resolves the frequency into a calendar-day step. The switch is
// exhaustive over FrequencyKind; any other value is rejected.
func (f Frequency) Step() (int, error) {
	if f.Interval <= 0 {
		return 0, ErrInvalidFrequency
	}
	switch f.Kind {
	case FrequencyDays:
		return f.Interval, nil
	case FrequencyWeekly:
		return f.Interval * 7, nil
	case FrequencyMonthly:
		return f.Interval * 30, nil
	default:
		return 0, WrapError(ErrCodeInvalidFrequency, "unknown frequency kind", nil)
	}
}

// Validate checks the frequency without computing anything.
func (f Frequency) Validate() error {
	_, err := f.Step()
	return err
}

// Definition is the template for recurring work on an item. It is immutable
// after creation; editing the cadence means delete and recreate.
type Definition struct {
	ID           string       `json:"id"`
	ItemID       string       `json:"item_id"`
	TaskCategory TaskCategory `json:"task_category"`
	Frequency    Frequency    `json:"frequency"`
	StartDate    time.Time    `json:"start_date"`
	CreatedAt    time.Time    `json:"created_at"`
}
