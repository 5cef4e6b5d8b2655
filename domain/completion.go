package domain

import "time"

// CompletionRecord is an immutable audit-trail entry appended when an
// occurrence is completed. Records are never updated or deleted, and they
// outlive the occurrence they reference.
type CompletionRecord struct {
	ID            string       `json:"id"`
	OccurrenceID  string       `json:"occurrence_id"`
	ItemID        string       `json:"item_id"`
	TaskCategory  TaskCategory `json:"task_category"`
	CompletedAt   time.Time    `json:"completed_at"`
	Note          string       `json:"note,omitempty"`
	AttachmentURL string       `json:"attachment_url,omitempty"`
}

// CompletionDate returns the calendar date the record contributes to streak
// computation, and false when the timestamp is missing (inconsistent rows
// are excluded from aggregates rather than crashing them).
func (r *CompletionRecord) CompletionDate() (time.Time, bool) {
	if r == nil || r.CompletedAt.IsZero() {
		return time.Time{}, false
	}
	return Midnight(r.CompletedAt), true
}
