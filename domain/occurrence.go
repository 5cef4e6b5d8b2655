package domain

import "time"

// Occurrence is one dated instance generated from a Definition. The item
// reference is denormalized from the definition for query convenience.
type Occurrence struct {
	ID            string       `json:"id"`
	DefinitionID  string       `json:"definition_id"`
	ItemID        string       `json:"item_id"`
	DueDate       time.Time    `json:"due_date"`
	TaskCategory  TaskCategory `json:"task_category"`
	Completed     bool         `json:"completed"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
	Note          string       `json:"note,omitempty"`
	AttachmentURL string       `json:"attachment_url,omitempty"`
}

// IsOverdue reports whether the occurrence is past due and still open.
func (o *Occurrence) IsOverdue(ref time.Time) bool {
	return o != nil && !o.Completed && Midnight(o.DueDate).Before(Midnight(ref))
}

// IsDueBy reports whether the occurrence is due on or before the reference date.
func (o *Occurrence) IsDueBy(ref time.Time) bool {
	return o != nil && !Midnight(o.DueDate).After(Midnight(ref))
}
