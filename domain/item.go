package domain

import "time"

// ItemCategory classifies an owned instrument or piece of equipment.
type ItemCategory string

const (
	CategoryWoodwind      ItemCategory = "Woodwind"
	CategoryBrass         ItemCategory = "Brass"
	CategoryPluckedString ItemCategory = "Plucked string"
	CategoryBowedString   ItemCategory = "Bowed string"
	CategoryPercussion    ItemCategory = "Percussion"
	CategoryStorageCase   ItemCategory = "Storage/Case"
	CategoryOther         ItemCategory = "Other"
)

// Valid reports whether the category is one of the known values.
func (c ItemCategory) Valid() bool {
	switch c {
	case CategoryWoodwind, CategoryBrass, CategoryPluckedString,
		CategoryBowedString, CategoryPercussion, CategoryStorageCase, CategoryOther:
		return true
	}
	return false
}

// Item represents an owned instrument or piece of equipment that
// task definitions are scoped to.
type Item struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id,omitempty"`
	Name      string       `json:"name"`
	Category  ItemCategory `json:"category"`
	Notes     string       `json:"notes,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
