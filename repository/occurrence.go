package repository

import (
	"context"
	"time"

	"github.com/instacare/backend/domain"
)

// OccurrenceFilter narrows occurrence queries. Nil pointer fields mean
// "no constraint".
type OccurrenceFilter struct {
	From         *time.Time
	To           *time.Time
	DueOn        *time.Time
	ItemID       string
	DefinitionID string
	TaskCategory domain.TaskCategory
	Completed    *bool
}

type OccurrenceRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Occurrence, error)
	List(ctx context.Context, filter OccurrenceFilter) ([]domain.Occurrence, error)
	// CreateBatch inserts all occurrences or none; partial inserts roll back.
	CreateBatch(ctx context.Context, occurrences []domain.Occurrence) error
	Update(ctx context.Context, occurrence *domain.Occurrence) error
	Delete(ctx context.Context, id string) error
	DeleteByDefinition(ctx context.Context, definitionID string) error
	DeleteByItem(ctx context.Context, itemID string) error
	// MaxDueDate returns the latest due date generated for a definition,
	// or nil when it has no occurrences.
	MaxDueDate(ctx context.Context, definitionID string) (*time.Time, error)
}
