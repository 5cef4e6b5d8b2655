package repository

import (
	"context"

	"github.com/instacare/backend/domain"
)

// CompletionRepository is append-only: records are never updated or deleted
// by normal flow.
type CompletionRepository interface {
	Append(ctx context.Context, record *domain.CompletionRecord) error
	List(ctx context.Context) ([]domain.CompletionRecord, error)
	ListByOccurrence(ctx context.Context, occurrenceID string) ([]domain.CompletionRecord, error)
}
