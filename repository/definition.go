package repository

import (
	"context"

	"github.com/instacare/backend/domain"
)

type DefinitionFilter struct {
	ItemID string
}

type DefinitionRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Definition, error)
	List(ctx context.Context, filter DefinitionFilter) ([]domain.Definition, error)
	Create(ctx context.Context, def *domain.Definition) (*domain.Definition, error)
	Delete(ctx context.Context, id string) error
	DeleteByItem(ctx context.Context, itemID string) error
}
