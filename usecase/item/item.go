package item

import (
	"context"

	"go.uber.org/zap"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/repository"
	"github.com/instacare/backend/usecase"
)

// UseCase manages the item registry. Deleting an item cascades through its
// definitions and occurrences in one transaction; completion records stay.
type UseCase struct {
	items       repository.ItemRepository
	definitions repository.DefinitionRepository
	occurrences repository.OccurrenceRepository
	uow         repository.UnitOfWork
	buffer      usecase.OperationBuffer
	logger      *zap.Logger
}

func New(
	items repository.ItemRepository,
	definitions repository.DefinitionRepository,
	occurrences repository.OccurrenceRepository,
	uow repository.UnitOfWork,
	buffer usecase.OperationBuffer,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		items:       items,
		definitions: definitions,
		occurrences: occurrences,
		uow:         uow,
		buffer:      buffer,
		logger:      logger,
	}
}

func (uc *UseCase) ListItems(ctx context.Context, filter repository.ItemFilter) ([]domain.Item, error) {
	return uc.items.List(ctx, filter)
}

func (uc *UseCase) GetItem(ctx context.Context, id string) (*domain.Item, error) {
	return uc.items.GetByID(ctx, id)
}

func (uc *UseCase) CreateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil || item.Name == "" || !item.Category.Valid() {
		return nil, domain.ErrInvalidPayload
	}
	created, err := uc.items.Create(ctx, item)
	if err != nil {
		if uc.shouldBuffer(ctx, usecase.OperationCreate, item) {
			return item, nil
		}
		return nil, err
	}
	return created, nil
}

func (uc *UseCase) UpdateItem(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil || !item.Category.Valid() {
		return nil, domain.ErrInvalidPayload
	}
	if err := uc.items.Update(ctx, item); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		if uc.shouldBuffer(ctx, usecase.OperationUpdate, item) {
			return item, nil
		}
		return nil, err
	}
	return item, nil
}

// DeleteItem removes the item together with its definitions and occurrences.
// The cascade runs inside one unit of work; completion records are retained
// as history.
func (uc *UseCase) DeleteItem(ctx context.Context, id string) error {
	if _, err := uc.items.GetByID(ctx, id); err != nil {
		return err
	}
	return repository.Atomic(ctx, uc.uow, func(txCtx context.Context) error {
		if err := uc.occurrences.DeleteByItem(txCtx, id); err != nil {
			return err
		}
		if err := uc.definitions.DeleteByItem(txCtx, id); err != nil {
			return err
		}
		return uc.items.Delete(txCtx, id)
	})
}

func (uc *UseCase) shouldBuffer(ctx context.Context, operation string, item *domain.Item) bool {
	if uc.buffer == nil {
		return false
	}
	if err := uc.buffer.BufferItem(ctx, operation, item); err != nil {
		uc.logger.Error("failed to buffer item operation", zap.String("operation", operation), zap.Error(err))
		return false
	}
	uc.logger.Warn("item operation buffered", zap.String("operation", operation))
	return true
}
