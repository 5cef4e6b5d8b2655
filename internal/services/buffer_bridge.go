package services

import (
	"context"
	"encoding/json"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/internal/infrastructure/buffer"
	"github.com/instacare/backend/usecase"
)

// BufferBridge adapts the buffer processor to the usecase-facing port.
type BufferBridge struct {
	processor *BufferProcessor
}

func NewBufferBridge(processor *BufferProcessor) *BufferBridge {
	return &BufferBridge{processor: processor}
}

func (b *BufferBridge) BufferProfile(ctx context.Context, operation string, user *domain.User) error {
	if b.processor == nil || user == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	entry := buffer.Entry{
		UserID:    user.ID,
		Entity:    buffer.EntityProfile,
		Operation: operation,
		Data:      payload,
		Priority:  3,
	}
	return b.processor.BufferOperation(ctx, entry)
}

func (b *BufferBridge) BufferItem(ctx context.Context, operation string, item *domain.Item) error {
	if b.processor == nil || item == nil {
		return domain.ErrInvalidPayload
	}
	payload, err := json.Marshal(item)
	if err != nil {
		return err
	}
	entry := buffer.Entry{
		ID:        item.ID,
		UserID:    item.UserID,
		Entity:    buffer.EntityItem,
		Operation: operation,
		Data:      payload,
		Priority:  4,
	}
	return b.processor.BufferOperation(ctx, entry)
}

var _ usecase.OperationBuffer = (*BufferBridge)(nil)
