package usecase

import (
	"context"

	"github.com/instacare/backend/domain"
)

const (
	OperationCreate = "create"
	OperationUpdate = "update"
	OperationDelete = "delete"
)

// OperationBuffer abstracts the offline write buffer so use cases stay
// storage-agnostic. Only non-core writes (profile and item upkeep) may be
// buffered; scheduling and completion writes always surface store failures.
type OperationBuffer interface {
	BufferProfile(ctx context.Context, operation string, user *domain.User) error
	BufferItem(ctx context.Context, operation string, item *domain.Item) error
}
