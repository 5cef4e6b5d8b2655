package profile

import (
	"context"

	"go.uber.org/zap"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/repository"
	"github.com/instacare/backend/usecase"
)

const defaultReminderHours = 24

// UseCase manages user profiles. Provisioning is an explicit step at
// account creation; reads never create anything as a side effect.
type UseCase struct {
	users  repository.UserRepository
	buffer usecase.OperationBuffer
	logger *zap.Logger
}

func New(users repository.UserRepository, buffer usecase.OperationBuffer, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:  users,
		buffer: buffer,
		logger: logger,
	}
}

// Provision creates the profile once, with defaults filled in.
func (uc *UseCase) Provision(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil || user.Name == "" {
		return nil, domain.ErrInvalidPayload
	}
	if user.ReminderHours <= 0 {
		user.ReminderHours = defaultReminderHours
	}
	return uc.users.Create(ctx, user)
}

func (uc *UseCase) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return uc.users.GetByID(ctx, userID)
}

func (uc *UseCase) UpdateProfile(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := uc.users.Update(ctx, user); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, err
		}
		if uc.buffer != nil {
			if bufErr := uc.buffer.BufferProfile(ctx, usecase.OperationUpdate, user); bufErr != nil {
				uc.logger.Error("failed to buffer profile update", zap.Error(bufErr))
				return nil, err
			}
			uc.logger.Warn("profile update buffered due to repository error", zap.Error(err))
			return user, nil
		}
		return nil, err
	}
	return user, nil
}
