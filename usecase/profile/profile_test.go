package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/internal/testutil"
	"github.com/instacare/backend/usecase"
)

type recordingBuffer struct {
	profiles []string
}

func (b *recordingBuffer) BufferProfile(ctx context.Context, operation string, user *domain.User) error {
	b.profiles = append(b.profiles, operation)
	return nil
}

func (b *recordingBuffer) BufferItem(ctx context.Context, operation string, item *domain.Item) error {
	return nil
}

func TestProvision(t *testing.T) {
	t.Run("fills the reminder default", func(t *testing.T) {
		store := testutil.NewStore()
		uc := New(store.UserRepo(), nil, nil)

		user, err := uc.Provision(context.Background(), &domain.User{Name: "Ada"})
		require.NoError(t, err)
		assert.Equal(t, 24, user.ReminderHours)
	})

	t.Run("keeps an explicit reminder setting", func(t *testing.T) {
		store := testutil.NewStore()
		uc := New(store.UserRepo(), nil, nil)

		user, err := uc.Provision(context.Background(), &domain.User{Name: "Ada", ReminderHours: 48})
		require.NoError(t, err)
		assert.Equal(t, 48, user.ReminderHours)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		store := testutil.NewStore()
		uc := New(store.UserRepo(), nil, nil)

		_, err := uc.Provision(context.Background(), &domain.User{})
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("unknown user is not buffered", func(t *testing.T) {
		store := testutil.NewStore()
		buf := &recordingBuffer{}
		uc := New(store.UserRepo(), buf, nil)

		_, err := uc.UpdateProfile(context.Background(), &domain.User{ID: "missing", Name: "Ada"})
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		assert.Empty(t, buf.profiles)
	})

	t.Run("store failure falls back to the buffer", func(t *testing.T) {
		store := testutil.NewStore()
		store.Users["u1"] = domain.User{ID: "u1", Name: "Ada"}
		buf := &recordingBuffer{}
		uc := New(store.UserRepo(), buf, nil)
		store.FailWrites = true

		user, err := uc.UpdateProfile(context.Background(), &domain.User{ID: "u1", Name: "Ada Updated"})
		require.NoError(t, err)
		assert.Equal(t, "Ada Updated", user.Name)
		assert.Equal(t, []string{usecase.OperationUpdate}, buf.profiles)
	})
}
