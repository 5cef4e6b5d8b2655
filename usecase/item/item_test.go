package item

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/internal/testutil"
	"github.com/instacare/backend/usecase"
)

type recordingBuffer struct {
	items []string
}

func (b *recordingBuffer) BufferProfile(ctx context.Context, operation string, user *domain.User) error {
	return nil
}

func (b *recordingBuffer) BufferItem(ctx context.Context, operation string, item *domain.Item) error {
	b.items = append(b.items, operation)
	return nil
}

func newFixture(t *testing.T, buffer usecase.OperationBuffer) (*UseCase, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	uc := New(store.ItemRepo(), store.DefinitionRepo(), store.OccurrenceRepo(), store.UnitOfWork(), buffer, nil)
	return uc, store
}

func TestCreateItem(t *testing.T) {
	t.Run("valid item persists", func(t *testing.T) {
		uc, store := newFixture(t, nil)

		created, err := uc.CreateItem(context.Background(), &domain.Item{
			UserID:   "user-1",
			Name:     "Trumpet",
			Category: domain.CategoryBrass,
		})
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)
		assert.Len(t, store.Items, 1)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		uc, _ := newFixture(t, nil)
		_, err := uc.CreateItem(context.Background(), &domain.Item{Category: domain.CategoryBrass})
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	})

	t.Run("unknown category rejected", func(t *testing.T) {
		uc, _ := newFixture(t, nil)
		_, err := uc.CreateItem(context.Background(), &domain.Item{Name: "Theremin", Category: "Electronic"})
		assert.ErrorIs(t, err, domain.ErrInvalidPayload)
	})

	t.Run("store failure falls back to the buffer", func(t *testing.T) {
		buf := &recordingBuffer{}
		uc, store := newFixture(t, buf)
		store.FailWrites = true

		item := &domain.Item{Name: "Trumpet", Category: domain.CategoryBrass}
		returned, err := uc.CreateItem(context.Background(), item)
		require.NoError(t, err)
		assert.Same(t, item, returned)
		assert.Equal(t, []string{usecase.OperationCreate}, buf.items)
	})
}

func TestDeleteItemCascade(t *testing.T) {
	uc, store := newFixture(t, nil)

	store.Items["item-1"] = domain.Item{ID: "item-1", Name: "Clarinet", Category: domain.CategoryWoodwind}
	store.Items["item-2"] = domain.Item{ID: "item-2", Name: "Cello", Category: domain.CategoryBowedString}
	store.Definitions["def-1"] = domain.Definition{ID: "def-1", ItemID: "item-1", TaskCategory: domain.TaskCleaning}
	store.Definitions["def-2"] = domain.Definition{ID: "def-2", ItemID: "item-2", TaskCategory: domain.TaskCleaning}
	store.Occurrences["occ-1"] = domain.Occurrence{ID: "occ-1", DefinitionID: "def-1", ItemID: "item-1", DueDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}
	store.Occurrences["occ-2"] = domain.Occurrence{ID: "occ-2", DefinitionID: "def-2", ItemID: "item-2", DueDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}
	store.Records = append(store.Records, domain.CompletionRecord{ID: "rec-1", OccurrenceID: "occ-1", ItemID: "item-1", CompletedAt: time.Now()})

	require.NoError(t, uc.DeleteItem(context.Background(), "item-1"))

	assert.NotContains(t, store.Items, "item-1")
	assert.NotContains(t, store.Definitions, "def-1")
	assert.NotContains(t, store.Occurrences, "occ-1")

	// Other items untouched; completion history retained.
	assert.Contains(t, store.Items, "item-2")
	assert.Contains(t, store.Definitions, "def-2")
	assert.Contains(t, store.Occurrences, "occ-2")
	assert.Len(t, store.Records, 1)
}

func TestDeleteItemUnknown(t *testing.T) {
	uc, _ := newFixture(t, nil)
	err := uc.DeleteItem(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
