package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/internal/testutil"
	"github.com/instacare/backend/pkg/clock"
)

func newFixture(t *testing.T, today time.Time) (*UseCase, *testutil.Store, *clock.Fixed) {
	t.Helper()
	store := testutil.NewStore()
	clk := clock.NewFixed(today)
	uc := New(store.DefinitionRepo(), store.OccurrenceRepo(), store.ItemRepo(), store.UnitOfWork(), clk, 0, nil)
	return uc, store, clk
}

func seedItem(s *testutil.Store) domain.Item {
	item := domain.Item{
		ID:       "item-1",
		UserID:   "user-1",
		Name:     "Alto Sax",
		Category: domain.CategoryWoodwind,
	}
	s.Items[item.ID] = item
	return item
}

func TestCreateDefinition(t *testing.T) {
	today := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	t.Run("expands occurrences over the default horizon", func(t *testing.T) {
		uc, store, _ := newFixture(t, today)
		seedItem(store)

		def, occurrences, err := uc.CreateDefinition(context.Background(), CreateDefinitionInput{
			ItemID:       "item-1",
			TaskCategory: domain.TaskCleaning,
			Frequency:    domain.Frequency{Kind: domain.FrequencyWeekly, Interval: 1},
			StartDate:    "2024-01-01",
		})
		require.NoError(t, err)
		require.NotNil(t, def)

		// 90-day horizon from 2024-01-01 is 2024-03-31: weeks 0..12.
		assert.Len(t, occurrences, 13)
		assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), occurrences[0].DueDate)
		for _, occ := range occurrences {
			assert.Equal(t, def.ID, occ.DefinitionID)
			assert.Equal(t, "item-1", occ.ItemID)
			assert.Equal(t, domain.TaskCleaning, occ.TaskCategory)
			assert.False(t, occ.Completed)
		}
		assert.Len(t, store.Occurrences, 13)
		assert.Len(t, store.Definitions, 1)
	})

	t.Run("unknown item rejected before any write", func(t *testing.T) {
		uc, store, _ := newFixture(t, today)

		_, _, err := uc.CreateDefinition(context.Background(), CreateDefinitionInput{
			ItemID:       "nope",
			TaskCategory: domain.TaskCleaning,
			Frequency:    domain.Frequency{Kind: domain.FrequencyDays, Interval: 1},
			StartDate:    "2024-01-01",
		})
		require.ErrorIs(t, err, domain.ErrUnknownItem)
		assert.Empty(t, store.Definitions)
		assert.Empty(t, store.Occurrences)
	})

	t.Run("invalid frequency rejected", func(t *testing.T) {
		uc, store, _ := newFixture(t, today)
		seedItem(store)

		_, _, err := uc.CreateDefinition(context.Background(), CreateDefinitionInput{
			ItemID:       "item-1",
			TaskCategory: domain.TaskCleaning,
			Frequency:    domain.Frequency{Kind: domain.FrequencyDays, Interval: 0},
			StartDate:    "2024-01-01",
		})
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidFrequency))
		assert.Empty(t, store.Occurrences)
	})

	t.Run("invalid date rejected", func(t *testing.T) {
		uc, store, _ := newFixture(t, today)
		seedItem(store)

		_, _, err := uc.CreateDefinition(context.Background(), CreateDefinitionInput{
			ItemID:       "item-1",
			TaskCategory: domain.TaskCleaning,
			Frequency:    domain.Frequency{Kind: domain.FrequencyDays, Interval: 1},
			StartDate:    "January 1st",
		})
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidDate))
	})

	t.Run("store failure rolls back the definition", func(t *testing.T) {
		uc, store, _ := newFixture(t, today)
		seedItem(store)
		store.FailWrites = true

		_, _, err := uc.CreateDefinition(context.Background(), CreateDefinitionInput{
			ItemID:       "item-1",
			TaskCategory: domain.TaskCleaning,
			Frequency:    domain.Frequency{Kind: domain.FrequencyDays, Interval: 1},
			StartDate:    "2024-01-01",
		})
		require.Error(t, err)
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeStoreFailure))
		assert.Empty(t, store.Definitions)
		assert.Empty(t, store.Occurrences)
	})

	t.Run("future start date generates from the start date", func(t *testing.T) {
		uc, store, _ := newFixture(t, today)
		seedItem(store)

		_, occurrences, err := uc.CreateDefinition(context.Background(), CreateDefinitionInput{
			ItemID:       "item-1",
			TaskCategory: domain.TaskPractice,
			Frequency:    domain.Frequency{Kind: domain.FrequencyDays, Interval: 30},
			StartDate:    "2024-03-01",
		})
		require.NoError(t, err)
		// Horizon 2024-03-31 leaves room for 2024-03-01 and 2024-03-31.
		assert.Len(t, occurrences, 2)
	})
}

func TestExtendHorizon(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	setup := func(t *testing.T) (*UseCase, *testutil.Store, string) {
		uc, store, _ := newFixture(t, today)
		seedItem(store)
		def, _, err := uc.CreateDefinition(context.Background(), CreateDefinitionInput{
			ItemID:       "item-1",
			TaskCategory: domain.TaskCleaning,
			Frequency:    domain.Frequency{Kind: domain.FrequencyWeekly, Interval: 1},
			StartDate:    "2024-01-01",
		})
		require.NoError(t, err)
		return uc, store, def.ID
	}

	t.Run("generates only past the current maximum", func(t *testing.T) {
		uc, store, defID := setup(t)
		before := len(store.Occurrences)

		added, err := uc.ExtendHorizon(context.Background(), defID, time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NotEmpty(t, added)
		assert.Len(t, store.Occurrences, before+len(added))

		// Last pre-existing due date was 2024-03-25; extension starts after it.
		assert.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), added[0].DueDate)
	})

	t.Run("idempotent for an unchanged horizon", func(t *testing.T) {
		uc, store, defID := setup(t)
		before := len(store.Occurrences)

		added, err := uc.ExtendHorizon(context.Background(), defID, time.Time{})
		require.NoError(t, err)
		assert.Empty(t, added)
		assert.Len(t, store.Occurrences, before)
	})

	t.Run("unknown definition", func(t *testing.T) {
		uc, _, _ := newFixture(t, today)
		_, err := uc.ExtendHorizon(context.Background(), "missing", time.Time{})
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})
}

func TestDeleteDefinition(t *testing.T) {
	today := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	t.Run("cascades to occurrences", func(t *testing.T) {
		uc, store, _ := newFixture(t, today)
		seedItem(store)
		def, _, err := uc.CreateDefinition(context.Background(), CreateDefinitionInput{
			ItemID:       "item-1",
			TaskCategory: domain.TaskDrying,
			Frequency:    domain.Frequency{Kind: domain.FrequencyDays, Interval: 10},
			StartDate:    "2024-01-01",
		})
		require.NoError(t, err)

		require.NoError(t, uc.DeleteDefinition(context.Background(), def.ID))
		assert.Empty(t, store.Definitions)
		assert.Empty(t, store.Occurrences)
	})

	t.Run("missing definition", func(t *testing.T) {
		uc, _, _ := newFixture(t, today)
		err := uc.DeleteDefinition(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrDefinitionNotFound)
	})
}

func TestListDueOnAndOverdue(t *testing.T) {
	today := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	uc, store, _ := newFixture(t, today)
	seedItem(store)

	completed := time.Date(2024, 1, 9, 8, 0, 0, 0, time.UTC)
	store.Occurrences["a"] = domain.Occurrence{ID: "a", ItemID: "item-1", DueDate: time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)}
	store.Occurrences["b"] = domain.Occurrence{ID: "b", ItemID: "item-1", DueDate: time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC)}
	store.Occurrences["c"] = domain.Occurrence{ID: "c", ItemID: "item-1", DueDate: time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC), Completed: true, CompletedAt: &completed}
	store.Occurrences["d"] = domain.Occurrence{ID: "d", ItemID: "item-1", DueDate: time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)}

	t.Run("due today excludes completed and other days", func(t *testing.T) {
		due, err := uc.ListDueOn(context.Background(), today)
		require.NoError(t, err)
		require.Len(t, due, 1)
		assert.Equal(t, "a", due[0].ID)
	})

	t.Run("overdue excludes today and completed", func(t *testing.T) {
		overdue, err := uc.ListOverdue(context.Background())
		require.NoError(t, err)
		require.Len(t, overdue, 1)
		assert.Equal(t, "b", overdue[0].ID)
	})
}
