package completion

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

func newFixture(t *testing.T, now time.Time) (*UseCase, *testutil.Store, *clock.Fixed) {
	t.Helper()
	store := testutil.NewStore()
	clk := clock.NewFixed(now)
	uc := New(store.OccurrenceRepo(), store.CompletionRepo(), store.UnitOfWork(), clk, nil)
	return uc, store, clk
}

func seedOccurrence(s *testutil.Store, id string, due time.Time, completed bool) {
	s.Occurrences[id] = domain.Occurrence{
		ID:           id,
		DefinitionID: "def-1",
		ItemID:       "item-1",
		DueDate:      due,
		TaskCategory: domain.TaskCleaning,
		Completed:    completed,
	}
}

func TestCompleteOne(t *testing.T) {
	now := time.Date(2024, 1, 10, 14, 30, 0, 0, time.UTC)

	t.Run("marks completed and appends a record", func(t *testing.T) {
		uc, store, _ := newFixture(t, now)
		seedOccurrence(store, "occ-1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), false)

		occ, err := uc.CompleteOne(context.Background(), "occ-1", "used new swab", "")
		require.NoError(t, err)
		assert.True(t, occ.Completed)
		require.NotNil(t, occ.CompletedAt)
		assert.Equal(t, now, *occ.CompletedAt)
		assert.Equal(t, "used new swab", occ.Note)

		require.Len(t, store.Records, 1)
		rec := store.Records[0]
		assert.Equal(t, "occ-1", rec.OccurrenceID)
		assert.Equal(t, "item-1", rec.ItemID)
		assert.Equal(t, domain.TaskCleaning, rec.TaskCategory)
		assert.Equal(t, now, rec.CompletedAt)
	})

	t.Run("future occurrences can be completed early", func(t *testing.T) {
		uc, store, _ := newFixture(t, now)
		seedOccurrence(store, "occ-1", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), false)

		occ, err := uc.CompleteOne(context.Background(), "occ-1", "", "")
		require.NoError(t, err)
		assert.True(t, occ.Completed)
	})

	t.Run("re-completion overwrites and appends a second record", func(t *testing.T) {
		uc, store, clk := newFixture(t, now)
		seedOccurrence(store, "occ-1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), false)

		_, err := uc.CompleteOne(context.Background(), "occ-1", "first pass", "")
		require.NoError(t, err)

		clk.Advance(2 * time.Hour)
		occ, err := uc.CompleteOne(context.Background(), "occ-1", "second pass", "")
		require.NoError(t, err)

		assert.Equal(t, "second pass", occ.Note)
		assert.Equal(t, now.Add(2*time.Hour), *occ.CompletedAt)
		assert.Len(t, store.Records, 2)
	})

	t.Run("unknown occurrence", func(t *testing.T) {
		uc, _, _ := newFixture(t, now)
		_, err := uc.CompleteOne(context.Background(), "missing", "", "")
		assert.ErrorIs(t, err, domain.ErrOccurrenceNotFound)
	})

	t.Run("store failure surfaces and rolls back", func(t *testing.T) {
		uc, store, _ := newFixture(t, now)
		seedOccurrence(store, "occ-1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), false)
		store.FailWrites = true

		_, err := uc.CompleteOne(context.Background(), "occ-1", "", "")
		require.Error(t, err)
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeStoreFailure))
		assert.False(t, store.Occurrences["occ-1"].Completed)
		assert.Empty(t, store.Records)
	})
}

func TestCompleteAllDue(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	t.Run("completes everything due through today with one timestamp", func(t *testing.T) {
		uc, store, _ := newFixture(t, now)
		seedOccurrence(store, "past", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), false)
		seedOccurrence(store, "today", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), false)
		seedOccurrence(store, "future", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), false)
		seedOccurrence(store, "done", time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC), true)

		count, completed, err := uc.CompleteAllDue(context.Background(), "item-1")
		require.NoError(t, err)
		assert.Equal(t, 2, count)
		require.Len(t, completed, 2)

		for _, occ := range completed {
			require.NotNil(t, occ.CompletedAt)
			assert.Equal(t, now, *occ.CompletedAt)
		}
		assert.False(t, store.Occurrences["future"].Completed)
		assert.Len(t, store.Records, 2)
	})

	t.Run("nothing due is a no-op", func(t *testing.T) {
		uc, store, _ := newFixture(t, now)
		seedOccurrence(store, "future", time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), false)

		count, completed, err := uc.CompleteAllDue(context.Background(), "item-1")
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, completed)
		assert.Empty(t, store.Records)
	})

	t.Run("store failure leaves the whole batch open", func(t *testing.T) {
		uc, store, _ := newFixture(t, now)
		seedOccurrence(store, "a", time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), false)
		seedOccurrence(store, "b", time.Date(2024, 1, 6, 0, 0, 0, 0, time.UTC), false)
		store.FailWrites = true

		_, _, err := uc.CompleteAllDue(context.Background(), "item-1")
		require.Error(t, err)
		assert.False(t, store.Occurrences["a"].Completed)
		assert.False(t, store.Occurrences["b"].Completed)
		assert.Empty(t, store.Records)
	})
}

func TestReschedule(t *testing.T) {
	now := time.Date(2024, 1, 10, 9, 0, 0, 0, time.UTC)

	t.Run("overrides the due date", func(t *testing.T) {
		uc, store, _ := newFixture(t, now)
		seedOccurrence(store, "occ-1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), false)

		occ, err := uc.Reschedule(context.Background(), "occ-1", "2024-01-20")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), occ.DueDate)
		assert.Equal(t, occ.DueDate, store.Occurrences["occ-1"].DueDate)
	})

	t.Run("off-cadence dates are allowed", func(t *testing.T) {
		uc, store, _ := newFixture(t, now)
		seedOccurrence(store, "occ-1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), false)

		_, err := uc.Reschedule(context.Background(), "occ-1", "2024-01-13")
		require.NoError(t, err)
		assert.Equal(t, time.Date(2024, 1, 13, 0, 0, 0, 0, time.UTC), store.Occurrences["occ-1"].DueDate)
	})

	t.Run("invalid date rejected", func(t *testing.T) {
		uc, store, _ := newFixture(t, now)
		seedOccurrence(store, "occ-1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), false)

		_, err := uc.Reschedule(context.Background(), "occ-1", "next tuesday")
		assert.True(t, domain.IsDomainError(err, domain.ErrCodeInvalidDate))
		assert.Equal(t, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), store.Occurrences["occ-1"].DueDate)
	})

	t.Run("unknown occurrence", func(t *testing.T) {
		uc, _, _ := newFixture(t, now)
		_, err := uc.Reschedule(context.Background(), "missing", "2024-01-20")
		assert.ErrorIs(t, err, domain.ErrOccurrenceNotFound)
	})
}
