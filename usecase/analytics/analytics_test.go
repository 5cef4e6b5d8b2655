package analytics

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

func newFixture(t *testing.T, today time.Time) (*UseCase, *testutil.Store) {
	t.Helper()
	store := testutil.NewStore()
	clk := clock.NewFixed(today)
	uc := New(store.OccurrenceRepo(), store.CompletionRepo(), store.ItemRepo(), clk, nil)
	return uc, store
}

func addOccurrence(s *testutil.Store, id, itemID string, cat domain.TaskCategory, due time.Time, completed bool) {
	s.Occurrences[id] = domain.Occurrence{
		ID:           id,
		DefinitionID: "def-1",
		ItemID:       itemID,
		TaskCategory: cat,
		DueDate:      due,
		Completed:    completed,
	}
}

func addRecord(s *testutil.Store, completedAt time.Time) {
	s.Records = append(s.Records, domain.CompletionRecord{
		ID:           "rec-" + completedAt.Format("20060102150405"),
		OccurrenceID: "occ",
		ItemID:       "item-1",
		TaskCategory: domain.TaskCleaning,
		CompletedAt:  completedAt,
	})
}

func TestCompletionRate(t *testing.T) {
	today := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	t.Run("counts only occurrences due inside the window", func(t *testing.T) {
		uc, store := newFixture(t, today)
		addOccurrence(store, "in-1", "item-1", domain.TaskCleaning, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), true)
		addOccurrence(store, "in-2", "item-1", domain.TaskCleaning, time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC), false)
		addOccurrence(store, "in-3", "item-1", domain.TaskCleaning, time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC), true)
		// Due before the 30-day window start; excluded.
		addOccurrence(store, "old", "item-1", domain.TaskCleaning, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), true)

		report, err := uc.CompletionRate(context.Background(), PeriodMonthly)
		require.NoError(t, err)
		assert.Equal(t, 3, report.Total)
		assert.Equal(t, 2, report.Completed)
		assert.InDelta(t, 66.67, report.Rate, 0.001)
	})

	t.Run("weekly window is seven days", func(t *testing.T) {
		uc, store := newFixture(t, today)
		addOccurrence(store, "in", "item-1", domain.TaskCleaning, time.Date(2024, 1, 28, 0, 0, 0, 0, time.UTC), true)
		addOccurrence(store, "out", "item-1", domain.TaskCleaning, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), false)

		report, err := uc.CompletionRate(context.Background(), PeriodWeekly)
		require.NoError(t, err)
		assert.Equal(t, PeriodWeekly, report.Period)
		assert.Equal(t, 1, report.Total)
		assert.InDelta(t, 100.0, report.Rate, 0.001)
	})

	t.Run("future-dated occurrences count toward the total", func(t *testing.T) {
		uc, store := newFixture(t, today)
		addOccurrence(store, "now", "item-1", domain.TaskCleaning, today, true)
		addOccurrence(store, "future", "item-1", domain.TaskCleaning, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), false)

		report, err := uc.CompletionRate(context.Background(), PeriodMonthly)
		require.NoError(t, err)
		assert.Equal(t, 2, report.Total)
		assert.InDelta(t, 50.0, report.Rate, 0.001)
	})

	t.Run("empty window reports zero", func(t *testing.T) {
		uc, _ := newFixture(t, today)
		report, err := uc.CompletionRate(context.Background(), PeriodMonthly)
		require.NoError(t, err)
		assert.Zero(t, report.Total)
		assert.Zero(t, report.Rate)
	})

	t.Run("unknown period defaults to monthly", func(t *testing.T) {
		uc, _ := newFixture(t, today)
		report, err := uc.CompletionRate(context.Background(), Period("yearly"))
		require.NoError(t, err)
		assert.Equal(t, PeriodMonthly, report.Period)
	})
}

func TestStreak(t *testing.T) {
	today := time.Date(2024, 1, 3, 18, 0, 0, 0, time.UTC)

	t.Run("counts consecutive days ending today", func(t *testing.T) {
		uc, store := newFixture(t, today)
		addRecord(store, time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC))
		addRecord(store, time.Date(2024, 1, 2, 21, 0, 0, 0, time.UTC))

		streak, err := uc.Streak(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, streak)
	})

	t.Run("yesterday still counts as the streak head", func(t *testing.T) {
		uc, store := newFixture(t, today)
		addRecord(store, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
		addRecord(store, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))

		streak, err := uc.Streak(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, streak)
	})

	t.Run("gap breaks the streak", func(t *testing.T) {
		uc, store := newFixture(t, today)
		addRecord(store, time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC))
		addRecord(store, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))

		streak, err := uc.Streak(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, streak)
	})

	t.Run("gap after a longer run stops the count", func(t *testing.T) {
		uc, store := newFixture(t, today)
		addRecord(store, time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC))
		addRecord(store, time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC))
		addRecord(store, time.Date(2023, 12, 31, 9, 0, 0, 0, time.UTC))

		streak, err := uc.Streak(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, streak)
	})

	t.Run("stale history scores zero", func(t *testing.T) {
		uc, store := newFixture(t, today)
		addRecord(store, time.Date(2023, 12, 20, 9, 0, 0, 0, time.UTC))

		streak, err := uc.Streak(context.Background())
		require.NoError(t, err)
		assert.Zero(t, streak)
	})

	t.Run("multiple completions on one day count once", func(t *testing.T) {
		uc, store := newFixture(t, today)
		addRecord(store, time.Date(2024, 1, 3, 9, 0, 0, 0, time.UTC))
		addRecord(store, time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC))

		streak, err := uc.Streak(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 1, streak)
	})

	t.Run("zero-timestamp records are ignored", func(t *testing.T) {
		uc, store := newFixture(t, today)
		store.Records = append(store.Records, domain.CompletionRecord{ID: "broken", OccurrenceID: "x"})

		streak, err := uc.Streak(context.Background())
		require.NoError(t, err)
		assert.Zero(t, streak)
	})

	t.Run("no records", func(t *testing.T) {
		uc, _ := newFixture(t, today)
		streak, err := uc.Streak(context.Background())
		require.NoError(t, err)
		assert.Zero(t, streak)
	})
}

func TestItemScores(t *testing.T) {
	today := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	uc, store := newFixture(t, today)

	store.Items["item-1"] = domain.Item{ID: "item-1", Name: "Clarinet", Category: domain.CategoryWoodwind}
	store.Items["item-2"] = domain.Item{ID: "item-2", Name: "Cello", Category: domain.CategoryBowedString}

	addOccurrence(store, "a", "item-1", domain.TaskCleaning, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), true)
	addOccurrence(store, "b", "item-1", domain.TaskCleaning, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), false)
	addOccurrence(store, "c", "item-1", domain.TaskCleaning, time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC), true)
	// Outside the trailing window; excluded from item-1's ratio.
	addOccurrence(store, "old", "item-1", domain.TaskCleaning, time.Date(2023, 11, 1, 0, 0, 0, 0, time.UTC), false)

	scores, err := uc.ItemScores(context.Background())
	require.NoError(t, err)
	require.Len(t, scores, 2)

	byID := map[string]ItemScore{}
	for _, s := range scores {
		byID[s.ItemID] = s
	}

	assert.InDelta(t, 66.67, byID["item-1"].Score, 0.001)
	assert.Equal(t, 3, byID["item-1"].Total)
	assert.Equal(t, "Clarinet", byID["item-1"].ItemName)

	// No occurrences in the window means score zero, not an error.
	assert.Zero(t, byID["item-2"].Score)
	assert.Zero(t, byID["item-2"].Total)
}

func TestTaskBreakdown(t *testing.T) {
	today := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)
	uc, store := newFixture(t, today)

	store.Items["item-1"] = domain.Item{ID: "item-1", Name: "Clarinet", Category: domain.CategoryWoodwind}

	addOccurrence(store, "a", "item-1", domain.TaskCleaning, time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), true)
	addOccurrence(store, "b", "item-1", domain.TaskCleaning, time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), false)
	addOccurrence(store, "c", "item-1", domain.TaskPractice, time.Date(2024, 1, 25, 0, 0, 0, 0, time.UTC), false)
	addOccurrence(store, "orphan", "ghost", domain.TaskDrying, time.Date(2024, 1, 26, 0, 0, 0, 0, time.UTC), false)

	breakdown, err := uc.TaskBreakdown(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, breakdown.ByCategory["Cleaning"])
	assert.Equal(t, 1, breakdown.ByCategory["Practice"])
	assert.Equal(t, 1, breakdown.ByCategory["Drying"])

	assert.Equal(t, 3, breakdown.ByItem["Clarinet"])
	assert.Equal(t, 1, breakdown.ByItem["Unknown"])
}
