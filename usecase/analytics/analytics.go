package analytics

import (
	"context"
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/instacare/backend/pkg/clock"
	"github.com/instacare/backend/repository"
)

// Period selects the trailing window for rate queries.
type Period string

const (
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
)

// DefaultScoreWindowDays is the trailing window used for per-item scores.
const DefaultScoreWindowDays = 30

// RateReport summarizes completion over a trailing window.
type RateReport struct {
	Period    Period  `json:"period"`
	Rate      float64 `json:"completion_rate"`
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
}

// ItemScore reports an item's completion ratio over the score window.
type ItemScore struct {
	ItemID    string  `json:"item_id"`
	ItemName  string  `json:"item_name"`
	Score     float64 `json:"score"`
	Total     int     `json:"total"`
	Completed int     `json:"completed"`
}

// Breakdown groups occurrence counts with no time windowing.
type Breakdown struct {
	ByCategory map[string]int `json:"by_category"`
	ByItem     map[string]int `json:"by_item"`
}

// UseCase computes read-only aggregates over occurrences and completion
// records. No method here mutates anything.
type UseCase struct {
	occurrences repository.OccurrenceRepository
	records     repository.CompletionRepository
	items       repository.ItemRepository
	clock       clock.Clock
	logger      *zap.Logger
}

func New(
	occurrences repository.OccurrenceRepository,
	records repository.CompletionRepository,
	items repository.ItemRepository,
	clk clock.Clock,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.System()
	}
	return &UseCase{
		occurrences: occurrences,
		records:     records,
		items:       items,
		clock:       clk,
		logger:      logger,
	}
}

// CompletionRate reports completed/total over occurrences due since the
// window start. The window is open-ended at the top: future-dated
// occurrences already generated count toward the total.
func (uc *UseCase) CompletionRate(ctx context.Context, period Period) (RateReport, error) {
	windowDays := 30
	if period == PeriodWeekly {
		windowDays = 7
	} else {
		period = PeriodMonthly
	}

	from := uc.clock.Today().AddDate(0, 0, -windowDays)
	occurrences, err := uc.occurrences.List(ctx, repository.OccurrenceFilter{From: &from})
	if err != nil {
		return RateReport{}, err
	}

	completed := 0
	for i := range occurrences {
		if occurrences[i].Completed {
			completed++
		}
	}

	report := RateReport{
		Period:    period,
		Total:     len(occurrences),
		Completed: completed,
	}
	if report.Total > 0 {
		report.Rate = round2(float64(completed) / float64(report.Total) * 100)
	}
	return report, nil
}

// Streak counts consecutive calendar days ending today or yesterday with at
// least one completion. Records without a completion timestamp are excluded
// rather than failing the query.
func (uc *UseCase) Streak(ctx context.Context) (int, error) {
	records, err := uc.records.List(ctx)
	if err != nil {
		return 0, err
	}

	seen := make(map[time.Time]struct{}, len(records))
	for i := range records {
		if date, ok := records[i].CompletionDate(); ok {
			seen[date] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return 0, nil
	}

	dates := make([]time.Time, 0, len(seen))
	for d := range seen {
		dates = append(dates, d)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	// The most recent contributing day may be today or yesterday; after
	// that the walk requires strict consecutiveness.
	head := dates[0]
	today := uc.clock.Today()
	if !head.Equal(today) && !head.Equal(today.AddDate(0, 0, -1)) {
		return 0, nil
	}

	streak := 1
	expected := head.AddDate(0, 0, -1)
	for _, d := range dates[1:] {
		if !d.Equal(expected) {
			break
		}
		streak++
		expected = d.AddDate(0, 0, -1)
	}
	return streak, nil
}

// ItemScores reports each item's completion ratio over the trailing score
// window. Items with no in-window occurrences score zero.
func (uc *UseCase) ItemScores(ctx context.Context) ([]ItemScore, error) {
	items, err := uc.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}

	from := uc.clock.Today().AddDate(0, 0, -DefaultScoreWindowDays)
	scores := make([]ItemScore, 0, len(items))
	for i := range items {
		item := &items[i]
		occurrences, err := uc.occurrences.List(ctx, repository.OccurrenceFilter{
			ItemID: item.ID,
			From:   &from,
		})
		if err != nil {
			return nil, err
		}

		completed := 0
		for j := range occurrences {
			if occurrences[j].Completed {
				completed++
			}
		}

		score := ItemScore{
			ItemID:    item.ID,
			ItemName:  item.Name,
			Total:     len(occurrences),
			Completed: completed,
		}
		if score.Total > 0 {
			score.Score = round2(float64(completed) / float64(score.Total) * 100)
		}
		scores = append(scores, score)
	}
	return scores, nil
}

// TaskBreakdown counts all occurrences grouped by task category and by item
// name. Occurrences whose item no longer resolves group under "Unknown".
func (uc *UseCase) TaskBreakdown(ctx context.Context) (Breakdown, error) {
	occurrences, err := uc.occurrences.List(ctx, repository.OccurrenceFilter{})
	if err != nil {
		return Breakdown{}, err
	}
	items, err := uc.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return Breakdown{}, err
	}

	names := make(map[string]string, len(items))
	for i := range items {
		names[items[i].ID] = items[i].Name
	}

	breakdown := Breakdown{
		ByCategory: make(map[string]int),
		ByItem:     make(map[string]int),
	}
	for i := range occurrences {
		occ := &occurrences[i]
		breakdown.ByCategory[string(occ.TaskCategory)]++

		name, ok := names[occ.ItemID]
		if !ok {
			name = "Unknown"
		}
		breakdown.ByItem[name]++
	}
	return breakdown, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
