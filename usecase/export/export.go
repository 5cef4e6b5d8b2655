package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"time"

	"github.com/emersion/go-ical"
	"go.uber.org/zap"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/pkg/clock"
	"github.com/instacare/backend/repository"
)

// Backup is the full-dump envelope returned by the JSON export.
type Backup struct {
	ExportDate        time.Time                 `json:"export_date"`
	Items             []domain.Item             `json:"items"`
	Definitions       []domain.Definition       `json:"definitions"`
	Occurrences       []domain.Occurrence       `json:"occurrences"`
	CompletionRecords []domain.CompletionRecord `json:"completion_records"`
}

// UseCase renders occurrence data as calendar, spreadsheet, and backup
// formats. Read-only.
type UseCase struct {
	items       repository.ItemRepository
	definitions repository.DefinitionRepository
	occurrences repository.OccurrenceRepository
	records     repository.CompletionRepository
	clock       clock.Clock
	logger      *zap.Logger
}

func New(
	items repository.ItemRepository,
	definitions repository.DefinitionRepository,
	occurrences repository.OccurrenceRepository,
	records repository.CompletionRepository,
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
		items:       items,
		definitions: definitions,
		occurrences: occurrences,
		records:     records,
		clock:       clk,
		logger:      logger,
	}
}

// ICS renders the filtered occurrences as an iCalendar document with one
// all-day event per occurrence.
func (uc *UseCase) ICS(ctx context.Context, filter repository.OccurrenceFilter) ([]byte, error) {
	occurrences, err := uc.occurrences.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	names, err := uc.itemNames(ctx)
	if err != nil {
		return nil, err
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//instacare//backend//EN")

	// The encoder refuses a calendar with no components, but an empty
	// schedule is still a valid export.
	if len(occurrences) == 0 {
		return []byte("BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:-//instacare//backend//EN\r\nEND:VCALENDAR\r\n"), nil
	}

	stamp := uc.clock.Now().Format("20060102T150405Z")
	for i := range occurrences {
		occ := &occurrences[i]
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, occ.ID)
		event.Props.SetText(ical.PropSummary, string(occ.TaskCategory)+" - "+nameFor(names, occ.ItemID))
		event.Props.SetText(ical.PropDescription, "Care task for "+nameFor(names, occ.ItemID))

		start := ical.NewProp(ical.PropDateTimeStart)
		start.Params.Set(ical.ParamValue, "DATE")
		start.Value = occ.DueDate.Format("20060102")
		event.Props.Set(start)

		dtstamp := ical.NewProp(ical.PropDateTimeStamp)
		dtstamp.Value = stamp
		event.Props.Set(dtstamp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// CSV streams the full occurrence history as spreadsheet rows.
func (uc *UseCase) CSV(ctx context.Context, w io.Writer) error {
	occurrences, err := uc.occurrences.List(ctx, repository.OccurrenceFilter{})
	if err != nil {
		return err
	}
	names, err := uc.itemNames(ctx)
	if err != nil {
		return err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write([]string{"Date", "Item", "Task Category", "Completed", "Completed At", "Note"}); err != nil {
		return err
	}
	for i := range occurrences {
		occ := &occurrences[i]
		completed := "No"
		if occ.Completed {
			completed = "Yes"
		}
		completedAt := ""
		if occ.CompletedAt != nil {
			completedAt = occ.CompletedAt.Format(time.RFC3339)
		}
		if err := writer.Write([]string{
			occ.DueDate.Format(domain.DateOnly),
			nameFor(names, occ.ItemID),
			string(occ.TaskCategory),
			completed,
			completedAt,
			occ.Note,
		}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// JSONBackup collects every collection into one envelope.
func (uc *UseCase) JSONBackup(ctx context.Context) (*Backup, error) {
	items, err := uc.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	definitions, err := uc.definitions.List(ctx, repository.DefinitionFilter{})
	if err != nil {
		return nil, err
	}
	occurrences, err := uc.occurrences.List(ctx, repository.OccurrenceFilter{})
	if err != nil {
		return nil, err
	}
	records, err := uc.records.List(ctx)
	if err != nil {
		return nil, err
	}

	return &Backup{
		ExportDate:        uc.clock.Now(),
		Items:             items,
		Definitions:       definitions,
		Occurrences:       occurrences,
		CompletionRecords: records,
	}, nil
}

func (uc *UseCase) itemNames(ctx context.Context) (map[string]string, error) {
	items, err := uc.items.List(ctx, repository.ItemFilter{})
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(items))
	for i := range items {
		names[items[i].ID] = items[i].Name
	}
	return names, nil
}

func nameFor(names map[string]string, itemID string) string {
	if name, ok := names[itemID]; ok {
		return name
	}
	return "Unknown"
}
