package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/pkg/clock"
	"github.com/instacare/backend/repository"
)

// DefaultHorizonDays is how far ahead occurrences are pre-generated when the
// caller does not supply a horizon.
const DefaultHorizonDays = 90

// CreateDefinitionInput carries the fields needed to register a recurring task.
type CreateDefinitionInput struct {
	ItemID       string
	TaskCategory domain.TaskCategory
	Frequency    domain.Frequency
	StartDate    string
}

// UseCase expands task definitions into dated occurrences and manages their
// lifecycle. Completion state is handled by the completion use case.
type UseCase struct {
	definitions repository.DefinitionRepository
	occurrences repository.OccurrenceRepository
	items       repository.ItemRepository
	uow         repository.UnitOfWork
	clock       clock.Clock
	horizonDays int
	logger      *zap.Logger
}

func New(
	definitions repository.DefinitionRepository,
	occurrences repository.OccurrenceRepository,
	items repository.ItemRepository,
	uow repository.UnitOfWork,
	clk clock.Clock,
	horizonDays int,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clk == nil {
		clk = clock.System()
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &UseCase{
		definitions: definitions,
		occurrences: occurrences,
		items:       items,
		uow:         uow,
		clock:       clk,
		horizonDays: horizonDays,
		logger:      logger,
	}
}

// CreateDefinition validates the input, then inserts the definition together
// with its expanded occurrence set in one transaction. Validation failures
// reject before any write.
func (uc *UseCase) CreateDefinition(ctx context.Context, input CreateDefinitionInput) (*domain.Definition, []domain.Occurrence, error) {
	startDate, err := domain.ParseDate(input.StartDate)
	if err != nil {
		return nil, nil, err
	}
	if err := input.Frequency.Validate(); err != nil {
		return nil, nil, err
	}

	if _, err := uc.items.GetByID(ctx, input.ItemID); err != nil {
		if domain.IsDomainError(err, domain.ErrCodeNotFound) {
			return nil, nil, domain.ErrUnknownItem
		}
		return nil, nil, err
	}

	def := &domain.Definition{
		ID:           uuid.NewString(),
		ItemID:       input.ItemID,
		TaskCategory: input.TaskCategory,
		Frequency:    input.Frequency,
		StartDate:    startDate,
	}

	horizon := uc.clock.Today().AddDate(0, 0, uc.horizonDays)
	dates, err := domain.Schedule(def.StartDate, def.Frequency, horizon)
	if err != nil {
		return nil, nil, err
	}
	occurrences := uc.materialize(def, dates)

	err = repository.Atomic(ctx, uc.uow, func(txCtx context.Context) error {
		if _, err := uc.definitions.Create(txCtx, def); err != nil {
			return err
		}
		return uc.occurrences.CreateBatch(txCtx, occurrences)
	})
	if err != nil {
		return nil, nil, err
	}

	uc.logger.Info("definition created",
		zap.String("definition_id", def.ID),
		zap.String("item_id", def.ItemID),
		zap.Int("occurrences", len(occurrences)))
	return def, occurrences, nil
}

// ExtendHorizon generates occurrences for due dates strictly after the
// definition's current maximum, so repeated calls never duplicate dates.
func (uc *UseCase) ExtendHorizon(ctx context.Context, definitionID string, horizon time.Time) ([]domain.Occurrence, error) {
	def, err := uc.definitions.GetByID(ctx, definitionID)
	if err != nil {
		return nil, err
	}

	if horizon.IsZero() {
		horizon = uc.clock.Today().AddDate(0, 0, uc.horizonDays)
	}

	cutoff := def.StartDate.AddDate(0, 0, -1)
	maxDue, err := uc.occurrences.MaxDueDate(ctx, definitionID)
	if err != nil {
		return nil, err
	}
	if maxDue != nil {
		cutoff = *maxDue
	}

	dates, err := domain.ScheduleAfter(def.StartDate, def.Frequency, cutoff, horizon)
	if err != nil {
		return nil, err
	}
	if len(dates) == 0 {
		return nil, nil
	}

	occurrences := uc.materialize(def, dates)
	err = repository.Atomic(ctx, uc.uow, func(txCtx context.Context) error {
		return uc.occurrences.CreateBatch(txCtx, occurrences)
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("horizon extended",
		zap.String("definition_id", definitionID),
		zap.Int("occurrences", len(occurrences)))
	return occurrences, nil
}

// DeleteDefinition removes a definition and cascades to its occurrences.
// Completion records referencing those occurrences are left untouched.
func (uc *UseCase) DeleteDefinition(ctx context.Context, id string) error {
	if _, err := uc.definitions.GetByID(ctx, id); err != nil {
		return err
	}
	return repository.Atomic(ctx, uc.uow, func(txCtx context.Context) error {
		if err := uc.occurrences.DeleteByDefinition(txCtx, id); err != nil {
			return err
		}
		return uc.definitions.Delete(txCtx, id)
	})
}

func (uc *UseCase) GetDefinition(ctx context.Context, id string) (*domain.Definition, error) {
	return uc.definitions.GetByID(ctx, id)
}

func (uc *UseCase) ListDefinitions(ctx context.Context, filter repository.DefinitionFilter) ([]domain.Definition, error) {
	return uc.definitions.List(ctx, filter)
}

func (uc *UseCase) ListOccurrences(ctx context.Context, filter repository.OccurrenceFilter) ([]domain.Occurrence, error) {
	return uc.occurrences.List(ctx, filter)
}

// ListDueOn returns open occurrences due exactly on the given date.
func (uc *UseCase) ListDueOn(ctx context.Context, date time.Time) ([]domain.Occurrence, error) {
	due := domain.Midnight(date)
	open := false
	return uc.occurrences.List(ctx, repository.OccurrenceFilter{DueOn: &due, Completed: &open})
}

// ListOverdue returns open occurrences whose due date has passed.
func (uc *UseCase) ListOverdue(ctx context.Context) ([]domain.Occurrence, error) {
	yesterday := uc.clock.Today().AddDate(0, 0, -1)
	open := false
	return uc.occurrences.List(ctx, repository.OccurrenceFilter{To: &yesterday, Completed: &open})
}

func (uc *UseCase) DeleteOccurrence(ctx context.Context, id string) error {
	return uc.occurrences.Delete(ctx, id)
}

func (uc *UseCase) materialize(def *domain.Definition, dates []time.Time) []domain.Occurrence {
	occurrences := make([]domain.Occurrence, 0, len(dates))
	for _, due := range dates {
		occurrences = append(occurrences, domain.Occurrence{
			ID:           uuid.NewString(),
			DefinitionID: def.ID,
			ItemID:       def.ItemID,
			DueDate:      due,
			TaskCategory: def.TaskCategory,
		})
	}
	return occurrences
}
