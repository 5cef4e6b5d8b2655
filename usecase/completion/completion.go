package completion

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/pkg/clock"
	"github.com/instacare/backend/repository"
)

// UseCase transitions occurrences to completed and records the audit trail.
// The occurrence mutation and the record append always land together.
type UseCase struct {
	occurrences repository.OccurrenceRepository
	records     repository.CompletionRepository
	uow         repository.UnitOfWork
	clock       clock.Clock
	logger      *zap.Logger
}

func New(
	occurrences repository.OccurrenceRepository,
	records repository.CompletionRepository,
	uow repository.UnitOfWork,
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
		uow:         uow,
		clock:       clk,
		logger:      logger,
	}
}

// CompleteOne marks an occurrence completed and appends one completion
// record. An already-completed occurrence is re-applied: timestamp and note
// are overwritten and another record is appended.
func (uc *UseCase) CompleteOne(ctx context.Context, occurrenceID, note, attachmentURL string) (*domain.Occurrence, error) {
	occ, err := uc.occurrences.GetByID(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	occ.Completed = true
	occ.CompletedAt = &now
	occ.Note = note
	occ.AttachmentURL = attachmentURL

	err = repository.Atomic(ctx, uc.uow, func(txCtx context.Context) error {
		if err := uc.occurrences.Update(txCtx, occ); err != nil {
			return err
		}
		return uc.records.Append(txCtx, &domain.CompletionRecord{
			ID:            uuid.NewString(),
			OccurrenceID:  occ.ID,
			ItemID:        occ.ItemID,
			TaskCategory:  occ.TaskCategory,
			CompletedAt:   now,
			Note:          note,
			AttachmentURL: attachmentURL,
		})
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("occurrence completed", zap.String("occurrence_id", occ.ID))
	return occ, nil
}

// CompleteAllDue transitions every open occurrence for the item due on or
// before today, sharing one timestamp across the batch. The whole batch is
// one transaction: either every selected occurrence transitions or none do.
func (uc *UseCase) CompleteAllDue(ctx context.Context, itemID string) (int, []domain.Occurrence, error) {
	today := uc.clock.Today()
	now := uc.clock.Now()
	open := false

	var due []domain.Occurrence
	err := repository.Atomic(ctx, uc.uow, func(txCtx context.Context) error {
		// The read rides the same transaction as the writes so the
		// selected batch cannot shift underneath it.
		var err error
		due, err = uc.occurrences.List(txCtx, repository.OccurrenceFilter{
			ItemID:    itemID,
			To:        &today,
			Completed: &open,
		})
		if err != nil {
			return err
		}
		for i := range due {
			occ := &due[i]
			occ.Completed = true
			occ.CompletedAt = &now
			if err := uc.occurrences.Update(txCtx, occ); err != nil {
				return err
			}
			if err := uc.records.Append(txCtx, &domain.CompletionRecord{
				ID:           uuid.NewString(),
				OccurrenceID: occ.ID,
				ItemID:       occ.ItemID,
				TaskCategory: occ.TaskCategory,
				CompletedAt:  now,
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, nil, err
	}
	if len(due) == 0 {
		return 0, nil, nil
	}

	uc.logger.Info("batch completed",
		zap.String("item_id", itemID),
		zap.Int("count", len(due)))
	return len(due), due, nil
}

// Reschedule overrides an occurrence's due date directly, bypassing the
// generating rule. Deliberate manual escape hatch; no cadence check.
func (uc *UseCase) Reschedule(ctx context.Context, occurrenceID, newDueDate string) (*domain.Occurrence, error) {
	dueDate, err := domain.ParseDate(newDueDate)
	if err != nil {
		return nil, err
	}

	occ, err := uc.occurrences.GetByID(ctx, occurrenceID)
	if err != nil {
		return nil, err
	}

	occ.DueDate = dueDate
	if err := uc.occurrences.Update(ctx, occ); err != nil {
		return nil, err
	}
	return occ, nil
}
