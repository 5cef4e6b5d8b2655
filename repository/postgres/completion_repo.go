package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/repository"
)

type completionRepository struct {
	pool *pgxpool.Pool
}

// NewCompletionRepository returns a Postgres-backed CompletionRepository.
// The table is append-only; no update or delete statements exist here.
func NewCompletionRepository(pool *pgxpool.Pool) repository.CompletionRepository {
	return &completionRepository{pool: pool}
}

func (r *completionRepository) Append(ctx context.Context, record *domain.CompletionRecord) error {
	if record == nil {
		return domain.ErrInvalidPayload
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO completion_records (id, occurrence_id, item_id, task_category, completed_at, note, attachment_url)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := executor(ctx, r.pool).Exec(ctx, query,
		record.ID,
		record.OccurrenceID,
		record.ItemID,
		string(record.TaskCategory),
		record.CompletedAt,
		nullString(record.Note),
		nullString(record.AttachmentURL),
	); err != nil {
		return domain.WrapStore("append completion record", err)
	}
	return nil
}

func (r *completionRepository) List(ctx context.Context) ([]domain.CompletionRecord, error) {
	const query = `
	SELECT id, occurrence_id, item_id, task_category, completed_at, note, attachment_url
	FROM completion_records
	ORDER BY completed_at DESC
	`
	rows, err := executor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, domain.WrapStore("list completion records", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func (r *completionRepository) ListByOccurrence(ctx context.Context, occurrenceID string) ([]domain.CompletionRecord, error) {
	const query = `
	SELECT id, occurrence_id, item_id, task_category, completed_at, note, attachment_url
	FROM completion_records
	WHERE occurrence_id = $1
	ORDER BY completed_at DESC
	`
	rows, err := executor(ctx, r.pool).Query(ctx, query, occurrenceID)
	if err != nil {
		return nil, domain.WrapStore("list completion records by occurrence", err)
	}
	defer rows.Close()
	return collectRecords(rows)
}

func collectRecords(rows pgx.Rows) ([]domain.CompletionRecord, error) {
	var records []domain.CompletionRecord
	for rows.Next() {
		var rec domain.CompletionRecord
		var (
			category   string
			note       *string
			attachment *string
		)
		if err := rows.Scan(
			&rec.ID,
			&rec.OccurrenceID,
			&rec.ItemID,
			&category,
			&rec.CompletedAt,
			&note,
			&attachment,
		); err != nil {
			return nil, domain.WrapStore("scan completion record", err)
		}
		rec.TaskCategory = domain.TaskCategory(category)
		rec.Note = stringOrEmpty(note)
		rec.AttachmentURL = stringOrEmpty(attachment)
		records = append(records, rec)
	}
	return records, rows.Err()
}
