package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/repository"
)

type occurrenceRepository struct {
	pool *pgxpool.Pool
}

// NewOccurrenceRepository returns a Postgres-backed OccurrenceRepository.
func NewOccurrenceRepository(pool *pgxpool.Pool) repository.OccurrenceRepository {
	return &occurrenceRepository{pool: pool}
}

const occurrenceColumns = `id, definition_id, item_id, due_date, task_category, completed, completed_at, note, attachment_url`

func (r *occurrenceRepository) GetByID(ctx context.Context, id string) (*domain.Occurrence, error) {
	const query = `
	SELECT ` + occurrenceColumns + `
	FROM occurrences
	WHERE id = $1
	`
	row := executor(ctx, r.pool).QueryRow(ctx, query, id)
	return scanOccurrence(row)
}

func (r *occurrenceRepository) List(ctx context.Context, filter repository.OccurrenceFilter) ([]domain.Occurrence, error) {
	const query = `
	SELECT ` + occurrenceColumns + `
	FROM occurrences
	WHERE ($1::date IS NULL OR due_date >= $1)
	  AND ($2::date IS NULL OR due_date <= $2)
	  AND ($3::date IS NULL OR due_date = $3)
	  AND ($4 = '' OR item_id = $4)
	  AND ($5 = '' OR definition_id = $5)
	  AND ($6 = '' OR task_category = $6)
	  AND ($7::boolean IS NULL OR completed = $7)
	ORDER BY due_date
	`
	rows, err := executor(ctx, r.pool).Query(ctx, query,
		nullDate(filter.From),
		nullDate(filter.To),
		nullDate(filter.DueOn),
		filter.ItemID,
		filter.DefinitionID,
		string(filter.TaskCategory),
		filter.Completed,
	)
	if err != nil {
		return nil, domain.WrapStore("list occurrences", err)
	}
	defer rows.Close()

	var occurrences []domain.Occurrence
	for rows.Next() {
		occ, err := scanOccurrence(rows)
		if err != nil {
			return nil, err
		}
		occurrences = append(occurrences, *occ)
	}
	return occurrences, rows.Err()
}

// CreateBatch inserts the whole set in one round trip. Callers wanting
// rollback-on-failure run it inside a unit of work; a standalone call is
// still atomic because the batch executes in an implicit transaction.
func (r *occurrenceRepository) CreateBatch(ctx context.Context, occurrences []domain.Occurrence) error {
	if len(occurrences) == 0 {
		return nil
	}

	const query = `
	INSERT INTO occurrences (id, definition_id, item_id, due_date, task_category, completed, completed_at, note, attachment_url)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	batch := &pgx.Batch{}
	for i := range occurrences {
		occ := &occurrences[i]
		if occ.ID == "" {
			occ.ID = uuid.NewString()
		}
		batch.Queue(query,
			occ.ID,
			occ.DefinitionID,
			occ.ItemID,
			occ.DueDate,
			string(occ.TaskCategory),
			occ.Completed,
			occ.CompletedAt,
			nullString(occ.Note),
			nullString(occ.AttachmentURL),
		)
	}

	var results pgx.BatchResults
	if info, ok := ctx.Value(txKey{}).(txInfo); ok && info.tx != nil {
		results = info.tx.SendBatch(ctx, batch)
	} else {
		results = r.pool.SendBatch(ctx, batch)
	}
	defer results.Close()

	for range occurrences {
		if _, err := results.Exec(); err != nil {
			return domain.WrapStore("insert occurrence batch", err)
		}
	}
	return nil
}

func (r *occurrenceRepository) Update(ctx context.Context, occurrence *domain.Occurrence) error {
	if occurrence == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE occurrences
	SET due_date = $2,
		completed = $3,
		completed_at = $4,
		note = $5,
		attachment_url = $6
	WHERE id = $1
	`
	tag, err := executor(ctx, r.pool).Exec(ctx, query,
		occurrence.ID,
		occurrence.DueDate,
		occurrence.Completed,
		occurrence.CompletedAt,
		nullString(occurrence.Note),
		nullString(occurrence.AttachmentURL),
	)
	if err != nil {
		return domain.WrapStore("update occurrence", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOccurrenceNotFound
	}
	return nil
}

func (r *occurrenceRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM occurrences WHERE id = $1`
	tag, err := executor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return domain.WrapStore("delete occurrence", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrOccurrenceNotFound
	}
	return nil
}

func (r *occurrenceRepository) DeleteByDefinition(ctx context.Context, definitionID string) error {
	const query = `DELETE FROM occurrences WHERE definition_id = $1`
	if _, err := executor(ctx, r.pool).Exec(ctx, query, definitionID); err != nil {
		return domain.WrapStore("delete occurrences by definition", err)
	}
	return nil
}

func (r *occurrenceRepository) DeleteByItem(ctx context.Context, itemID string) error {
	const query = `DELETE FROM occurrences WHERE item_id = $1`
	if _, err := executor(ctx, r.pool).Exec(ctx, query, itemID); err != nil {
		return domain.WrapStore("delete occurrences by item", err)
	}
	return nil
}

func (r *occurrenceRepository) MaxDueDate(ctx context.Context, definitionID string) (*time.Time, error) {
	const query = `SELECT MAX(due_date) FROM occurrences WHERE definition_id = $1`
	var max *time.Time
	if err := executor(ctx, r.pool).QueryRow(ctx, query, definitionID).Scan(&max); err != nil {
		return nil, domain.WrapStore("max due date", err)
	}
	if max != nil {
		normalized := domain.Midnight(*max)
		max = &normalized
	}
	return max, nil
}

func scanOccurrence(row pgx.Row) (*domain.Occurrence, error) {
	var occ domain.Occurrence
	var (
		category   string
		note       *string
		attachment *string
	)
	if err := row.Scan(
		&occ.ID,
		&occ.DefinitionID,
		&occ.ItemID,
		&occ.DueDate,
		&category,
		&occ.Completed,
		&occ.CompletedAt,
		&note,
		&attachment,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrOccurrenceNotFound
		}
		return nil, domain.WrapStore("scan occurrence", err)
	}
	occ.TaskCategory = domain.TaskCategory(category)
	occ.DueDate = domain.Midnight(occ.DueDate)
	occ.Note = stringOrEmpty(note)
	occ.AttachmentURL = stringOrEmpty(attachment)
	return &occ, nil
}

func nullDate(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
