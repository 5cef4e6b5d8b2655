package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/instacare/backend/domain"
	"github.com/instacare/backend/repository"
)

type definitionRepository struct {
	pool *pgxpool.Pool
}

// NewDefinitionRepository returns a Postgres-backed DefinitionRepository.
func NewDefinitionRepository(pool *pgxpool.Pool) repository.DefinitionRepository {
	return &definitionRepository{pool: pool}
}

func (r *definitionRepository) GetByID(ctx context.Context, id string) (*domain.Definition, error) {
	const query = `
	SELECT id, item_id, task_category, frequency_kind, frequency_interval, start_date, created_at
	FROM definitions
	WHERE id = $1
	`
	row := executor(ctx, r.pool).QueryRow(ctx, query, id)
	return scanDefinition(row)
}

func (r *definitionRepository) List(ctx context.Context, filter repository.DefinitionFilter) ([]domain.Definition, error) {
	const query = `
	SELECT id, item_id, task_category, frequency_kind, frequency_interval, start_date, created_at
	FROM definitions
	WHERE ($1 = '' OR item_id = $1)
	ORDER BY created_at
	`
	rows, err := executor(ctx, r.pool).Query(ctx, query, filter.ItemID)
	if err != nil {
		return nil, domain.WrapStore("list definitions", err)
	}
	defer rows.Close()

	var defs []domain.Definition
	for rows.Next() {
		def, err := scanDefinition(rows)
		if err != nil {
			return nil, err
		}
		defs = append(defs, *def)
	}
	return defs, rows.Err()
}

func (r *definitionRepository) Create(ctx context.Context, def *domain.Definition) (*domain.Definition, error) {
	if def == nil {
		return nil, domain.ErrInvalidPayload
	}
	if def.ID == "" {
		def.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO definitions (id, item_id, task_category, frequency_kind, frequency_interval, start_date)
	VALUES ($1, $2, $3, $4, $5, $6)
	RETURNING created_at
	`
	if err := executor(ctx, r.pool).QueryRow(ctx, query,
		def.ID,
		def.ItemID,
		string(def.TaskCategory),
		string(def.Frequency.Kind),
		def.Frequency.Interval,
		def.StartDate,
	).Scan(&def.CreatedAt); err != nil {
		return nil, domain.WrapStore("create definition", err)
	}
	return def, nil
}

func (r *definitionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM definitions WHERE id = $1`
	tag, err := executor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return domain.WrapStore("delete definition", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrDefinitionNotFound
	}
	return nil
}

func (r *definitionRepository) DeleteByItem(ctx context.Context, itemID string) error {
	const query = `DELETE FROM definitions WHERE item_id = $1`
	if _, err := executor(ctx, r.pool).Exec(ctx, query, itemID); err != nil {
		return domain.WrapStore("delete definitions by item", err)
	}
	return nil
}

func scanDefinition(row pgx.Row) (*domain.Definition, error) {
	var def domain.Definition
	var (
		category string
		kind     string
	)
	if err := row.Scan(
		&def.ID,
		&def.ItemID,
		&category,
		&kind,
		&def.Frequency.Interval,
		&def.StartDate,
		&def.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrDefinitionNotFound
		}
		return nil, domain.WrapStore("scan definition", err)
	}
	def.TaskCategory = domain.TaskCategory(category)
	def.Frequency.Kind = domain.FrequencyKind(kind)
	def.StartDate = domain.Midnight(def.StartDate)
	return &def, nil
}
