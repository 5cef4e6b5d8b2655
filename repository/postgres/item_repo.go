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

type itemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository returns a Postgres-backed implementation of ItemRepository.
func NewItemRepository(pool *pgxpool.Pool) repository.ItemRepository {
	return &itemRepository{pool: pool}
}

func (r *itemRepository) GetByID(ctx context.Context, id string) (*domain.Item, error) {
	const query = `
	SELECT id, user_id, name, category, notes, created_at, updated_at
	FROM items
	WHERE id = $1
	`
	row := executor(ctx, r.pool).QueryRow(ctx, query, id)
	return scanItem(row)
}

func (r *itemRepository) List(ctx context.Context, filter repository.ItemFilter) ([]domain.Item, error) {
	const query = `
	SELECT id, user_id, name, category, notes, created_at, updated_at
	FROM items
	WHERE ($1 = '' OR user_id = $1)
	ORDER BY created_at
	LIMIT $2 OFFSET $3
	`
	rows, err := executor(ctx, r.pool).Query(ctx, query, filter.UserID, clampLimit(filter.Limit), filter.Offset)
	if err != nil {
		return nil, domain.WrapStore("list items", err)
	}
	defer rows.Close()

	var items []domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, rows.Err()
}

func (r *itemRepository) Create(ctx context.Context, item *domain.Item) (*domain.Item, error) {
	if item == nil {
		return nil, domain.ErrInvalidPayload
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO items (id, user_id, name, category, notes)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING created_at, updated_at
	`
	if err := executor(ctx, r.pool).QueryRow(ctx, query,
		item.ID,
		nullString(item.UserID),
		item.Name,
		string(item.Category),
		nullString(item.Notes),
	).Scan(&item.CreatedAt, &item.UpdatedAt); err != nil {
		return nil, domain.WrapStore("create item", err)
	}
	return item, nil
}

func (r *itemRepository) Update(ctx context.Context, item *domain.Item) error {
	if item == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE items
	SET name = $2,
		category = $3,
		notes = $4,
		user_id = COALESCE($5, user_id),
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := executor(ctx, r.pool).QueryRow(ctx, query,
		item.ID,
		item.Name,
		string(item.Category),
		nullString(item.Notes),
		nullString(item.UserID),
	).Scan(&item.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrItemNotFound
		}
		return domain.WrapStore("update item", err)
	}
	return nil
}

func (r *itemRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM items WHERE id = $1`
	tag, err := executor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return domain.WrapStore("delete item", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrItemNotFound
	}
	return nil
}

func scanItem(row pgx.Row) (*domain.Item, error) {
	var item domain.Item
	var (
		userID   *string
		category string
		notes    *string
	)
	if err := row.Scan(&item.ID, &userID, &item.Name, &category, &notes, &item.CreatedAt, &item.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrItemNotFound
		}
		return nil, domain.WrapStore("scan item", err)
	}
	item.UserID = stringOrEmpty(userID)
	item.Category = domain.ItemCategory(category)
	item.Notes = stringOrEmpty(notes)
	return &item, nil
}
