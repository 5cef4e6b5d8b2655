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

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository instantiates a Postgres-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) repository.UserRepository {
	return &userRepository{pool: pool}
}

const userColumns = `id, username, email, name, biography, password_hash, reminder_hours, notifications_enabled, created_at, updated_at`

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
	SELECT ` + userColumns + `
	FROM users
	WHERE id = $1
	`
	return scanUser(executor(ctx, r.pool).QueryRow(ctx, query, id))
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
	SELECT ` + userColumns + `
	FROM users
	WHERE username = $1
	`
	return scanUser(executor(ctx, r.pool).QueryRow(ctx, query, username))
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrInvalidPayload
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	const query = `
	INSERT INTO users (id, username, email, name, biography, password_hash, reminder_hours, notifications_enabled)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING created_at, updated_at
	`
	if err := executor(ctx, r.pool).QueryRow(ctx, query,
		user.ID,
		nullString(user.Username),
		nullString(user.Email),
		user.Name,
		nullString(user.Biography),
		nullString(user.PasswordHash),
		user.ReminderHours,
		user.NotificationsEnabled,
	).Scan(&user.CreatedAt, &user.UpdatedAt); err != nil {
		return nil, domain.WrapStore("create user", err)
	}
	return user, nil
}

func (r *userRepository) Update(ctx context.Context, user *domain.User) error {
	if user == nil {
		return domain.ErrInvalidPayload
	}

	const query = `
	UPDATE users
	SET username = $2,
		email = $3,
		name = $4,
		biography = $5,
		reminder_hours = $6,
		notifications_enabled = $7,
		updated_at = NOW()
	WHERE id = $1
	RETURNING updated_at
	`
	if err := executor(ctx, r.pool).QueryRow(ctx, query,
		user.ID,
		nullString(user.Username),
		nullString(user.Email),
		user.Name,
		nullString(user.Biography),
		user.ReminderHours,
		user.NotificationsEnabled,
	).Scan(&user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		return domain.WrapStore("update user", err)
	}
	return nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	var (
		username     *string
		email        *string
		biography    *string
		passwordHash *string
	)
	if err := row.Scan(
		&user.ID,
		&username,
		&email,
		&user.Name,
		&biography,
		&passwordHash,
		&user.ReminderHours,
		&user.NotificationsEnabled,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.WrapStore("scan user", err)
	}
	user.Username = stringOrEmpty(username)
	user.Email = stringOrEmpty(email)
	user.Biography = stringOrEmpty(biography)
	user.PasswordHash = stringOrEmpty(passwordHash)
	return &user, nil
}
