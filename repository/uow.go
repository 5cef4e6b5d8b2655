package repository

import "context"

// UnitOfWork groups multiple repository writes into one atomic scope. The
// transaction travels in the returned context; repositories pick it up when
// present and fall back to their own connection otherwise.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Atomic executes fn inside a unit of work, rolling back on any error.
func Atomic(ctx context.Context, uow UnitOfWork, fn func(ctx context.Context) error) error {
	txCtx, err := uow.Begin(ctx)
	if err != nil {
		return err
	}
	if err := fn(txCtx); err != nil {
		_ = uow.Rollback(txCtx)
		return err
	}
	return uow.Commit(txCtx)
}
