package repositories

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TransactionManager exposes explicit transaction control for operations that
// must mutate several tables as one atomic unit. Begin hands back a pgx.Tx
// that the *InTx repository methods operate on; callers must always Commit or
// Rollback on every exit path.
type TransactionManager interface {
	Begin(ctx context.Context) (pgx.Tx, error)
	Commit(ctx context.Context, tx pgx.Tx) error
	Rollback(ctx context.Context, tx pgx.Tx) error
}
