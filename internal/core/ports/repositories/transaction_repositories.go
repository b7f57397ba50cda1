package repositories

import (
	"context"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// TransactionReader defines read operations over the append-only ledger.
type TransactionReader interface {
	// FindTransactionsByAccountID retrieves the full transaction history for
	// an account, newest first.
	FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error)
}

// TransactionWriter appends ledger entries. There is deliberately no update
// or delete: a transaction row is written exactly once, in the same database
// transaction as the account mutation it records.
type TransactionWriter interface {
	SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
}

// TransactionRepositoryFacade combines the ledger interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
