package pgsql

import (
	"context"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	"github.com/fledgehq/fledge-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, fsa_account_id, amount, transaction_type, description, transaction_date, status, created_at, updated_at`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for the ledger.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryFacade {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		AccountID:       d.AccountID,
		Amount:          d.Amount,
		TransactionType: models.TransactionType(d.TransactionType),
		Description:     d.Description,
		TransactionDate: d.TransactionDate,
		Status:          models.TransactionStatus(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		AccountID:       m.AccountID,
		Amount:          m.Amount,
		TransactionType: domain.TransactionType(m.TransactionType),
		Description:     m.Description,
		TransactionDate: m.TransactionDate,
		Status:          domain.TransactionStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func scanTransaction(r row) (models.Transaction, error) {
	var m models.Transaction
	err := r.Scan(
		&m.TransactionID,
		&m.AccountID,
		&m.Amount,
		&m.TransactionType,
		&m.Description,
		&m.TransactionDate,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveTransactionInTx appends one ledger entry within an open transaction.
// The ledger is append-only, so insert is the only write this repository has.
func (r *PgxTransactionRepository) SaveTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	modelTxn := toModelTransaction(txn)

	query := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.AccountID,
		modelTxn.Amount,
		modelTxn.TransactionType,
		modelTxn.Description,
		modelTxn.TransactionDate,
		modelTxn.Status,
		modelTxn.CreatedAt,
		modelTxn.LastUpdatedAt,
	)
	if err != nil {
		return storageError("failed to save transaction "+modelTxn.TransactionID, err)
	}
	return nil
}

// FindTransactionsByAccountID retrieves the full transaction history for an
// account, newest first.
func (r *PgxTransactionRepository) FindTransactionsByAccountID(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE fsa_account_id = $1
		ORDER BY transaction_date DESC, created_at DESC;
	`

	rows, err := r.Pool.Query(ctx, query, accountID)
	if err != nil {
		return nil, storageError("failed to query transactions for account "+accountID, err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		m, err := scanTransaction(rows)
		if err != nil {
			return nil, storageError("failed to scan transaction row", err)
		}
		txns = append(txns, toDomainTransaction(m))
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("error iterating transaction rows", err)
	}

	return txns, nil
}
