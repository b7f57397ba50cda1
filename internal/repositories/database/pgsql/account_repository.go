package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	"github.com/fledgehq/fledge-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, employee_id, account_type, annual_limit, current_balance, used_amount, plan_year_start, plan_year_end, status, created_at, updated_at`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for FSA account data.
func newPgxAccountRepository(pool *pgxpool.Pool) portsrepo.AccountRepositoryWithTx {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepositoryWithTx = (*PgxAccountRepository)(nil)

// Helper to convert domain.FSAAccount to models.FSAAccount for DB storage.
func toModelAccount(d domain.FSAAccount) models.FSAAccount {
	return models.FSAAccount{
		AccountID:      d.AccountID,
		EmployeeID:     d.EmployeeID,
		AccountType:    models.AccountType(d.AccountType),
		AnnualLimit:    d.AnnualLimit,
		CurrentBalance: d.CurrentBalance,
		UsedAmount:     d.UsedAmount,
		PlanYearStart:  d.PlanYearStart,
		PlanYearEnd:    d.PlanYearEnd,
		Status:         models.AccountStatus(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

// Helper to convert models.FSAAccount from DB to domain.FSAAccount.
func toDomainAccount(m models.FSAAccount) domain.FSAAccount {
	return domain.FSAAccount{
		AccountID:      m.AccountID,
		EmployeeID:     m.EmployeeID,
		AccountType:    domain.AccountType(m.AccountType),
		AnnualLimit:    m.AnnualLimit,
		CurrentBalance: m.CurrentBalance,
		UsedAmount:     m.UsedAmount,
		PlanYearStart:  m.PlanYearStart,
		PlanYearEnd:    m.PlanYearEnd,
		Status:         domain.AccountStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

// row abstracts pgx.Row and pgx.Rows for shared scanning.
type row interface {
	Scan(dest ...any) error
}

func scanAccount(r row) (models.FSAAccount, error) {
	var m models.FSAAccount
	err := r.Scan(
		&m.AccountID,
		&m.EmployeeID,
		&m.AccountType,
		&m.AnnualLimit,
		&m.CurrentBalance,
		&m.UsedAmount,
		&m.PlanYearStart,
		&m.PlanYearEnd,
		&m.Status,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// execer abstracts pgxpool.Pool and pgx.Tx for writes.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.FSAAccount) error {
	return r.saveAccount(ctx, r.Pool, account)
}

// SaveAccountInTx inserts a new account within an open transaction.
func (r *PgxAccountRepository) SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.FSAAccount) error {
	return r.saveAccount(ctx, tx, account)
}

func (r *PgxAccountRepository) saveAccount(ctx context.Context, db execer, account domain.FSAAccount) error {
	modelAcc := toModelAccount(account)

	query := `
		INSERT INTO fsa_accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := db.Exec(ctx, query,
		modelAcc.AccountID,
		modelAcc.EmployeeID,
		modelAcc.AccountType,
		modelAcc.AnnualLimit,
		modelAcc.CurrentBalance,
		modelAcc.UsedAmount,
		modelAcc.PlanYearStart,
		modelAcc.PlanYearEnd,
		modelAcc.Status,
		modelAcc.CreatedAt,
		modelAcc.LastUpdatedAt,
	)
	if err != nil {
		return storageError("failed to save account "+modelAcc.AccountID, err)
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.FSAAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM fsa_accounts WHERE account_id = $1;`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storageError("failed to find account by ID "+accountID, err)
	}

	acc := toDomainAccount(m)
	return &acc, nil
}

// FindAccountsByEmployeeID retrieves every account owned by an employee,
// newest plan year first.
func (r *PgxAccountRepository) FindAccountsByEmployeeID(ctx context.Context, employeeID string) ([]domain.FSAAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM fsa_accounts
		WHERE employee_id = $1
		ORDER BY plan_year_start DESC;
	`

	rows, err := r.Pool.Query(ctx, query, employeeID)
	if err != nil {
		return nil, storageError("failed to query accounts for employee "+employeeID, err)
	}
	defer rows.Close()

	accounts := []domain.FSAAccount{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, storageError("failed to scan account row", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("error iterating account rows", err)
	}

	return accounts, nil
}

// FindActiveAccountByEmployeeID retrieves the employee's single active
// account, newest plan year first when history contains several.
func (r *PgxAccountRepository) FindActiveAccountByEmployeeID(ctx context.Context, employeeID string) (*domain.FSAAccount, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM fsa_accounts
		WHERE employee_id = $1 AND status = $2
		ORDER BY plan_year_start DESC
		LIMIT 1;
	`

	m, err := scanAccount(r.Pool.QueryRow(ctx, query, employeeID, models.StatusActive))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storageError("failed to find active account for employee "+employeeID, err)
	}

	acc := toDomainAccount(m)
	return &acc, nil
}

// ListAccounts retrieves a paginated list of accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, limit int, offset int) ([]domain.FSAAccount, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + accountColumns + `
		FROM fsa_accounts
		ORDER BY created_at
		LIMIT $1 OFFSET $2;
	`

	rows, err := r.Pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, storageError("failed to query accounts", err)
	}
	defer rows.Close()

	accounts := []domain.FSAAccount{}
	for rows.Next() {
		m, err := scanAccount(rows)
		if err != nil {
			return nil, storageError("failed to scan account row", err)
		}
		accounts = append(accounts, toDomainAccount(m))
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("error iterating account rows", err)
	}

	return accounts, nil
}

// UpdateAccountStatus transitions an account between lifecycle states.
func (r *PgxAccountRepository) UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, now time.Time) error {
	query := `
		UPDATE fsa_accounts
		SET status = $2, updated_at = $3
		WHERE account_id = $1;
	`

	cmdTag, err := r.Pool.Exec(ctx, query, accountID, models.AccountStatus(status), now)
	if err != nil {
		return storageError("failed to update status for account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindAccountByIDForUpdate selects the account row and locks it for the
// duration of the transaction. Must be called within a transaction.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.FSAAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM fsa_accounts WHERE account_id = $1 FOR UPDATE;`

	m, err := scanAccount(tx.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storageError("failed to lock account "+accountID, err)
	}

	acc := toDomainAccount(m)
	return &acc, nil
}

// UpdateAccountBalanceInTx sets the allocated-to-date balance for a locked
// account row.
func (r *PgxAccountRepository) UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, now time.Time) error {
	query := `
		UPDATE fsa_accounts
		SET current_balance = $2, updated_at = $3
		WHERE account_id = $1;
	`

	cmdTag, err := tx.Exec(ctx, query, accountID, balance, now)
	if err != nil {
		return storageError("failed to update balance for account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Cannot happen while the row is locked, barring external deletes.
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateAccountUsedAmountInTx sets the spent-to-date amount for a locked
// account row.
func (r *PgxAccountRepository) UpdateAccountUsedAmountInTx(ctx context.Context, tx pgx.Tx, accountID string, usedAmount decimal.Decimal, now time.Time) error {
	query := `
		UPDATE fsa_accounts
		SET used_amount = $2, updated_at = $3
		WHERE account_id = $1;
	`

	cmdTag, err := tx.Exec(ctx, query, accountID, usedAmount, now)
	if err != nil {
		return storageError("failed to update used amount for account "+accountID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
