package repositories

import (
	"context"
	"time"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for FSA account data.
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.FSAAccount, error)

	// FindAccountsByEmployeeID retrieves every account owned by an employee,
	// newest plan year first.
	FindAccountsByEmployeeID(ctx context.Context, employeeID string) ([]domain.FSAAccount, error)

	// FindActiveAccountByEmployeeID retrieves the employee's single active
	// account, or ErrNotFound when none exists.
	FindActiveAccountByEmployeeID(ctx context.Context, employeeID string) (*domain.FSAAccount, error)

	// ListAccounts retrieves a paginated list of accounts.
	ListAccounts(ctx context.Context, limit int, offset int) ([]domain.FSAAccount, error)
}

// AccountWriter defines write operations for FSA account data.
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.FSAAccount) error

	// UpdateAccountStatus transitions an account between lifecycle states.
	UpdateAccountStatus(ctx context.Context, accountID string, status domain.AccountStatus, now time.Time) error
}

// AccountTransactionSupport defines the operations the allocation and expense
// paths run inside a database transaction.
type AccountTransactionSupport interface {
	// SaveAccountInTx persists a new account within an open transaction, so
	// onboarding can create the employee, account, and credential atomically.
	SaveAccountInTx(ctx context.Context, tx pgx.Tx, account domain.FSAAccount) error

	// FindAccountByIDForUpdate selects the account row and locks it for the
	// duration of the transaction. Concurrent allocations against the same
	// account serialize on this lock.
	FindAccountByIDForUpdate(ctx context.Context, tx pgx.Tx, accountID string) (*domain.FSAAccount, error)

	// UpdateAccountBalanceInTx sets the allocated-to-date balance for a locked
	// account row.
	UpdateAccountBalanceInTx(ctx context.Context, tx pgx.Tx, accountID string, balance decimal.Decimal, now time.Time) error

	// UpdateAccountUsedAmountInTx sets the spent-to-date amount for a locked
	// account row.
	UpdateAccountUsedAmountInTx(ctx context.Context, tx pgx.Tx, accountID string, usedAmount decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountTransactionSupport
}

// AccountRepositoryWithTx extends AccountRepositoryFacade with transaction
// control.
type AccountRepositoryWithTx interface {
	AccountRepositoryFacade
	TransactionManager
}
