package services

import (
	"context"
	"time"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// FSAAccountSvcFacade manages account lifecycle and reads.
type FSAAccountSvcFacade interface {
	// CreateAccountInTx creates the employee's account for the current plan
	// year inside an already-open transaction. The plan window is the current
	// calendar year and the annual limit is the configured default. Fails
	// with ErrDuplicate when the employee already has an active account for
	// that plan year.
	CreateAccountInTx(ctx context.Context, tx pgx.Tx, employeeID string, now time.Time) (*domain.FSAAccount, error)

	// GetAccountByID returns the account with its transaction history and
	// employee association populated.
	GetAccountByID(ctx context.Context, accountID string) (*domain.FSAAccount, error)

	// ListAccounts returns a paginated account listing (no history).
	ListAccounts(ctx context.Context, limit, offset int) ([]domain.FSAAccount, error)

	// GetAccountsByEmployeeID returns all of an employee's accounts, newest
	// plan year first.
	GetAccountsByEmployeeID(ctx context.Context, employeeID string) ([]domain.FSAAccount, error)

	// GetActiveAccountByEmployeeID returns the employee's single active
	// account, or ErrNotFound.
	GetActiveAccountByEmployeeID(ctx context.Context, employeeID string) (*domain.FSAAccount, error)

	// UpdateStatus performs an administrative lifecycle transition.
	UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus) (*domain.FSAAccount, error)
}
