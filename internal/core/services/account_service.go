package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/middleware"
)

// fsaAccountService manages account lifecycle and the account read surface.
type fsaAccountService struct {
	accountRepo  portsrepo.AccountRepositoryFacade
	txnRepo      portsrepo.TransactionRepositoryFacade
	employeeRepo portsrepo.EmployeeRepositoryFacade
	defaultLimit decimal.Decimal
}

// NewFSAAccountService creates the account lifecycle manager. defaultLimit is
// the business-configured annual limit new accounts start with.
func NewFSAAccountService(accountRepo portsrepo.AccountRepositoryFacade, txnRepo portsrepo.TransactionRepositoryFacade, employeeRepo portsrepo.EmployeeRepositoryFacade, defaultLimit decimal.Decimal) portssvc.FSAAccountSvcFacade {
	return &fsaAccountService{
		accountRepo:  accountRepo,
		txnRepo:      txnRepo,
		employeeRepo: employeeRepo,
		defaultLimit: defaultLimit,
	}
}

var _ portssvc.FSAAccountSvcFacade = (*fsaAccountService)(nil)

// CreateAccountInTx creates the employee's DCFSA account for the current
// calendar plan year inside an already-open transaction, so onboarding can
// commit the employee, account, and credential as one unit.
func (s *fsaAccountService) CreateAccountInTx(ctx context.Context, tx pgx.Tx, employeeID string, now time.Time) (*domain.FSAAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// One active account per employee per plan year.
	existing, err := s.accountRepo.FindActiveAccountByEmployeeID(ctx, employeeID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check for existing active account", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: employee %s already has an active account %s", apperrors.ErrDuplicate, employeeID, existing.AccountID)
	}

	start, end := domain.PlanYearBounds(now)
	account := domain.FSAAccount{
		AccountID:      uuid.NewString(),
		EmployeeID:     employeeID,
		AccountType:    domain.DCFSA,
		AnnualLimit:    s.defaultLimit,
		CurrentBalance: decimal.Zero,
		UsedAmount:     decimal.Zero,
		PlanYearStart:  start,
		PlanYearEnd:    end,
		Status:         domain.StatusActive,
		AuditFields:    domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}

	if err := s.accountRepo.SaveAccountInTx(ctx, tx, account); err != nil {
		logger.Error("Failed to save new account", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, err
	}

	logger.Info("FSA account created",
		slog.String("account_id", account.AccountID),
		slog.String("employee_id", employeeID),
		slog.String("annual_limit", account.AnnualLimit.StringFixed(2)),
	)
	return &account, nil
}

// GetAccountByID returns the account with transaction history and employee
// association populated.
func (s *fsaAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.FSAAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account by ID", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	transactions, err := s.txnRepo.FindTransactionsByAccountID(ctx, accountID)
	if err != nil {
		logger.Error("Failed to fetch transactions for account", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to retrieve transactions for account %s: %w", accountID, err)
	}
	account.Transactions = transactions

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, account.EmployeeID)
	if err != nil {
		logger.Error("Failed to fetch owning employee for account", slog.String("error", err.Error()), slog.String("account_id", accountID), slog.String("employee_id", account.EmployeeID))
		return nil, fmt.Errorf("failed to retrieve employee for account %s: %w", accountID, err)
	}
	account.Employee = employee

	return account, nil
}

// ListAccounts retrieves a paginated list of accounts without history.
func (s *fsaAccountService) ListAccounts(ctx context.Context, limit, offset int) ([]domain.FSAAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.ListAccounts(ctx, limit, offset)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()), slog.Int("limit", limit), slog.Int("offset", offset))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.FSAAccount{}, nil
	}
	return accounts, nil
}

// GetAccountsByEmployeeID returns all of an employee's accounts.
func (s *fsaAccountService) GetAccountsByEmployeeID(ctx context.Context, employeeID string) ([]domain.FSAAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	accounts, err := s.accountRepo.FindAccountsByEmployeeID(ctx, employeeID)
	if err != nil {
		logger.Error("Failed to list accounts for employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to list accounts for employee %s: %w", employeeID, err)
	}
	if accounts == nil {
		return []domain.FSAAccount{}, nil
	}
	return accounts, nil
}

// GetActiveAccountByEmployeeID returns the employee's single active account.
func (s *fsaAccountService) GetActiveAccountByEmployeeID(ctx context.Context, employeeID string) (*domain.FSAAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account, err := s.accountRepo.FindActiveAccountByEmployeeID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find active account for employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		}
		return nil, err
	}
	return account, nil
}

// UpdateStatus performs an administrative transition between active,
// inactive, and suspended. The allocation path only ever reads status; this
// is the one place it changes.
func (s *fsaAccountService) UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus) (*domain.FSAAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := domain.ParseAccountStatus(string(status)); err != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
	}

	now := time.Now()
	if err := s.accountRepo.UpdateAccountStatus(ctx, accountID, status, now); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to update account status", slog.String("error", err.Error()), slog.String("account_id", accountID), slog.String("status", string(status)))
		}
		return nil, err
	}

	logger.Info("Account status updated", slog.String("account_id", accountID), slog.String("status", string(status)))
	return s.GetAccountByID(ctx, accountID)
}
