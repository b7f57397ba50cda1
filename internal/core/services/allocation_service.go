package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/middleware"
	"github.com/jackc/pgx/v5"
)

// allocationService applies ledger mutations against row-locked account rows.
//
// Both operations follow the same shape: validate the amount, open a
// transaction, lock the account, re-validate against the locked (fresh)
// state, write the balance and the ledger entry, commit. The deferred
// rollback covers every failure path, so a half-applied allocation can never
// persist.
type allocationService struct {
	accountRepo portsrepo.AccountRepositoryWithTx
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountSvc  portssvc.FSAAccountSvcFacade
}

// NewAllocationService creates the allocation engine.
func NewAllocationService(accountRepo portsrepo.AccountRepositoryWithTx, txnRepo portsrepo.TransactionRepositoryFacade, accountSvc portssvc.FSAAccountSvcFacade) portssvc.AllocationSvcFacade {
	return &allocationService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		accountSvc:  accountSvc,
	}
}

var _ portssvc.AllocationSvcFacade = (*allocationService)(nil)

// Allocate credits funds into an account and appends the matching approved
// credit transaction as one atomic unit.
func (s *allocationService) Allocate(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.FSAAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: allocation amount must be greater than zero, got %s", apperrors.ErrValidation, amount.String())
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin allocation transaction", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}
	defer s.accountRepo.Rollback(ctx, tx)

	// Validation runs against the locked row, never a stale read: a
	// concurrent allocation on the same account blocks here until the
	// earlier one commits.
	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to lock account for allocation", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.Status != domain.StatusActive {
		return nil, fmt.Errorf("%w: cannot allocate to %s account %s", apperrors.ErrAccountInactive, account.Status, accountID)
	}

	newBalance := account.CurrentBalance.Add(amount)
	if newBalance.GreaterThan(account.AnnualLimit) {
		return nil, &apperrors.LimitExceededError{
			CurrentBalance:  account.CurrentBalance,
			AnnualLimit:     account.AnnualLimit,
			AttemptedAmount: amount,
		}
	}

	if description == "" {
		description = fmt.Sprintf("Allocation of $%s", amount.StringFixed(2))
	}

	now := time.Now()
	if err := s.applyLedgerEntry(ctx, tx, account.AccountID, domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       account.AccountID,
		Amount:          amount,
		TransactionType: domain.Credit,
		Description:     description,
		TransactionDate: now,
		Status:          domain.TxnApproved,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}, func() error {
		return s.accountRepo.UpdateAccountBalanceInTx(ctx, tx, account.AccountID, newBalance, now)
	}); err != nil {
		logger.Error("Failed to apply allocation", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit allocation", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Funds allocated",
		slog.String("account_id", accountID),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("new_balance", newBalance.StringFixed(2)),
	)

	// Return the committed state with history and employee association.
	return s.accountSvc.GetAccountByID(ctx, accountID)
}

// RecordExpense debits spent funds against the account's allocated balance
// and appends the matching approved debit transaction.
func (s *allocationService) RecordExpense(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.FSAAccount, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: expense amount must be greater than zero, got %s", apperrors.ErrValidation, amount.String())
	}

	tx, err := s.accountRepo.Begin(ctx)
	if err != nil {
		logger.Error("Failed to begin expense transaction", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}
	defer s.accountRepo.Rollback(ctx, tx)

	account, err := s.accountRepo.FindAccountByIDForUpdate(ctx, tx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to lock account for expense", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}

	if account.Status != domain.StatusActive {
		return nil, fmt.Errorf("%w: cannot record expense against %s account %s", apperrors.ErrAccountInactive, account.Status, accountID)
	}

	newUsed := account.UsedAmount.Add(amount)
	if newUsed.GreaterThan(account.CurrentBalance) {
		return nil, fmt.Errorf("%w: used %s of %s allocated, expense of %s rejected",
			apperrors.ErrInsufficientFunds,
			account.UsedAmount.StringFixed(2), account.CurrentBalance.StringFixed(2), amount.StringFixed(2))
	}

	if description == "" {
		description = fmt.Sprintf("Expense of $%s", amount.StringFixed(2))
	}

	now := time.Now()
	if err := s.applyLedgerEntry(ctx, tx, account.AccountID, domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       account.AccountID,
		Amount:          amount,
		TransactionType: domain.Debit,
		Description:     description,
		TransactionDate: now,
		Status:          domain.TxnApproved,
		AuditFields:     domain.AuditFields{CreatedAt: now, LastUpdatedAt: now},
	}, func() error {
		return s.accountRepo.UpdateAccountUsedAmountInTx(ctx, tx, account.AccountID, newUsed, now)
	}); err != nil {
		logger.Error("Failed to apply expense", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	if err := s.accountRepo.Commit(ctx, tx); err != nil {
		logger.Error("Failed to commit expense", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	logger.Info("Expense recorded",
		slog.String("account_id", accountID),
		slog.String("amount", amount.StringFixed(2)),
		slog.String("used_amount", newUsed.StringFixed(2)),
	)

	return s.accountSvc.GetAccountByID(ctx, accountID)
}

// applyLedgerEntry runs the account mutation and the transaction insert
// together inside the caller's open database transaction.
func (s *allocationService) applyLedgerEntry(ctx context.Context, tx pgx.Tx, accountID string, txn domain.Transaction, mutate func() error) error {
	if err := mutate(); err != nil {
		return err
	}
	if err := s.txnRepo.SaveTransactionInTx(ctx, tx, txn); err != nil {
		return err
	}
	return nil
}
