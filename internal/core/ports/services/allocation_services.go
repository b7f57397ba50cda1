package services

import (
	"context"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocationSvcFacade is the ledger mutation engine. Both operations run
// their validation and writes against a row-locked account inside one
// database transaction; on any failure nothing is persisted.
type AllocationSvcFacade interface {
	// Allocate credits funds into an account, up to its annual limit, and
	// appends the matching credit transaction. An empty description gets a
	// generated label. Returns the account with full history on success.
	Allocate(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.FSAAccount, error)

	// RecordExpense debits spent funds against the account's allocated
	// balance and appends the matching debit transaction.
	RecordExpense(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.FSAAccount, error)
}
