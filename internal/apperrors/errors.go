package apperrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAccountInactive indicates an operation requiring an active account was
// attempted against an inactive or suspended one.
var ErrAccountInactive = errors.New("account is not active")

// ErrLimitExceeded indicates an allocation would push the account balance past
// its annual limit. LimitExceededError carries the amounts involved.
var ErrLimitExceeded = errors.New("annual limit exceeded")

// ErrInsufficientFunds indicates an expense would exceed the funds allocated
// into the account.
var ErrInsufficientFunds = errors.New("insufficient allocated funds")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrStorage indicates the underlying store failed to commit an operation.
// The operation was rolled back cleanly, so callers may safely retry it.
var ErrStorage = errors.New("storage failure")

// LimitExceededError reports a rejected allocation together with the figures
// the caller needs to render a precise message.
type LimitExceededError struct {
	CurrentBalance  decimal.Decimal
	AnnualLimit     decimal.Decimal
	AttemptedAmount decimal.Decimal
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("allocation of %s would exceed annual limit: current balance is %s, annual limit is %s",
		e.AttemptedAmount.StringFixed(2), e.CurrentBalance.StringFixed(2), e.AnnualLimit.StringFixed(2))
}

// Unwrap lets errors.Is(err, ErrLimitExceeded) match.
func (e *LimitExceededError) Unwrap() error {
	return ErrLimitExceeded
}
