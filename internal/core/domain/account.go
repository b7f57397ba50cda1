package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies the kind of benefits account. Only DCFSA exists
// today; the type leaves room for other FSA variants.
type AccountType string

const (
	DCFSA AccountType = "DCFSA"
)

// AccountStatus is the lifecycle state of an FSA account. Only active
// accounts accept allocations and expenses.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusInactive  AccountStatus = "inactive"
	StatusSuspended AccountStatus = "suspended"
)

// ParseAccountStatus validates a raw status string.
func ParseAccountStatus(s string) (AccountStatus, error) {
	switch AccountStatus(s) {
	case StatusActive, StatusInactive, StatusSuspended:
		return AccountStatus(s), nil
	default:
		return "", fmt.Errorf("unknown account status %q", s)
	}
}

// FSAAccount represents a flexible spending account for one plan year.
//
// CurrentBalance is the total allocated into the account to date, not
// spendable funds; UsedAmount tracks what has actually been spent. The
// allocation path checks headroom against CurrentBalance, the expense path
// checks against UsedAmount. The two are deliberately not reconciled here.
type FSAAccount struct {
	AccountID      string          `json:"id"`
	EmployeeID     string          `json:"employeeId"`
	AccountType    AccountType     `json:"accountType"`
	AnnualLimit    decimal.Decimal `json:"annualLimit"`
	CurrentBalance decimal.Decimal `json:"currentBalance"`
	UsedAmount     decimal.Decimal `json:"usedAmount"`
	PlanYearStart  time.Time       `json:"planYearStart"`
	PlanYearEnd    time.Time       `json:"planYearEnd"`
	Status         AccountStatus   `json:"status"`
	AuditFields

	// Populated on detail reads, nil otherwise.
	Employee     *Employee     `json:"employee,omitempty"`
	Transactions []Transaction `json:"transactions,omitempty"`
}

// RemainingAllocatable is the headroom left for new allocations.
func (a *FSAAccount) RemainingAllocatable() decimal.Decimal {
	return a.AnnualLimit.Sub(a.CurrentBalance)
}

// PlanYearBounds returns the calendar-year plan window containing now,
// January 1 through December 31 in now's location.
func PlanYearBounds(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	end = time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
	return start, end
}
