package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType identifies the kind of benefits account.
type AccountType string

const (
	DCFSA AccountType = "DCFSA"
)

// AccountStatus is the stored lifecycle state of an account.
type AccountStatus string

const (
	StatusActive    AccountStatus = "active"
	StatusInactive  AccountStatus = "inactive"
	StatusSuspended AccountStatus = "suspended"
)

// FSAAccount is the fsa_accounts row shape.
type FSAAccount struct {
	AccountID      string          `db:"account_id"`
	EmployeeID     string          `db:"employee_id"`
	AccountType    AccountType     `db:"account_type"`
	AnnualLimit    decimal.Decimal `db:"annual_limit"`
	CurrentBalance decimal.Decimal `db:"current_balance"`
	UsedAmount     decimal.Decimal `db:"used_amount"`
	PlanYearStart  time.Time       `db:"plan_year_start"`
	PlanYearEnd    time.Time       `db:"plan_year_end"`
	Status         AccountStatus   `db:"status"`
	AuditFields
}
