package domain

import "github.com/shopspring/decimal"

// AggregateUsage is the fleet-wide usage snapshot the admin dashboard renders.
// It is derived on demand from current account rows and has no lifecycle of
// its own.
type AggregateUsage struct {
	TotalEmployees        int             `json:"totalEmployees"`
	TotalAnnualLimit      decimal.Decimal `json:"totalAnnualLimit"`
	TotalUsedAmount       decimal.Decimal `json:"totalUsedAmount"`
	TotalRemainingBalance decimal.Decimal `json:"totalRemainingBalance"`
	// Arithmetic mean of per-account usage percentages across accounts with a
	// positive limit; zero when no such account exists.
	AverageUsagePercentage decimal.Decimal `json:"averageUsagePercentage"`
	ActiveAccounts         int             `json:"activeAccounts"`
	InactiveAccounts       int             `json:"inactiveAccounts"`
}

// AccountUsageRow is the per-account slice of data the aggregator folds over.
type AccountUsageRow struct {
	AccountID   string
	AnnualLimit decimal.Decimal
	UsedAmount  decimal.Decimal
	Status      AccountStatus
}
