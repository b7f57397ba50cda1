package dto

import (
	"github.com/fledgehq/fledge-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AggregateUsageResponse mirrors domain.AggregateUsage on the wire.
type AggregateUsageResponse struct {
	TotalEmployees         int             `json:"totalEmployees"`
	TotalAnnualLimit       decimal.Decimal `json:"totalAnnualLimit"`
	TotalUsedAmount        decimal.Decimal `json:"totalUsedAmount"`
	TotalRemainingBalance  decimal.Decimal `json:"totalRemainingBalance"`
	AverageUsagePercentage decimal.Decimal `json:"averageUsagePercentage"`
	ActiveAccounts         int             `json:"activeAccounts"`
	InactiveAccounts       int             `json:"inactiveAccounts"`
}

// ToAggregateUsageResponse converts the domain snapshot to its DTO.
func ToAggregateUsageResponse(agg *domain.AggregateUsage) AggregateUsageResponse {
	return AggregateUsageResponse{
		TotalEmployees:         agg.TotalEmployees,
		TotalAnnualLimit:       agg.TotalAnnualLimit,
		TotalUsedAmount:        agg.TotalUsedAmount,
		TotalRemainingBalance:  agg.TotalRemainingBalance,
		AverageUsagePercentage: agg.AverageUsagePercentage,
		ActiveAccounts:         agg.ActiveAccounts,
		InactiveAccounts:       agg.InactiveAccounts,
	}
}
