package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/middleware"
)

var oneHundred = decimal.NewFromInt(100)

// reportingService computes the fleet-wide usage snapshot.
type reportingService struct {
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates the usage aggregator.
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: repo}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// ComputeAggregateUsage folds over every account: totals for limit and used
// amount, active/inactive counts, and the arithmetic mean of per-account
// usage percentages across accounts with a positive limit. The reads take no
// locks; slightly stale figures are fine for a dashboard.
func (s *reportingService) ComputeAggregateUsage(ctx context.Context) (*domain.AggregateUsage, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	totalEmployees, err := s.reportingRepo.CountEmployees(ctx)
	if err != nil {
		logger.Error("Failed to count employees", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	rows, err := s.reportingRepo.ListAccountUsage(ctx)
	if err != nil {
		logger.Error("Failed to load account usage rows", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load account usage: %w", err)
	}

	agg := domain.AggregateUsage{
		TotalEmployees:         totalEmployees,
		TotalAnnualLimit:       decimal.Zero,
		TotalUsedAmount:        decimal.Zero,
		TotalRemainingBalance:  decimal.Zero,
		AverageUsagePercentage: decimal.Zero,
	}

	percentageSum := decimal.Zero
	accountsWithLimit := 0

	for _, row := range rows {
		agg.TotalAnnualLimit = agg.TotalAnnualLimit.Add(row.AnnualLimit)
		agg.TotalUsedAmount = agg.TotalUsedAmount.Add(row.UsedAmount)

		// Any non-active status counts as inactive for the dashboard;
		// suspended is not tracked separately here.
		if row.Status == domain.StatusActive {
			agg.ActiveAccounts++
		} else {
			agg.InactiveAccounts++
		}

		if row.AnnualLimit.IsPositive() {
			percentageSum = percentageSum.Add(row.UsedAmount.Div(row.AnnualLimit).Mul(oneHundred))
			accountsWithLimit++
		}
	}

	agg.TotalRemainingBalance = agg.TotalAnnualLimit.Sub(agg.TotalUsedAmount)

	// Zero accounts with a positive limit means 0%, never NaN.
	if accountsWithLimit > 0 {
		agg.AverageUsagePercentage = percentageSum.Div(decimal.NewFromInt(int64(accountsWithLimit)))
	}

	logger.Debug("Aggregate usage computed",
		slog.Int("total_employees", totalEmployees),
		slog.Int("accounts", len(rows)),
		slog.String("total_limit", agg.TotalAnnualLimit.StringFixed(2)),
	)
	return &agg, nil
}
