package services_test

import (
	"context"
	"testing"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockRepo *MockReportingRepository
	service  portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockRepo)
}

func usageRow(limit, used int64, status domain.AccountStatus) domain.AccountUsageRow {
	return domain.AccountUsageRow{
		AccountID:   uuid.NewString(),
		AnnualLimit: decimal.NewFromInt(limit),
		UsedAmount:  decimal.NewFromInt(used),
		Status:      status,
	}
}

func (suite *ReportingServiceTestSuite) TestComputeAggregateUsage() {
	ctx := context.Background()

	// Three accounts: 50% usage, 25% usage, and a zero-limit account that
	// must not drag the average down.
	rows := []domain.AccountUsageRow{
		usageRow(100, 50, domain.StatusActive),
		usageRow(200, 50, domain.StatusActive),
		usageRow(0, 0, domain.StatusInactive),
	}

	suite.mockRepo.On("CountEmployees", ctx).Return(3, nil).Once()
	suite.mockRepo.On("ListAccountUsage", ctx).Return(rows, nil).Once()

	agg, err := suite.service.ComputeAggregateUsage(ctx)

	suite.Require().NoError(err)
	suite.Equal(3, agg.TotalEmployees)
	suite.True(agg.TotalAnnualLimit.Equal(decimal.NewFromInt(300)), "total limit: %s", agg.TotalAnnualLimit)
	suite.True(agg.TotalUsedAmount.Equal(decimal.NewFromInt(100)), "total used: %s", agg.TotalUsedAmount)
	suite.True(agg.TotalRemainingBalance.Equal(decimal.NewFromInt(200)), "remaining: %s", agg.TotalRemainingBalance)
	// Mean of 50% and 25%.
	suite.True(agg.AverageUsagePercentage.Equal(decimal.NewFromFloat(37.5)), "avg: %s", agg.AverageUsagePercentage)
	suite.Equal(2, agg.ActiveAccounts)
	suite.Equal(1, agg.InactiveAccounts)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *ReportingServiceTestSuite) TestComputeAggregateUsage_NoAccounts() {
	ctx := context.Background()

	suite.mockRepo.On("CountEmployees", ctx).Return(0, nil).Once()
	suite.mockRepo.On("ListAccountUsage", ctx).Return([]domain.AccountUsageRow{}, nil).Once()

	agg, err := suite.service.ComputeAggregateUsage(ctx)

	suite.Require().NoError(err)
	suite.Equal(0, agg.TotalEmployees)
	suite.True(agg.TotalAnnualLimit.IsZero())
	suite.True(agg.AverageUsagePercentage.IsZero(), "empty fleet yields 0%%, not NaN")
	suite.Equal(0, agg.ActiveAccounts)
	suite.Equal(0, agg.InactiveAccounts)
}

func (suite *ReportingServiceTestSuite) TestComputeAggregateUsage_SuspendedCountsAsInactive() {
	ctx := context.Background()

	rows := []domain.AccountUsageRow{
		usageRow(100, 100, domain.StatusSuspended),
		usageRow(100, 0, domain.StatusActive),
	}

	suite.mockRepo.On("CountEmployees", ctx).Return(2, nil).Once()
	suite.mockRepo.On("ListAccountUsage", ctx).Return(rows, nil).Once()

	agg, err := suite.service.ComputeAggregateUsage(ctx)

	suite.Require().NoError(err)
	suite.Equal(1, agg.ActiveAccounts)
	suite.Equal(1, agg.InactiveAccounts)
	// Suspended accounts still contribute to the totals and the average.
	suite.True(agg.TotalUsedAmount.Equal(decimal.NewFromInt(100)))
	suite.True(agg.AverageUsagePercentage.Equal(decimal.NewFromInt(50)), "avg: %s", agg.AverageUsagePercentage)
}

func (suite *ReportingServiceTestSuite) TestComputeAggregateUsage_RepoError() {
	ctx := context.Background()

	suite.mockRepo.On("CountEmployees", ctx).Return(0, assert.AnError).Once()

	agg, err := suite.service.ComputeAggregateUsage(ctx)

	suite.Require().Error(err)
	suite.Nil(agg)
	suite.ErrorIs(err, assert.AnError)
	suite.mockRepo.AssertNotCalled(suite.T(), "ListAccountUsage", ctx)
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
