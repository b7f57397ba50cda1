package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type FSAAccountServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockTxnRepo      *MockTransactionRepository
	mockEmployeeRepo *MockEmployeeRepository
	service          portssvc.FSAAccountSvcFacade
}

func (suite *FSAAccountServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockEmployeeRepo = new(MockEmployeeRepository)
	suite.service = services.NewFSAAccountService(
		suite.mockAccountRepo,
		suite.mockTxnRepo,
		suite.mockEmployeeRepo,
		decimal.NewFromInt(5000),
	)
}

// --- Test Cases ---

func (suite *FSAAccountServiceTestSuite) TestCreateAccountInTx_Success() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	now := time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindActiveAccountByEmployeeID", ctx, employeeID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockAccountRepo.On("SaveAccountInTx", ctx, nil, mock.AnythingOfType("domain.FSAAccount")).Return(nil).Once()

	account, err := suite.service.CreateAccountInTx(ctx, nil, employeeID, now)

	suite.Require().NoError(err)
	suite.Require().NotNil(account)
	suite.NotEmpty(account.AccountID)
	suite.Equal(employeeID, account.EmployeeID)
	suite.Equal(domain.DCFSA, account.AccountType)
	suite.Equal(domain.StatusActive, account.Status)
	suite.True(account.AnnualLimit.Equal(decimal.NewFromInt(5000)))
	suite.True(account.CurrentBalance.IsZero())
	suite.True(account.UsedAmount.IsZero())

	// Plan year spans the calendar year of the creation instant.
	suite.Equal(2026, account.PlanYearStart.Year())
	suite.Equal(time.January, account.PlanYearStart.Month())
	suite.Equal(1, account.PlanYearStart.Day())
	suite.Equal(2026, account.PlanYearEnd.Year())
	suite.Equal(time.December, account.PlanYearEnd.Month())
	suite.Equal(31, account.PlanYearEnd.Day())

	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *FSAAccountServiceTestSuite) TestCreateAccountInTx_DuplicateActiveAccount() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	existing := &domain.FSAAccount{AccountID: uuid.NewString(), EmployeeID: employeeID, Status: domain.StatusActive}

	suite.mockAccountRepo.On("FindActiveAccountByEmployeeID", ctx, employeeID).Return(existing, nil).Once()

	account, err := suite.service.CreateAccountInTx(ctx, nil, employeeID, time.Now())

	suite.Require().Error(err)
	suite.Nil(account)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "SaveAccountInTx", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FSAAccountServiceTestSuite) TestGetAccountByID_Success() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	accountID := uuid.NewString()

	account := &domain.FSAAccount{AccountID: accountID, EmployeeID: employeeID, Status: domain.StatusActive}
	txns := []domain.Transaction{{TransactionID: uuid.NewString(), AccountID: accountID}}
	employee := &domain.Employee{EmployeeID: employeeID, FirstName: "Dana", LastName: "Okafor"}

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountID", ctx, accountID).Return(txns, nil).Once()
	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, employeeID).Return(employee, nil).Once()

	result, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Len(result.Transactions, 1)
	suite.Require().NotNil(result.Employee)
	suite.Equal("Dana", result.Employee.FirstName)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *FSAAccountServiceTestSuite) TestGetAccountByID_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.GetAccountByID(ctx, accountID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionsByAccountID", mock.Anything, mock.Anything)
}

func (suite *FSAAccountServiceTestSuite) TestListAccounts_EmptyResult() {
	ctx := context.Background()

	suite.mockAccountRepo.On("ListAccounts", ctx, 20, 0).Return(nil, nil).Once()

	accounts, err := suite.service.ListAccounts(ctx, 20, 0)

	suite.Require().NoError(err)
	suite.NotNil(accounts)
	suite.Empty(accounts)
}

func (suite *FSAAccountServiceTestSuite) TestUpdateStatus_Success() {
	ctx := context.Background()
	employeeID := uuid.NewString()
	accountID := uuid.NewString()
	updated := &domain.FSAAccount{AccountID: accountID, EmployeeID: employeeID, Status: domain.StatusInactive}

	suite.mockAccountRepo.On("UpdateAccountStatus", ctx, accountID, domain.StatusInactive, mock.AnythingOfType("time.Time")).Return(nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(updated, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountID", ctx, accountID).Return([]domain.Transaction{}, nil).Once()
	suite.mockEmployeeRepo.On("FindEmployeeByID", ctx, employeeID).Return(&domain.Employee{EmployeeID: employeeID}, nil).Once()

	result, err := suite.service.UpdateStatus(ctx, accountID, domain.StatusInactive)

	suite.Require().NoError(err)
	suite.Equal(domain.StatusInactive, result.Status)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *FSAAccountServiceTestSuite) TestUpdateStatus_InvalidStatus() {
	ctx := context.Background()

	result, err := suite.service.UpdateStatus(ctx, uuid.NewString(), domain.AccountStatus("archived"))

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountStatus",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FSAAccountServiceTestSuite) TestUpdateStatus_NotFound() {
	ctx := context.Background()
	accountID := uuid.NewString()

	suite.mockAccountRepo.On("UpdateAccountStatus", ctx, accountID, domain.StatusSuspended, mock.AnythingOfType("time.Time")).
		Return(apperrors.ErrNotFound).Once()

	result, err := suite.service.UpdateStatus(ctx, accountID, domain.StatusSuspended)

	suite.Require().Error(err)
	suite.Nil(result)
	assert.ErrorIs(suite.T(), err, apperrors.ErrNotFound)
}

func TestFSAAccountServiceTestSuite(t *testing.T) {
	suite.Run(t, new(FSAAccountServiceTestSuite))
}
