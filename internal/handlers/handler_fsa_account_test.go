package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/dto"
	"github.com/fledgehq/fledge-backend/internal/handlers"
	"github.com/fledgehq/fledge-backend/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

const testBearerToken = "test-token"

// --- Mock AllocationService ---

type MockAllocationService struct {
	mock.Mock
}

func (m *MockAllocationService) Allocate(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.FSAAccount, error) {
	args := m.Called(ctx, accountID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FSAAccount), args.Error(1)
}

func (m *MockAllocationService) RecordExpense(ctx context.Context, accountID string, amount decimal.Decimal, description string) (*domain.FSAAccount, error) {
	args := m.Called(ctx, accountID, amount, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FSAAccount), args.Error(1)
}

var _ portssvc.AllocationSvcFacade = (*MockAllocationService)(nil)

// --- Mock FSAAccountService ---

type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) CreateAccountInTx(ctx context.Context, tx pgx.Tx, employeeID string, now time.Time) (*domain.FSAAccount, error) {
	args := m.Called(ctx, tx, employeeID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FSAAccount), args.Error(1)
}

func (m *MockAccountService) GetAccountByID(ctx context.Context, accountID string) (*domain.FSAAccount, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FSAAccount), args.Error(1)
}

func (m *MockAccountService) ListAccounts(ctx context.Context, limit, offset int) ([]domain.FSAAccount, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FSAAccount), args.Error(1)
}

func (m *MockAccountService) GetAccountsByEmployeeID(ctx context.Context, employeeID string) ([]domain.FSAAccount, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FSAAccount), args.Error(1)
}

func (m *MockAccountService) GetActiveAccountByEmployeeID(ctx context.Context, employeeID string) (*domain.FSAAccount, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FSAAccount), args.Error(1)
}

func (m *MockAccountService) UpdateStatus(ctx context.Context, accountID string, status domain.AccountStatus) (*domain.FSAAccount, error) {
	args := m.Called(ctx, accountID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FSAAccount), args.Error(1)
}

var _ portssvc.FSAAccountSvcFacade = (*MockAccountService)(nil)

// --- Mock EmployeeService ---

type MockEmployeeService struct {
	mock.Mock
}

func (m *MockEmployeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) GetEmployeeWithAccount(ctx context.Context, employeeID string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) GetEmployeeByNumber(ctx context.Context, employeeNumber string) (*domain.Employee, error) {
	args := m.Called(ctx, employeeNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

func (m *MockEmployeeService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Employee), args.Error(1)
}

var _ portssvc.EmployeeSvcFacade = (*MockEmployeeService)(nil)

// --- Mock ReportingService ---

type MockReportingService struct {
	mock.Mock
}

func (m *MockReportingService) ComputeAggregateUsage(ctx context.Context) (*domain.AggregateUsage, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AggregateUsage), args.Error(1)
}

var _ portssvc.ReportingSvcFacade = (*MockReportingService)(nil)

// --- Mock AuthService ---

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Signup(ctx context.Context, req dto.SignupRequest) (*domain.User, *domain.AccessToken, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	var token *domain.AccessToken
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	if args.Get(1) != nil {
		token = args.Get(1).(*domain.AccessToken)
	}
	return user, token, args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, req dto.LoginRequest) (*domain.User, *domain.AccessToken, error) {
	args := m.Called(ctx, req)
	var user *domain.User
	var token *domain.AccessToken
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	if args.Get(1) != nil {
		token = args.Get(1).(*domain.AccessToken)
	}
	return user, token, args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *MockAuthService) ValidateToken(ctx context.Context, token string) (string, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Error(1)
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Test Suite Setup ---

type FSAAccountHandlerTestSuite struct {
	suite.Suite
	router         *gin.Engine
	mockAllocation *MockAllocationService
	mockAccount    *MockAccountService
	mockEmployee   *MockEmployeeService
	mockReporting  *MockReportingService
	mockAuth       *MockAuthService
	testUserID     string
}

func (suite *FSAAccountHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	suite.mockAllocation = new(MockAllocationService)
	suite.mockAccount = new(MockAccountService)
	suite.mockEmployee = new(MockEmployeeService)
	suite.mockReporting = new(MockReportingService)
	suite.mockAuth = new(MockAuthService)
	suite.testUserID = uuid.NewString()

	// The auth middleware resolves the shared test token on every request.
	suite.mockAuth.On("ValidateToken", mock.Anything, testBearerToken).Return(suite.testUserID, nil).Maybe()

	container := &portssvc.ServiceContainer{
		Allocation: suite.mockAllocation,
		Account:    suite.mockAccount,
		Employee:   suite.mockEmployee,
		Reporting:  suite.mockReporting,
		Auth:       suite.mockAuth,
	}

	cfg := &config.Config{IsProduction: true} // no swagger wiring in tests

	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, cfg, container, nil)
}

func (suite *FSAAccountHandlerTestSuite) doRequest(method, path string, body any, authed bool) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+testBearerToken)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *FSAAccountHandlerTestSuite) TestAllocate_Success() {
	accountID := uuid.NewString()
	amount := decimal.NewFromInt(250)
	account := &domain.FSAAccount{
		AccountID:      accountID,
		AccountType:    domain.DCFSA,
		AnnualLimit:    decimal.NewFromInt(5000),
		CurrentBalance: amount,
		UsedAmount:     decimal.Zero,
		Status:         domain.StatusActive,
	}

	suite.mockAllocation.On("Allocate", mock.Anything, accountID,
		mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(amount) }), "").
		Return(account, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/fsa-accounts/"+accountID+"/allocate",
		dto.AllocateRequest{Amount: amount}, true)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AccountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(accountID, resp.AccountID)
	suite.True(resp.CurrentBalance.Equal(amount))
	suite.mockAllocation.AssertExpectations(suite.T())
}

func (suite *FSAAccountHandlerTestSuite) TestAllocate_LimitExceeded() {
	accountID := uuid.NewString()

	limitErr := &apperrors.LimitExceededError{
		CurrentBalance:  decimal.NewFromInt(4900),
		AnnualLimit:     decimal.NewFromInt(5000),
		AttemptedAmount: decimal.NewFromInt(200),
	}
	suite.mockAllocation.On("Allocate", mock.Anything, accountID, mock.Anything, "").
		Return(nil, limitErr).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/fsa-accounts/"+accountID+"/allocate",
		dto.AllocateRequest{Amount: decimal.NewFromInt(200)}, true)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)

	var body map[string]json.RawMessage
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Contains(body, "error")
	suite.Contains(body, "currentBalance")
	suite.Contains(body, "annualLimit")
	suite.Contains(body, "attemptedAmount")
}

func (suite *FSAAccountHandlerTestSuite) TestAllocate_ValidationError() {
	accountID := uuid.NewString()

	suite.mockAllocation.On("Allocate", mock.Anything, accountID, mock.Anything, "").
		Return(nil, fmt.Errorf("%w: allocation amount must be greater than zero", apperrors.ErrValidation)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/fsa-accounts/"+accountID+"/allocate",
		dto.AllocateRequest{Amount: decimal.NewFromInt(-5)}, true)

	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *FSAAccountHandlerTestSuite) TestAllocate_NotFound() {
	accountID := uuid.NewString()

	suite.mockAllocation.On("Allocate", mock.Anything, accountID, mock.Anything, "").
		Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/fsa-accounts/"+accountID+"/allocate",
		dto.AllocateRequest{Amount: decimal.NewFromInt(10)}, true)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *FSAAccountHandlerTestSuite) TestAllocate_InactiveAccount() {
	accountID := uuid.NewString()

	suite.mockAllocation.On("Allocate", mock.Anything, accountID, mock.Anything, "").
		Return(nil, fmt.Errorf("%w: cannot allocate to suspended account", apperrors.ErrAccountInactive)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/fsa-accounts/"+accountID+"/allocate",
		dto.AllocateRequest{Amount: decimal.NewFromInt(10)}, true)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *FSAAccountHandlerTestSuite) TestAllocate_MissingToken() {
	w := suite.doRequest(http.MethodPost, "/api/v1/fsa-accounts/"+uuid.NewString()+"/allocate",
		dto.AllocateRequest{Amount: decimal.NewFromInt(10)}, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockAllocation.AssertNotCalled(suite.T(), "Allocate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FSAAccountHandlerTestSuite) TestRecordExpense_InsufficientFunds() {
	accountID := uuid.NewString()

	suite.mockAllocation.On("RecordExpense", mock.Anything, accountID, mock.Anything, "").
		Return(nil, fmt.Errorf("%w: used 150.00 of 200.00 allocated", apperrors.ErrInsufficientFunds)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/fsa-accounts/"+accountID+"/expenses",
		dto.ExpenseRequest{Amount: decimal.NewFromInt(100)}, true)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *FSAAccountHandlerTestSuite) TestGetAccount_NotFound() {
	accountID := uuid.NewString()

	suite.mockAccount.On("GetAccountByID", mock.Anything, accountID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/fsa-accounts/"+accountID, nil, true)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *FSAAccountHandlerTestSuite) TestUpdateStatus_RejectsUnknownValue() {
	accountID := uuid.NewString()

	// Binding rejects the value before the service is reached.
	w := suite.doRequest(http.MethodPut, "/api/v1/fsa-accounts/"+accountID+"/status",
		map[string]string{"status": "archived"}, true)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockAccount.AssertNotCalled(suite.T(), "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *FSAAccountHandlerTestSuite) TestAggregateUsage() {
	agg := &domain.AggregateUsage{
		TotalEmployees:         2,
		TotalAnnualLimit:       decimal.NewFromInt(10000),
		TotalUsedAmount:        decimal.NewFromInt(2500),
		TotalRemainingBalance:  decimal.NewFromInt(7500),
		AverageUsagePercentage: decimal.NewFromInt(25),
		ActiveAccounts:         2,
	}
	suite.mockReporting.On("ComputeAggregateUsage", mock.Anything).Return(agg, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/employees/aggregate/usage", nil, true)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AggregateUsageResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(2, resp.TotalEmployees)
	suite.True(resp.AverageUsagePercentage.Equal(decimal.NewFromInt(25)))
}

func (suite *FSAAccountHandlerTestSuite) TestSignup_Created() {
	req := dto.SignupRequest{
		Email:          "dana.okafor@example.com",
		Password:       "correct-horse-battery",
		FirstName:      "Dana",
		LastName:       "Okafor",
		EmployeeNumber: "EMP-1042",
	}
	user := &domain.User{UserID: uuid.NewString(), Email: req.Email, Role: domain.RoleEmployee, IsActive: true}
	token := &domain.AccessToken{TokenID: uuid.NewString(), UserID: user.UserID, Token: "issued-token", ExpiresAt: time.Now().Add(24 * time.Hour)}

	suite.mockAuth.On("Signup", mock.Anything, mock.AnythingOfType("dto.SignupRequest")).Return(user, token, nil).Once()

	// Signup needs no bearer token.
	w := suite.doRequest(http.MethodPost, "/api/v1/auth/signup", req, false)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AuthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("issued-token", resp.AccessToken)
	suite.Equal(user.UserID, resp.User.UserID)
}

func (suite *FSAAccountHandlerTestSuite) TestSignup_DuplicateEmail() {
	req := dto.SignupRequest{
		Email:          "dana.okafor@example.com",
		Password:       "correct-horse-battery",
		FirstName:      "Dana",
		LastName:       "Okafor",
		EmployeeNumber: "EMP-1042",
	}

	suite.mockAuth.On("Signup", mock.Anything, mock.AnythingOfType("dto.SignupRequest")).
		Return(nil, nil, fmt.Errorf("%w: user with email %s already exists", apperrors.ErrDuplicate, req.Email)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/auth/signup", req, false)

	suite.Equal(http.StatusConflict, w.Code)
}

func (suite *FSAAccountHandlerTestSuite) TestLogin_InvalidCredentials() {
	suite.mockAuth.On("Login", mock.Anything, mock.AnythingOfType("dto.LoginRequest")).
		Return(nil, nil, fmt.Errorf("%w: invalid email or password", apperrors.ErrUnauthorized)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/auth/login",
		dto.LoginRequest{Email: "dana.okafor@example.com", Password: "wrong"}, false)

	suite.Equal(http.StatusUnauthorized, w.Code)
}

func TestFSAAccountHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(FSAAccountHandlerTestSuite))
}
