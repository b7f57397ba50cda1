package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	portssvc "github.com/fledgehq/fledge-backend/internal/core/ports/services"
	"github.com/fledgehq/fledge-backend/internal/middleware"
)

// employeeService exposes the employee read surface. Employees are only ever
// created through onboarding (see userService.Signup).
type employeeService struct {
	employeeRepo portsrepo.EmployeeRepositoryFacade
	accountRepo  portsrepo.AccountReader
}

// NewEmployeeService creates the employee reader.
func NewEmployeeService(employeeRepo portsrepo.EmployeeRepositoryFacade, accountRepo portsrepo.AccountReader) portssvc.EmployeeSvcFacade {
	return &employeeService{
		employeeRepo: employeeRepo,
		accountRepo:  accountRepo,
	}
}

var _ portssvc.EmployeeSvcFacade = (*employeeService)(nil)

func (s *employeeService) GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find employee by ID", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		}
		return nil, err
	}

	accounts, err := s.accountRepo.FindAccountsByEmployeeID(ctx, employeeID)
	if err != nil {
		logger.Error("Failed to fetch accounts for employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, fmt.Errorf("failed to fetch accounts for employee %s: %w", employeeID, err)
	}
	employee.FSAAccounts = accounts

	return employee, nil
}

// GetEmployeeWithAccount returns the employee with only their active account
// attached. ErrNotFound when the employee exists but has no active account.
func (s *employeeService) GetEmployeeWithAccount(ctx context.Context, employeeID string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByID(ctx, employeeID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find employee by ID", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		}
		return nil, err
	}

	account, err := s.accountRepo.FindActiveAccountByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: no active FSA account for employee %s", apperrors.ErrNotFound, employeeID)
		}
		logger.Error("Failed to fetch active account for employee", slog.String("error", err.Error()), slog.String("employee_id", employeeID))
		return nil, err
	}
	employee.FSAAccounts = []domain.FSAAccount{*account}

	return employee, nil
}

func (s *employeeService) GetEmployeeByNumber(ctx context.Context, employeeNumber string) (*domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employee, err := s.employeeRepo.FindEmployeeByNumber(ctx, employeeNumber)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find employee by number", slog.String("error", err.Error()), slog.String("employee_number", employeeNumber))
		}
		return nil, err
	}
	return employee, nil
}

func (s *employeeService) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	employees, err := s.employeeRepo.ListEmployees(ctx)
	if err != nil {
		logger.Error("Failed to list employees", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	if employees == nil {
		return []domain.Employee{}, nil
	}
	return employees, nil
}
