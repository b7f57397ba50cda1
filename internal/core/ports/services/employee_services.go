package services

import (
	"context"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
)

// EmployeeSvcFacade exposes the employee read surface.
type EmployeeSvcFacade interface {
	GetEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// GetEmployeeWithAccount returns the employee together with their active
	// FSA account; ErrNotFound if the employee has no account.
	GetEmployeeWithAccount(ctx context.Context, employeeID string) (*domain.Employee, error)

	GetEmployeeByNumber(ctx context.Context, employeeNumber string) (*domain.Employee, error)

	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}
