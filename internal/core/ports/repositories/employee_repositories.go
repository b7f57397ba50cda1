package repositories

import (
	"context"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// EmployeeReader defines read operations for employee data.
type EmployeeReader interface {
	// FindEmployeeByID retrieves one employee by primary identifier.
	FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error)

	// FindEmployeeByNumber retrieves one employee by external HR number.
	FindEmployeeByNumber(ctx context.Context, employeeNumber string) (*domain.Employee, error)

	// ListEmployees retrieves every employee, ordered by last name.
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// EmployeeWriter defines write operations for employee data.
type EmployeeWriter interface {
	// SaveEmployeeInTx persists a new employee within an open transaction.
	// Employees are only created during onboarding, which is atomic with the
	// user and account inserts.
	SaveEmployeeInTx(ctx context.Context, tx pgx.Tx, employee domain.Employee) error
}

// EmployeeRepositoryFacade combines the employee interfaces.
type EmployeeRepositoryFacade interface {
	EmployeeReader
	EmployeeWriter
}
