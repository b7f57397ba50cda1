package pgsql

import (
	"context"
	"errors"

	"github.com/fledgehq/fledge-backend/internal/apperrors"
	"github.com/fledgehq/fledge-backend/internal/core/domain"
	portsrepo "github.com/fledgehq/fledge-backend/internal/core/ports/repositories"
	"github.com/fledgehq/fledge-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const employeeColumns = `employee_id, first_name, last_name, email, employee_number, department, hire_date, created_at, updated_at`

type PgxEmployeeRepository struct {
	BaseRepository
}

// newPgxEmployeeRepository creates a new repository for employee data.
func newPgxEmployeeRepository(pool *pgxpool.Pool) portsrepo.EmployeeRepositoryFacade {
	return &PgxEmployeeRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.EmployeeRepositoryFacade = (*PgxEmployeeRepository)(nil)

func toModelEmployee(d domain.Employee) models.Employee {
	return models.Employee{
		EmployeeID:     d.EmployeeID,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Email:          d.Email,
		EmployeeNumber: d.EmployeeNumber,
		Department:     d.Department,
		HireDate:       d.HireDate,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			LastUpdatedAt: d.LastUpdatedAt,
		},
	}
}

func toDomainEmployee(m models.Employee) domain.Employee {
	return domain.Employee{
		EmployeeID:     m.EmployeeID,
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		EmployeeNumber: m.EmployeeNumber,
		Department:     m.Department,
		HireDate:       m.HireDate,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			LastUpdatedAt: m.LastUpdatedAt,
		},
	}
}

func scanEmployee(r row) (models.Employee, error) {
	var m models.Employee
	err := r.Scan(
		&m.EmployeeID,
		&m.FirstName,
		&m.LastName,
		&m.Email,
		&m.EmployeeNumber,
		&m.Department,
		&m.HireDate,
		&m.CreatedAt,
		&m.LastUpdatedAt,
	)
	return m, err
}

// SaveEmployeeInTx persists a new employee within an open transaction.
func (r *PgxEmployeeRepository) SaveEmployeeInTx(ctx context.Context, tx pgx.Tx, employee domain.Employee) error {
	modelEmp := toModelEmployee(employee)

	query := `
		INSERT INTO employees (` + employeeColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := tx.Exec(ctx, query,
		modelEmp.EmployeeID,
		modelEmp.FirstName,
		modelEmp.LastName,
		modelEmp.Email,
		modelEmp.EmployeeNumber,
		modelEmp.Department,
		modelEmp.HireDate,
		modelEmp.CreatedAt,
		modelEmp.LastUpdatedAt,
	)
	if err != nil {
		return storageError("failed to save employee "+modelEmp.EmployeeID, err)
	}
	return nil
}

// FindEmployeeByID retrieves one employee by primary identifier.
func (r *PgxEmployeeRepository) FindEmployeeByID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = $1;`

	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storageError("failed to find employee by ID "+employeeID, err)
	}

	emp := toDomainEmployee(m)
	return &emp, nil
}

// FindEmployeeByNumber retrieves one employee by external HR number.
func (r *PgxEmployeeRepository) FindEmployeeByNumber(ctx context.Context, employeeNumber string) (*domain.Employee, error) {
	query := `SELECT ` + employeeColumns + ` FROM employees WHERE employee_number = $1;`

	m, err := scanEmployee(r.Pool.QueryRow(ctx, query, employeeNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, storageError("failed to find employee by number "+employeeNumber, err)
	}

	emp := toDomainEmployee(m)
	return &emp, nil
}

// ListEmployees retrieves every employee, ordered by last name.
func (r *PgxEmployeeRepository) ListEmployees(ctx context.Context) ([]domain.Employee, error) {
	query := `
		SELECT ` + employeeColumns + `
		FROM employees
		ORDER BY last_name, first_name;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, storageError("failed to query employees", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	for rows.Next() {
		m, err := scanEmployee(rows)
		if err != nil {
			return nil, storageError("failed to scan employee row", err)
		}
		employees = append(employees, toDomainEmployee(m))
	}
	if err := rows.Err(); err != nil {
		return nil, storageError("error iterating employee rows", err)
	}

	return employees, nil
}
