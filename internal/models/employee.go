package models

import "time"

// Employee is the employees row shape.
type Employee struct {
	EmployeeID     string    `db:"employee_id"`
	FirstName      string    `db:"first_name"`
	LastName       string    `db:"last_name"`
	Email          string    `db:"email"`
	EmployeeNumber string    `db:"employee_number"`
	Department     string    `db:"department"` // nullable
	HireDate       time.Time `db:"hire_date"`
	AuditFields
}
