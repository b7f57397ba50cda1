package domain

import "time"

// Employee is the benefits-eligible person an FSA account belongs to. An
// employee owns zero or more accounts over time but at most one active
// account per plan year.
type Employee struct {
	EmployeeID     string    `json:"id"`
	FirstName      string    `json:"firstName"`
	LastName       string    `json:"lastName"`
	Email          string    `json:"email"`
	EmployeeNumber string    `json:"employeeNumber"` // external HR identifier
	Department     string    `json:"department,omitempty"`
	HireDate       time.Time `json:"hireDate"`
	AuditFields

	FSAAccounts []FSAAccount `json:"fsaAccounts,omitempty"`
}
