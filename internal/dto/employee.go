package dto

import (
	"time"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
)

// EmployeeResponse mirrors domain.Employee on the wire.
type EmployeeResponse struct {
	EmployeeID     string            `json:"id"`
	FirstName      string            `json:"firstName"`
	LastName       string            `json:"lastName"`
	Email          string            `json:"email"`
	EmployeeNumber string            `json:"employeeNumber"`
	Department     string            `json:"department,omitempty"`
	HireDate       time.Time         `json:"hireDate"`
	CreatedAt      time.Time         `json:"createdAt"`
	LastUpdatedAt  time.Time         `json:"lastUpdatedAt"`
	FSAAccounts    []AccountResponse `json:"fsaAccounts,omitempty"`
}

// ToEmployeeResponse converts a domain.Employee to its DTO.
func ToEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	resp := EmployeeResponse{
		EmployeeID:     emp.EmployeeID,
		FirstName:      emp.FirstName,
		LastName:       emp.LastName,
		Email:          emp.Email,
		EmployeeNumber: emp.EmployeeNumber,
		Department:     emp.Department,
		HireDate:       emp.HireDate,
		CreatedAt:      emp.CreatedAt,
		LastUpdatedAt:  emp.LastUpdatedAt,
	}
	if emp.FSAAccounts != nil {
		resp.FSAAccounts = ToAccountResponses(emp.FSAAccounts)
	}
	return resp
}

// ToEmployeeResponses converts a slice of employees.
func ToEmployeeResponses(emps []domain.Employee) []EmployeeResponse {
	out := make([]EmployeeResponse, len(emps))
	for i := range emps {
		out[i] = ToEmployeeResponse(&emps[i])
	}
	return out
}
