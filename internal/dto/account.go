package dto

import (
	"time"

	"github.com/fledgehq/fledge-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AllocateRequest is the body of POST /fsa-accounts/:id/allocate.
type AllocateRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"` // optional; defaulted when empty
}

// ExpenseRequest is the body of POST /fsa-accounts/:id/expenses.
type ExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description"`
}

// UpdateStatusRequest is the body of PUT /fsa-accounts/:id/status.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive suspended"`
}

// TransactionResponse mirrors domain.Transaction on the wire.
type TransactionResponse struct {
	TransactionID   string          `json:"id"`
	AccountID       string          `json:"fsaAccountId"`
	Amount          decimal.Decimal `json:"amount"`
	TransactionType string          `json:"transactionType"`
	Description     string          `json:"description"`
	TransactionDate time.Time       `json:"transactionDate"`
	Status          string          `json:"status"`
	CreatedAt       time.Time       `json:"createdAt"`
	LastUpdatedAt   time.Time       `json:"lastUpdatedAt"`
}

// AccountResponse mirrors domain.FSAAccount on the wire. Employee and
// Transactions are present only on detail reads.
type AccountResponse struct {
	AccountID      string                `json:"id"`
	EmployeeID     string                `json:"employeeId"`
	AccountType    string                `json:"accountType"`
	AnnualLimit    decimal.Decimal       `json:"annualLimit"`
	CurrentBalance decimal.Decimal       `json:"currentBalance"`
	UsedAmount     decimal.Decimal       `json:"usedAmount"`
	PlanYearStart  time.Time             `json:"planYearStart"`
	PlanYearEnd    time.Time             `json:"planYearEnd"`
	Status         string                `json:"status"`
	CreatedAt      time.Time             `json:"createdAt"`
	LastUpdatedAt  time.Time             `json:"lastUpdatedAt"`
	Employee       *EmployeeResponse     `json:"employee,omitempty"`
	Transactions   []TransactionResponse `json:"transactions,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   txn.TransactionID,
		AccountID:       txn.AccountID,
		Amount:          txn.Amount,
		TransactionType: string(txn.TransactionType),
		Description:     txn.Description,
		TransactionDate: txn.TransactionDate,
		Status:          string(txn.Status),
		CreatedAt:       txn.CreatedAt,
		LastUpdatedAt:   txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return out
}

// ToAccountResponse converts a domain.FSAAccount to its DTO.
func ToAccountResponse(acc *domain.FSAAccount) AccountResponse {
	resp := AccountResponse{
		AccountID:      acc.AccountID,
		EmployeeID:     acc.EmployeeID,
		AccountType:    string(acc.AccountType),
		AnnualLimit:    acc.AnnualLimit,
		CurrentBalance: acc.CurrentBalance,
		UsedAmount:     acc.UsedAmount,
		PlanYearStart:  acc.PlanYearStart,
		PlanYearEnd:    acc.PlanYearEnd,
		Status:         string(acc.Status),
		CreatedAt:      acc.CreatedAt,
		LastUpdatedAt:  acc.LastUpdatedAt,
	}
	if acc.Employee != nil {
		emp := ToEmployeeResponse(acc.Employee)
		resp.Employee = &emp
	}
	if acc.Transactions != nil {
		resp.Transactions = ToTransactionResponses(acc.Transactions)
	}
	return resp
}

// ToAccountResponses converts a slice of accounts.
func ToAccountResponses(accs []domain.FSAAccount) []AccountResponse {
	out := make([]AccountResponse, len(accs))
	for i := range accs {
		out[i] = ToAccountResponse(&accs[i])
	}
	return out
}
