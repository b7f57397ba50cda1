package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates whether a transaction adds funds to or spends
// funds from an account.
type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

// TransactionStatus is the approval state of a transaction. The ledger core
// writes approved transactions directly; pending/rejected exist for claim
// review flows.
type TransactionStatus string

const (
	TxnPending  TransactionStatus = "pending"
	TxnApproved TransactionStatus = "approved"
	TxnRejected TransactionStatus = "rejected"
)

// Transaction is one append-only ledger entry against an FSA account. It is
// created exactly once, atomically with the account mutation it records, and
// never updated or deleted.
type Transaction struct {
	TransactionID   string            `json:"id"`
	AccountID       string            `json:"fsaAccountId"`
	Amount          decimal.Decimal   `json:"amount"` // always positive
	TransactionType TransactionType   `json:"transactionType"`
	Description     string            `json:"description"`
	TransactionDate time.Time         `json:"transactionDate"`
	Status          TransactionStatus `json:"status"`
	AuditFields
}
