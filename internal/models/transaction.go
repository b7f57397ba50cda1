package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType distinguishes funds added from funds spent.
type TransactionType string

const (
	Credit TransactionType = "credit"
	Debit  TransactionType = "debit"
)

// TransactionStatus is the stored approval state of a transaction.
type TransactionStatus string

const (
	TxnPending  TransactionStatus = "pending"
	TxnApproved TransactionStatus = "approved"
	TxnRejected TransactionStatus = "rejected"
)

// Transaction is the transactions row shape. Rows are append-only.
type Transaction struct {
	TransactionID   string            `db:"transaction_id"`
	AccountID       string            `db:"fsa_account_id"`
	Amount          decimal.Decimal   `db:"amount"`
	TransactionType TransactionType   `db:"transaction_type"`
	Description     string            `db:"description"`
	TransactionDate time.Time         `db:"transaction_date"`
	Status          TransactionStatus `db:"status"`
	AuditFields
}
