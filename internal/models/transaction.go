package models

import (
	"time"
)

type TransactionType string

const (
	TypeDebit  TransactionType = "debit"
	TypeCredit TransactionType = "credit"
)

// IncomeCategory is tracked through credit totals, never as a spending
// category in breakdowns.
const IncomeCategory = "Income"

type Transaction struct {
	ID          int             `json:"id"`
	UserID      int             `json:"userId"`
	Amount      float64         `json:"amount"` // always positive; direction is Type
	Category    string          `json:"category"`
	Merchant    string          `json:"merchant"`
	Date        string          `json:"date"` // YYYY-MM-DD
	Type        TransactionType `json:"type"`
	Description *string         `json:"description,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
}
