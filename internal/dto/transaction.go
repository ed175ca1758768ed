package dto

import (
	"github.com/finsight/finsight-backend/internal/models"
)

type CreateTransactionRequest struct {
	UserID      int      `json:"userId"`
	Amount      *float64 `json:"amount"`
	Category    string   `json:"category"`
	Merchant    string   `json:"merchant"`
	Date        string   `json:"date"`
	Type        string   `json:"type"`
	Description *string  `json:"description"`
}

type UpdateTransactionRequest struct {
	Amount      *float64 `json:"amount"`
	Category    *string  `json:"category"`
	Merchant    *string  `json:"merchant"`
	Date        *string  `json:"date"`
	Type        *string  `json:"type"`
	Description *string  `json:"description"`
}

type ListTransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

type DeleteTransactionResponse struct {
	Message     string             `json:"message"`
	Transaction models.Transaction `json:"transaction"`
}

// ImportRowError pins a validation failure to its CSV source row. Row numbers
// count the header line as row 1.
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

type ImportResult struct {
	Message       string               `json:"message"`
	BatchID       string               `json:"batchId"`
	Imported      int                  `json:"imported"`
	Errors        []ImportRowError     `json:"errors,omitempty"`
	BalanceChange float64              `json:"balanceChange"`
	NewBalance    float64              `json:"newBalance"`
	Transactions  []models.Transaction `json:"transactions"`
}
