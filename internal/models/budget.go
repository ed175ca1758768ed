package models

import (
	"time"
)

// Budget.Spent is a cache of the current-month debit sum for the category.
// It is overwritten by every reconciliation pass and is never authoritative.
type Budget struct {
	ID          int       `json:"id"`
	UserID      int       `json:"userId"`
	Category    string    `json:"category"`
	LimitAmount float64   `json:"limitAmount"`
	Spent       float64   `json:"spent"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
