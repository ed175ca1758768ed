package dto

import (
	"github.com/finsight/finsight-backend/internal/models"
)

type CreateBudgetRequest struct {
	UserID      int      `json:"userId"`
	Category    string   `json:"category"`
	LimitAmount *float64 `json:"limitAmount"`
	// Spent is accepted but ignored; the server always recomputes it.
	Spent *float64 `json:"spent"`
}

type UpdateBudgetRequest struct {
	Category    *string  `json:"category"`
	LimitAmount *float64 `json:"limitAmount"`
}

// BudgetView decorates a budget row with the derived utilization fields the
// dashboard renders.
type BudgetView struct {
	models.Budget
	Percentage float64 `json:"percentage"`
	Status     string  `json:"status"`
}

type ListBudgetsResponse struct {
	Budgets []BudgetView `json:"budgets"`
}

type DeleteBudgetResponse struct {
	Message string        `json:"message"`
	Budget  models.Budget `json:"budget"`
}
