package dto

import (
	"github.com/finsight/finsight-backend/internal/models"
)

type CreateGoalRequest struct {
	UserID        int      `json:"userId"`
	Title         string   `json:"title"`
	TargetAmount  *float64 `json:"targetAmount"`
	CurrentAmount *float64 `json:"currentAmount"`
	Deadline      string   `json:"deadline"`
	Icon          *string  `json:"icon"`
}

type UpdateGoalRequest struct {
	Title         *string  `json:"title"`
	TargetAmount  *float64 `json:"targetAmount"`
	CurrentAmount *float64 `json:"currentAmount"`
	Deadline      *string  `json:"deadline"`
	Icon          *string  `json:"icon"`
}

type ListGoalsResponse struct {
	Goals []models.SavingsGoal `json:"goals"`
}

type DeleteGoalResponse struct {
	Message string             `json:"message"`
	Goal    models.SavingsGoal `json:"goal"`
}
