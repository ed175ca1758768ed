package models

import (
	"time"
)

type SavingsGoal struct {
	ID            int       `json:"id"`
	UserID        int       `json:"userId"`
	Title         string    `json:"title"`
	TargetAmount  float64   `json:"targetAmount"`
	CurrentAmount float64   `json:"currentAmount"` // capped at TargetAmount
	Deadline      string    `json:"deadline"`      // YYYY-MM-DD
	Icon          *string   `json:"icon,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Completed reports whether the goal has reached its target. Completed goals
// are excluded from scoring's goal-progress feature.
func (g SavingsGoal) Completed() bool {
	return g.CurrentAmount >= g.TargetAmount
}
