package services

import (
	"context"
	"errors"
	"strings"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/errs"
	"github.com/finsight/finsight-backend/internal/models"
	"github.com/finsight/finsight-backend/internal/store"
)

type goalStore interface {
	Get(ctx context.Context, id int) (models.SavingsGoal, error)
	ListByUser(ctx context.Context, userID int) ([]models.SavingsGoal, error)
	Create(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error)
	Update(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error)
	Delete(ctx context.Context, id int) (models.SavingsGoal, error)
}

type goalService struct {
	goals goalStore
}

func NewGoalService(goals goalStore) *goalService {
	return &goalService{goals: goals}
}

func (s *goalService) Get(ctx context.Context, id int) (models.SavingsGoal, error) {
	g, err := s.goals.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return g, errs.NewNotFoundError("GOAL_NOT_FOUND", "Savings goal not found")
	}
	return g, err
}

func (s *goalService) List(ctx context.Context, userID int) ([]models.SavingsGoal, error) {
	return s.goals.ListByUser(ctx, userID)
}

func (s *goalService) Create(ctx context.Context, req dto.CreateGoalRequest) (models.SavingsGoal, error) {
	if req.UserID == 0 {
		return models.SavingsGoal{}, errs.NewValidationError("MISSING_USER_ID", "userId is required")
	}
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return models.SavingsGoal{}, errs.NewValidationError("MISSING_TITLE", "title is required")
	}
	if req.TargetAmount == nil {
		return models.SavingsGoal{}, errs.NewValidationError("MISSING_TARGET_AMOUNT",
			"targetAmount is required")
	}
	if *req.TargetAmount <= 0 {
		return models.SavingsGoal{}, errs.NewValidationError("INVALID_TARGET_AMOUNT",
			"targetAmount must be a positive number")
	}
	deadline := strings.TrimSpace(req.Deadline)
	if deadline == "" {
		return models.SavingsGoal{}, errs.NewValidationError("MISSING_DEADLINE", "deadline is required")
	}
	if _, ok := parseDate(deadline); !ok {
		return models.SavingsGoal{}, errs.NewValidationError("INVALID_DEADLINE",
			"deadline must be a valid date (YYYY-MM-DD)")
	}

	g := models.SavingsGoal{
		UserID:       req.UserID,
		Title:        title,
		TargetAmount: *req.TargetAmount,
		Deadline:     deadline,
		Icon:         req.Icon,
	}
	if req.CurrentAmount != nil {
		g.CurrentAmount = clampAmount(*req.CurrentAmount, g.TargetAmount)
	}
	return s.goals.Create(ctx, g)
}

func (s *goalService) Update(ctx context.Context, id int, req dto.UpdateGoalRequest) (models.SavingsGoal, error) {
	g, err := s.goals.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return g, errs.NewNotFoundError("GOAL_NOT_FOUND", "Savings goal not found")
	}
	if err != nil {
		return g, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" {
			return models.SavingsGoal{}, errs.NewValidationError("MISSING_TITLE",
				"title must be a non-empty string")
		}
		g.Title = title
	}
	if req.TargetAmount != nil {
		if *req.TargetAmount <= 0 {
			return models.SavingsGoal{}, errs.NewValidationError("INVALID_TARGET_AMOUNT",
				"targetAmount must be a positive number")
		}
		g.TargetAmount = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		g.CurrentAmount = *req.CurrentAmount
	}
	if req.Deadline != nil {
		deadline := strings.TrimSpace(*req.Deadline)
		if _, ok := parseDate(deadline); !ok {
			return models.SavingsGoal{}, errs.NewValidationError("INVALID_DEADLINE",
				"deadline must be a valid date (YYYY-MM-DD)")
		}
		g.Deadline = deadline
	}
	if req.Icon != nil {
		g.Icon = req.Icon
	}

	// Re-clamp after patching so a lowered target drags current down with it.
	g.CurrentAmount = clampAmount(g.CurrentAmount, g.TargetAmount)

	return s.goals.Update(ctx, g)
}

func (s *goalService) Delete(ctx context.Context, id int) (models.SavingsGoal, error) {
	g, err := s.goals.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return g, errs.NewNotFoundError("GOAL_NOT_FOUND", "Savings goal not found")
	}
	return g, err
}

func clampAmount(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}
