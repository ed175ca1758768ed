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

type budgetStore interface {
	Get(ctx context.Context, id int) (models.Budget, error)
	ListByUser(ctx context.Context, userID int) ([]models.Budget, error)
	Create(ctx context.Context, b models.Budget) (models.Budget, error)
	Update(ctx context.Context, b models.Budget) (models.Budget, error)
	Delete(ctx context.Context, id int) (models.Budget, error)
}

type spentCalculator interface {
	SpentFor(ctx context.Context, userID int, category string) (float64, error)
}

type budgetService struct {
	budgets budgetStore
	spent   spentCalculator
}

func NewBudgetService(budgets budgetStore, spent spentCalculator) *budgetService {
	return &budgetService{budgets: budgets, spent: spent}
}

// Get recomputes spent from source transactions; the stored value is only a
// cache.
func (s *budgetService) Get(ctx context.Context, id int) (dto.BudgetView, error) {
	b, err := s.budgets.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return dto.BudgetView{}, errs.NewNotFoundError("BUDGET_NOT_FOUND", "Budget not found")
	}
	if err != nil {
		return dto.BudgetView{}, err
	}

	spent, err := s.spent.SpentFor(ctx, b.UserID, b.Category)
	if err != nil {
		return dto.BudgetView{}, err
	}
	b.Spent = spent
	return budgetView(b), nil
}

func (s *budgetService) List(ctx context.Context, userID int) ([]dto.BudgetView, error) {
	budgets, err := s.budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	views := make([]dto.BudgetView, 0, len(budgets))
	for _, b := range budgets {
		spent, err := s.spent.SpentFor(ctx, userID, b.Category)
		if err != nil {
			return nil, err
		}
		b.Spent = spent
		views = append(views, budgetView(b))
	}
	return views, nil
}

// Create ignores any client-supplied spent and computes it fresh.
func (s *budgetService) Create(ctx context.Context, req dto.CreateBudgetRequest) (dto.BudgetView, error) {
	if req.UserID == 0 {
		return dto.BudgetView{}, errs.NewValidationError("MISSING_USER_ID", "userId is required")
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return dto.BudgetView{}, errs.NewValidationError("MISSING_CATEGORY", "category is required")
	}
	if req.LimitAmount == nil {
		return dto.BudgetView{}, errs.NewValidationError("MISSING_LIMIT_AMOUNT", "limitAmount is required")
	}
	if *req.LimitAmount <= 0 {
		return dto.BudgetView{}, errs.NewValidationError("INVALID_LIMIT_AMOUNT",
			"limitAmount must be a positive number")
	}

	spent, err := s.spent.SpentFor(ctx, req.UserID, category)
	if err != nil {
		return dto.BudgetView{}, err
	}

	created, err := s.budgets.Create(ctx, models.Budget{
		UserID:      req.UserID,
		Category:    category,
		LimitAmount: *req.LimitAmount,
		Spent:       spent,
	})
	if err != nil {
		return dto.BudgetView{}, err
	}
	return budgetView(created), nil
}

// Update patches category and limitAmount only. Spent is deliberately left
// alone; only reconciliation passes rewrite it.
func (s *budgetService) Update(ctx context.Context, id int, req dto.UpdateBudgetRequest) (models.Budget, error) {
	b, err := s.budgets.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return b, errs.NewNotFoundError("BUDGET_NOT_FOUND", "Budget not found")
	}
	if err != nil {
		return b, err
	}

	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		if category == "" {
			return models.Budget{}, errs.NewValidationError("MISSING_CATEGORY",
				"category must be a non-empty string")
		}
		b.Category = category
	}
	if req.LimitAmount != nil {
		if *req.LimitAmount <= 0 {
			return models.Budget{}, errs.NewValidationError("INVALID_LIMIT_AMOUNT",
				"limitAmount must be a positive number")
		}
		b.LimitAmount = *req.LimitAmount
	}

	return s.budgets.Update(ctx, b)
}

func (s *budgetService) Delete(ctx context.Context, id int) (models.Budget, error) {
	b, err := s.budgets.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return b, errs.NewNotFoundError("BUDGET_NOT_FOUND", "Budget not found")
	}
	return b, err
}

// budgetView derives utilization; spent == limit already counts as over.
func budgetView(b models.Budget) dto.BudgetView {
	view := dto.BudgetView{Budget: b, Status: "On Track"}
	if b.LimitAmount <= 0 {
		return view
	}

	pct := b.Spent / b.LimitAmount * 100
	view.Percentage = round2(pct)
	switch {
	case pct >= 100:
		view.Status = "Over Budget"
	case pct >= 80:
		view.Status = "Warning"
	}
	return view
}
