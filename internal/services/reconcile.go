package services

import (
	"context"
	"time"

	"github.com/finsight/finsight-backend/internal/models"
)

type reconcilerBudgetStore interface {
	ListByUser(ctx context.Context, userID int) ([]models.Budget, error)
	UpdateSpent(ctx context.Context, id int, spent float64) error
}

type reconcilerTransactionStore interface {
	ListDebitsBetween(ctx context.Context, userID int, from, to string) ([]models.Transaction, error)
}

// budgetReconciler rebuilds every budget's cached spent value from the
// current calendar month's debit transactions. It runs synchronously after
// each transaction mutation for the owning user; callers treat failures as
// fire-and-log, never as request failures.
type budgetReconciler struct {
	budgets  reconcilerBudgetStore
	txs      reconcilerTransactionStore
	clockNow func() time.Time
}

func NewBudgetReconciler(budgets reconcilerBudgetStore, txs reconcilerTransactionStore) *budgetReconciler {
	return &budgetReconciler{
		budgets:  budgets,
		txs:      txs,
		clockNow: time.Now,
	}
}

func (r *budgetReconciler) Recalculate(ctx context.Context, userID int) error {
	budgets, err := r.budgets.ListByUser(ctx, userID)
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		return nil
	}

	perCategory, err := r.monthCategorySums(ctx, userID)
	if err != nil {
		return err
	}

	for _, b := range budgets {
		// Exact, case-sensitive category match; absent categories reset to 0.
		if err := r.budgets.UpdateSpent(ctx, b.ID, round2(perCategory[b.Category])); err != nil {
			return err
		}
	}
	return nil
}

// SpentFor computes the current-month debit sum for a single category
// without writing anything.
func (r *budgetReconciler) SpentFor(ctx context.Context, userID int, category string) (float64, error) {
	perCategory, err := r.monthCategorySums(ctx, userID)
	if err != nil {
		return 0, err
	}
	return round2(perCategory[category]), nil
}

func (r *budgetReconciler) monthCategorySums(ctx context.Context, userID int) (map[string]float64, error) {
	from, to := monthBounds(r.clockNow())
	debits, err := r.txs.ListDebitsBetween(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	perCategory := map[string]float64{}
	for _, t := range debits {
		perCategory[t.Category] += t.Amount
	}
	return perCategory, nil
}
