package services

import (
	"context"
	"errors"
	"testing"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/errs"
	"github.com/finsight/finsight-backend/internal/models"
	"github.com/finsight/finsight-backend/internal/store"
	"github.com/finsight/finsight-backend/pkg/helpers"
)

type fakeBudgetStore struct {
	byID map[int]models.Budget

	created models.Budget
	updated models.Budget
}

func newFakeBudgetStore() *fakeBudgetStore {
	return &fakeBudgetStore{byID: map[int]models.Budget{}}
}

func (f *fakeBudgetStore) Get(ctx context.Context, id int) (models.Budget, error) {
	b, ok := f.byID[id]
	if !ok {
		return models.Budget{}, store.ErrNotFound
	}
	return b, nil
}

func (f *fakeBudgetStore) ListByUser(ctx context.Context, userID int) ([]models.Budget, error) {
	budgets := make([]models.Budget, 0, len(f.byID))
	for _, b := range f.byID {
		budgets = append(budgets, b)
	}
	return budgets, nil
}

func (f *fakeBudgetStore) Create(ctx context.Context, b models.Budget) (models.Budget, error) {
	b.ID = len(f.byID) + 1
	f.created = b
	f.byID[b.ID] = b
	return b, nil
}

func (f *fakeBudgetStore) Update(ctx context.Context, b models.Budget) (models.Budget, error) {
	f.updated = b
	f.byID[b.ID] = b
	return b, nil
}

func (f *fakeBudgetStore) Delete(ctx context.Context, id int) (models.Budget, error) {
	b, ok := f.byID[id]
	if !ok {
		return models.Budget{}, store.ErrNotFound
	}
	delete(f.byID, id)
	return b, nil
}

type fakeSpentCalculator struct {
	perCategory map[string]float64
}

func (f *fakeSpentCalculator) SpentFor(ctx context.Context, userID int, category string) (float64, error) {
	return f.perCategory[category], nil
}

func TestBudgetGetRecomputesSpent(t *testing.T) {
	budgets := newFakeBudgetStore()
	budgets.byID[1] = models.Budget{ID: 1, UserID: 1, Category: "Food", LimitAmount: 200, Spent: 999}
	spent := &fakeSpentCalculator{perCategory: map[string]float64{"Food": 50}}
	svc := NewBudgetService(budgets, spent)

	view, err := svc.Get(helpers.TestCtx(), 1)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	// The stale cached value is ignored.
	if view.Spent != 50 {
		t.Fatalf("expected recomputed spent 50, got %v", view.Spent)
	}
	if view.Percentage != 25 || view.Status != "On Track" {
		t.Fatalf("derived fields: %+v", view)
	}
}

func TestBudgetCreateIgnoresClientSpent(t *testing.T) {
	budgets := newFakeBudgetStore()
	spent := &fakeSpentCalculator{perCategory: map[string]float64{"Food": 120}}
	svc := NewBudgetService(budgets, spent)

	view, err := svc.Create(helpers.TestCtx(), dto.CreateBudgetRequest{
		UserID:      1,
		Category:    "Food",
		LimitAmount: helpers.Ptr(150.0),
		Spent:       helpers.Ptr(5.0),
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if view.Spent != 120 {
		t.Fatalf("client-supplied spent must be ignored: %v", view.Spent)
	}
	if view.Status != "Warning" {
		t.Fatalf("120/150 = 80%% should be Warning, got %s", view.Status)
	}
}

func TestBudgetStatusBands(t *testing.T) {
	cases := []struct {
		spent  float64
		status string
	}{
		{50, "On Track"},
		{79.99, "On Track"},
		{80, "Warning"},
		{99.99, "Warning"},
		{100, "Over Budget"}, // spent == limit already counts as over
		{140, "Over Budget"},
	}
	for _, tc := range cases {
		view := budgetView(models.Budget{LimitAmount: 100, Spent: tc.spent})
		if view.Status != tc.status {
			t.Fatalf("spent %v: expected %s, got %s", tc.spent, tc.status, view.Status)
		}
	}
}

func TestBudgetUpdateNeverTouchesSpent(t *testing.T) {
	budgets := newFakeBudgetStore()
	budgets.byID[1] = models.Budget{ID: 1, UserID: 1, Category: "Food", LimitAmount: 200, Spent: 75}
	svc := NewBudgetService(budgets, &fakeSpentCalculator{})

	updated, err := svc.Update(helpers.TestCtx(), 1, dto.UpdateBudgetRequest{
		LimitAmount: helpers.Ptr(500.0),
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if updated.LimitAmount != 500 {
		t.Fatalf("limit not updated: %+v", updated)
	}
	if updated.Spent != 75 {
		t.Fatalf("spent must survive a limit edit untouched: %v", updated.Spent)
	}
}

func TestBudgetCreateValidation(t *testing.T) {
	svc := NewBudgetService(newFakeBudgetStore(), &fakeSpentCalculator{})

	cases := []struct {
		name string
		req  dto.CreateBudgetRequest
		code string
	}{
		{"missing user", dto.CreateBudgetRequest{Category: "Food", LimitAmount: helpers.Ptr(10.0)}, "MISSING_USER_ID"},
		{"missing category", dto.CreateBudgetRequest{UserID: 1, LimitAmount: helpers.Ptr(10.0)}, "MISSING_CATEGORY"},
		{"missing limit", dto.CreateBudgetRequest{UserID: 1, Category: "Food"}, "MISSING_LIMIT_AMOUNT"},
		{"zero limit", dto.CreateBudgetRequest{UserID: 1, Category: "Food", LimitAmount: helpers.Ptr(0.0)}, "INVALID_LIMIT_AMOUNT"},
	}
	for _, tc := range cases {
		_, err := svc.Create(helpers.TestCtx(), tc.req)
		var vErr *errs.ValidationError
		if !errors.As(err, &vErr) || vErr.Code != tc.code {
			t.Fatalf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
	}
}

func TestBudgetDeleteReturnsRow(t *testing.T) {
	budgets := newFakeBudgetStore()
	budgets.byID[4] = models.Budget{ID: 4, Category: "Rent"}
	svc := NewBudgetService(budgets, &fakeSpentCalculator{})

	deleted, err := svc.Delete(helpers.TestCtx(), 4)
	if err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if deleted.ID != 4 {
		t.Fatalf("expected deleted row back: %+v", deleted)
	}

	_, err = svc.Delete(helpers.TestCtx(), 4)
	var nfErr *errs.NotFoundError
	if !errors.As(err, &nfErr) {
		t.Fatalf("second delete must be not-found, got %v", err)
	}
}
