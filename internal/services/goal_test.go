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

type fakeGoalStore struct {
	byID map[int]models.SavingsGoal
}

func newFakeGoalStore() *fakeGoalStore {
	return &fakeGoalStore{byID: map[int]models.SavingsGoal{}}
}

func (f *fakeGoalStore) Get(ctx context.Context, id int) (models.SavingsGoal, error) {
	g, ok := f.byID[id]
	if !ok {
		return models.SavingsGoal{}, store.ErrNotFound
	}
	return g, nil
}

func (f *fakeGoalStore) ListByUser(ctx context.Context, userID int) ([]models.SavingsGoal, error) {
	goals := make([]models.SavingsGoal, 0, len(f.byID))
	for _, g := range f.byID {
		goals = append(goals, g)
	}
	return goals, nil
}

func (f *fakeGoalStore) Create(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error) {
	g.ID = len(f.byID) + 1
	f.byID[g.ID] = g
	return g, nil
}

func (f *fakeGoalStore) Update(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error) {
	f.byID[g.ID] = g
	return g, nil
}

func (f *fakeGoalStore) Delete(ctx context.Context, id int) (models.SavingsGoal, error) {
	g, ok := f.byID[id]
	if !ok {
		return models.SavingsGoal{}, store.ErrNotFound
	}
	delete(f.byID, id)
	return g, nil
}

func TestGoalCreateCapsCurrentAtTarget(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore())

	g, err := svc.Create(helpers.TestCtx(), dto.CreateGoalRequest{
		UserID:        1,
		Title:         "Emergency Fund",
		TargetAmount:  helpers.Ptr(1000.0),
		CurrentAmount: helpers.Ptr(2500.0),
		Deadline:      "2026-01-01",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if g.CurrentAmount != 1000 {
		t.Fatalf("current must cap at target: %v", g.CurrentAmount)
	}
	if !g.Completed() {
		t.Fatalf("capped goal should be complete")
	}
}

func TestGoalCreateClampsNegativeCurrent(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore())

	g, err := svc.Create(helpers.TestCtx(), dto.CreateGoalRequest{
		UserID:        1,
		Title:         "Trip",
		TargetAmount:  helpers.Ptr(500.0),
		CurrentAmount: helpers.Ptr(-10.0),
		Deadline:      "2026-01-01",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if g.CurrentAmount != 0 {
		t.Fatalf("negative current must clamp to 0: %v", g.CurrentAmount)
	}
}

func TestGoalUpdateLoweredTargetDragsCurrentDown(t *testing.T) {
	goals := newFakeGoalStore()
	goals.byID[1] = models.SavingsGoal{
		ID: 1, UserID: 1, Title: "Trip",
		TargetAmount: 1000, CurrentAmount: 800, Deadline: "2026-01-01",
	}
	svc := NewGoalService(goals)

	g, err := svc.Update(helpers.TestCtx(), 1, dto.UpdateGoalRequest{
		TargetAmount: helpers.Ptr(500.0),
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
	if g.CurrentAmount != 500 {
		t.Fatalf("current must re-clamp to new target: %v", g.CurrentAmount)
	}
}

func TestGoalCreateValidation(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore())

	cases := []struct {
		name string
		req  dto.CreateGoalRequest
		code string
	}{
		{"missing user", dto.CreateGoalRequest{Title: "x", TargetAmount: helpers.Ptr(1.0), Deadline: "2026-01-01"}, "MISSING_USER_ID"},
		{"missing title", dto.CreateGoalRequest{UserID: 1, TargetAmount: helpers.Ptr(1.0), Deadline: "2026-01-01"}, "MISSING_TITLE"},
		{"missing target", dto.CreateGoalRequest{UserID: 1, Title: "x", Deadline: "2026-01-01"}, "MISSING_TARGET_AMOUNT"},
		{"zero target", dto.CreateGoalRequest{UserID: 1, Title: "x", TargetAmount: helpers.Ptr(0.0), Deadline: "2026-01-01"}, "INVALID_TARGET_AMOUNT"},
		{"missing deadline", dto.CreateGoalRequest{UserID: 1, Title: "x", TargetAmount: helpers.Ptr(1.0)}, "MISSING_DEADLINE"},
		{"bad deadline", dto.CreateGoalRequest{UserID: 1, Title: "x", TargetAmount: helpers.Ptr(1.0), Deadline: "soon"}, "INVALID_DEADLINE"},
	}
	for _, tc := range cases {
		_, err := svc.Create(helpers.TestCtx(), tc.req)
		var vErr *errs.ValidationError
		if !errors.As(err, &vErr) || vErr.Code != tc.code {
			t.Fatalf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
	}
}

func TestGoalDeleteNotFound(t *testing.T) {
	svc := NewGoalService(newFakeGoalStore())

	_, err := svc.Delete(helpers.TestCtx(), 99)
	var nfErr *errs.NotFoundError
	if !errors.As(err, &nfErr) || nfErr.Code != "GOAL_NOT_FOUND" {
		t.Fatalf("expected GOAL_NOT_FOUND, got %v", err)
	}
}
