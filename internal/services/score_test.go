package services

import (
	"context"
	"testing"
	"time"

	"github.com/finsight/finsight-backend/internal/models"
)

type fakeScoreData struct {
	txs     []models.Transaction
	budgets []models.Budget
	goals   []models.SavingsGoal
}

func (f *fakeScoreData) ListAllByUser(ctx context.Context, userID int) ([]models.Transaction, error) {
	return f.txs, nil
}

func (f *fakeScoreData) ListByUser(ctx context.Context, userID int) ([]models.Budget, error) {
	return f.budgets, nil
}

type fakeScoreGoals struct {
	goals []models.SavingsGoal
}

func (f *fakeScoreGoals) ListByUser(ctx context.Context, userID int) ([]models.SavingsGoal, error) {
	return f.goals, nil
}

var scoreNow = time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)

func TestCIBILReportNoTransactionsIsWellFormed(t *testing.T) {
	report := buildCIBILReport(nil, nil, nil, scoreNow)

	// Worst case on every factor: raw = 25*.3+20*.25+20*.25+50*.15+0*.05 = 25
	// score = round(300 + 0.25*600) = 450.
	if report.CIBILScore != 450 {
		t.Fatalf("expected 450, got %d", report.CIBILScore)
	}
	if report.Rating != "Very Poor" {
		t.Fatalf("expected Very Poor, got %s", report.Rating)
	}
	if len(report.Factors) != 5 {
		t.Fatalf("expected 5 factors, got %d", len(report.Factors))
	}
	if report.Metadata.DebtToIncomeRatio != "100%" {
		t.Fatalf("zero income must default ratio to worst case: %s", report.Metadata.DebtToIncomeRatio)
	}
	if report.LoanEligibility.PersonalLoan || report.LoanEligibility.CreditCard {
		t.Fatalf("no loan eligibility at 450: %+v", report.LoanEligibility)
	}
}

func TestCIBILRecommendationsCarryPriorities(t *testing.T) {
	report := buildCIBILReport(nil, nil, nil, scoreNow)

	if len(report.Recommendations) != 5 {
		t.Fatalf("all factors below threshold should recommend: got %d", len(report.Recommendations))
	}
	for i, rec := range report.Recommendations {
		if rec.Priority != i+1 {
			t.Fatalf("recommendation %d: expected priority %d, got %d", i, i+1, rec.Priority)
		}
	}
}

func TestCIBILUtilizationBuckets(t *testing.T) {
	cases := []struct {
		debit float64
		want  int // Credit Mix factor score
	}{
		{200, 100},  // ratio 0.2  -> 100
		{400, 80},   // ratio 0.4  -> 80
		{600, 60},   // ratio 0.6  -> 60
		{800, 40},   // ratio 0.8  -> 40
		{1500, 20},  // ratio 1.5  -> 20
	}
	for _, tc := range cases {
		txs := []models.Transaction{
			{Amount: 1000, Type: models.TypeCredit, Date: "2025-06-01"},
			{Amount: tc.debit, Type: models.TypeDebit, Date: "2025-06-02"},
		}
		report := buildCIBILReport(txs, nil, nil, scoreNow)
		if got := report.Factors[1].Score; got != tc.want {
			t.Fatalf("debit %v: expected mix score %d, got %d", tc.debit, tc.want, got)
		}
	}
}

func TestCIBILLoanEligibilityGates(t *testing.T) {
	// Strong profile: long active history, high income, low spending,
	// goals and budgets in place.
	txs := []models.Transaction{
		{Amount: 50000, Type: models.TypeCredit, Date: "2023-01-10"},
		{Amount: 50000, Type: models.TypeCredit, Date: "2025-04-10"},
		{Amount: 50000, Type: models.TypeCredit, Date: "2025-05-10"},
		{Amount: 50000, Type: models.TypeCredit, Date: "2025-06-10"},
		{Amount: 1000, Type: models.TypeDebit, Date: "2025-06-11"},
	}
	budgets := []models.Budget{{ID: 1, Category: "Food", LimitAmount: 500}}
	goals := []models.SavingsGoal{{TargetAmount: 1000, CurrentAmount: 900}}

	report := buildCIBILReport(txs, budgets, goals, scoreNow)

	// 95*.3+100*.25+100*.25+70*.15+(54+40)*.05 = 93.7 -> 862
	if report.CIBILScore < 750 {
		t.Fatalf("expected excellent-band score, got %d", report.CIBILScore)
	}
	le := report.LoanEligibility
	if !le.PersonalLoan || !le.HomeLoan || !le.CarLoan || !le.CreditCard {
		t.Fatalf("all gates should pass at %d: %+v", report.CIBILScore, le)
	}
	if le.Message != "Eligible for all loan types with best interest rates" {
		t.Fatalf("message mismatch: %s", le.Message)
	}
	if report.Rating != "Excellent" || report.RatingColor != "green" {
		t.Fatalf("band mismatch: %s/%s", report.Rating, report.RatingColor)
	}
}

func TestCreditReportNoTransactionsIsWellFormed(t *testing.T) {
	report := buildCreditReport(nil, nil, nil, scoreNow)

	// raw = 30*.35+0*.30+0*.15+20*.10+50*.10 = 17.5 -> round(300+96.25) = 396.
	if report.CreditScore != 396 {
		t.Fatalf("expected 396, got %d", report.CreditScore)
	}
	if report.Rating != "Poor" {
		t.Fatalf("expected Poor, got %s", report.Rating)
	}
	if len(report.Factors) != 5 {
		t.Fatalf("expected 5 factors, got %d", len(report.Factors))
	}
	if report.Trend.Direction != "down" && report.Trend.Direction != "up" {
		t.Fatalf("trend direction must be set: %+v", report.Trend)
	}
	for _, rec := range report.Recommendations {
		if rec.Priority != 0 {
			t.Fatalf("credit variant carries no priorities: %+v", rec)
		}
	}
}

func TestCreditUtilizationContinuous(t *testing.T) {
	// ratio 0.5 -> (1-0.5)*150 = 75.
	txs := []models.Transaction{
		{Amount: 1000, Type: models.TypeCredit, Date: "2025-06-01"},
		{Amount: 500, Type: models.TypeDebit, Date: "2025-06-02"},
	}
	report := buildCreditReport(txs, nil, nil, scoreNow)
	if got := report.Factors[1].Score; got != 75 {
		t.Fatalf("expected utilization 75, got %d", got)
	}

	// Spending over income clamps at zero.
	txs = []models.Transaction{
		{Amount: 100, Type: models.TypeCredit, Date: "2025-06-01"},
		{Amount: 500, Type: models.TypeDebit, Date: "2025-06-02"},
	}
	report = buildCreditReport(txs, nil, nil, scoreNow)
	if got := report.Factors[1].Score; got != 0 {
		t.Fatalf("expected clamp to 0, got %d", got)
	}
}

func TestCreditBudgetAdherenceDecaysWithOverage(t *testing.T) {
	budgets := []models.Budget{{ID: 1, Category: "Food", LimitAmount: 100}}
	txs := []models.Transaction{
		{Amount: 150, Category: "Food", Type: models.TypeDebit, Date: "2025-06-05"},
	}
	report := buildCreditReport(txs, budgets, nil, scoreNow)

	// overage 50% -> 1 - 0.5 = 0.5 -> 50.
	if got := report.Factors[4].Score; got != 50 {
		t.Fatalf("expected adherence 50, got %d", got)
	}
	if report.Factors[4].Description != "Exceeding some budget limits" {
		t.Fatalf("description mismatch: %s", report.Factors[4].Description)
	}
}

func TestScoreServiceLoadsAllUserData(t *testing.T) {
	data := &fakeScoreData{
		txs: []models.Transaction{
			{Amount: 20000, Type: models.TypeCredit, Date: "2025-06-01"},
		},
		budgets: []models.Budget{{ID: 1, Category: "Food", LimitAmount: 100}},
	}
	goals := &fakeScoreGoals{
		goals: []models.SavingsGoal{{TargetAmount: 100, CurrentAmount: 50}},
	}
	svc := NewScoreService(data, data, goals)
	svc.clockNow = func() time.Time { return scoreNow }

	cibil, err := svc.CIBILScore(context.Background(), 1)
	if err != nil {
		t.Fatalf("CIBILScore error: %v", err)
	}
	if cibil.Metadata.TransactionCount != 1 {
		t.Fatalf("metadata transaction count: %+v", cibil.Metadata)
	}

	credit, err := svc.CreditScore(context.Background(), 1)
	if err != nil {
		t.Fatalf("CreditScore error: %v", err)
	}
	if credit.Metadata.SavingsGoalsCount != 1 {
		t.Fatalf("metadata goals count: %+v", credit.Metadata)
	}
	if credit.CreditScore < 300 || credit.CreditScore > 850 {
		t.Fatalf("score out of range: %d", credit.CreditScore)
	}
}
