package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/models"
)

type scoreTransactionStore interface {
	ListAllByUser(ctx context.Context, userID int) ([]models.Transaction, error)
}

type scoreBudgetStore interface {
	ListByUser(ctx context.Context, userID int) ([]models.Budget, error)
}

type scoreGoalStore interface {
	ListByUser(ctx context.Context, userID int) ([]models.SavingsGoal, error)
}

type scoreService struct {
	txs      scoreTransactionStore
	budgets  scoreBudgetStore
	goals    scoreGoalStore
	clockNow func() time.Time
}

func NewScoreService(txs scoreTransactionStore, budgets scoreBudgetStore, goals scoreGoalStore) *scoreService {
	return &scoreService{txs: txs, budgets: budgets, goals: goals, clockNow: time.Now}
}

func (s *scoreService) CIBILScore(ctx context.Context, userID int) (dto.CIBILScoreReport, error) {
	txs, budgets, goals, err := s.loadUserData(ctx, userID)
	if err != nil {
		return dto.CIBILScoreReport{}, err
	}
	return buildCIBILReport(txs, budgets, goals, s.clockNow()), nil
}

func (s *scoreService) CreditScore(ctx context.Context, userID int) (dto.CreditScoreReport, error) {
	txs, budgets, goals, err := s.loadUserData(ctx, userID)
	if err != nil {
		return dto.CreditScoreReport{}, err
	}
	return buildCreditReport(txs, budgets, goals, s.clockNow()), nil
}

func (s *scoreService) loadUserData(ctx context.Context, userID int) ([]models.Transaction, []models.Budget, []models.SavingsGoal, error) {
	txs, err := s.txs.ListAllByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	budgets, err := s.budgets.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	goals, err := s.goals.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, nil, err
	}
	return txs, budgets, goals, nil
}

// scoreFeatures are the inputs shared by both score variants, extracted once
// from the user's full history. A user with no transactions gets worst-case
// defaults (ratio 1.0, zero age) rather than an error.
type scoreFeatures struct {
	monthlyIncome      map[string]float64 // trailing 3 months, keyed by month
	monthsWithActivity int                // trailing 3 months, any tx type
	avgMonthlyIncome   float64            // over monthsWithActivity
	totalIncome        float64            // lifetime credit sum
	totalExpenses      float64            // lifetime debit sum
	utilizationRatio   float64            // expenses/income, 1.0 if no income
	accountAgeMonths   int                // 30-day months since oldest tx
	recentDebitCount   int                // trailing 30 days
	recentCreditCount  int
	avgGoalProgress    float64 // across non-completed goals
	activeGoalCount    int
}

func extractScoreFeatures(txs []models.Transaction, goals []models.SavingsGoal, now time.Time) scoreFeatures {
	f := scoreFeatures{
		monthlyIncome:    map[string]float64{},
		utilizationRatio: 1,
	}

	threeMonthsAgo := now.AddDate(0, -3, 0)
	thirtyDaysAgo := now.Add(-30 * 24 * time.Hour)
	activeMonths := map[string]bool{}
	var oldest time.Time

	for _, t := range txs {
		date, ok := parseDate(t.Date)
		if !ok {
			continue
		}
		if oldest.IsZero() || date.Before(oldest) {
			oldest = date
		}

		switch t.Type {
		case models.TypeCredit:
			f.totalIncome += t.Amount
		case models.TypeDebit:
			f.totalExpenses += t.Amount
		}

		if !date.Before(threeMonthsAgo) {
			monthKey := date.Format("2006-01")
			activeMonths[monthKey] = true
			if t.Type == models.TypeCredit {
				f.monthlyIncome[monthKey] += t.Amount
			}
		}
		if !date.Before(thirtyDaysAgo) {
			if t.Type == models.TypeDebit {
				f.recentDebitCount++
			} else {
				f.recentCreditCount++
			}
		}
	}

	f.monthsWithActivity = len(activeMonths)
	if f.monthsWithActivity > 0 {
		var total float64
		for _, v := range f.monthlyIncome {
			total += v
		}
		f.avgMonthlyIncome = total / float64(f.monthsWithActivity)
	}

	if f.totalIncome > 0 {
		f.utilizationRatio = f.totalExpenses / f.totalIncome
	}
	if !oldest.IsZero() {
		f.accountAgeMonths = int(now.Sub(oldest).Hours() / 24 / 30)
	}

	var progress float64
	for _, g := range goals {
		if g.Completed() || g.TargetAmount <= 0 {
			continue
		}
		progress += g.CurrentAmount / g.TargetAmount
		f.activeGoalCount++
	}
	if f.activeGoalCount > 0 {
		f.avgGoalProgress = progress / float64(f.activeGoalCount)
	}
	return f
}

// buildCIBILReport computes the 900-scale variant: weights 30/25/25/15/5,
// score = round(300 + raw/100*600).
func buildCIBILReport(txs []models.Transaction, budgets []models.Budget, goals []models.SavingsGoal, now time.Time) dto.CIBILScoreReport {
	f := extractScoreFeatures(txs, goals, now)

	var paymentRegularity float64
	switch {
	case f.monthsWithActivity >= 3 && f.avgMonthlyIncome > 15000:
		paymentRegularity = 95
	case f.monthsWithActivity >= 2 && f.avgMonthlyIncome > 10000:
		paymentRegularity = 75
	case f.monthsWithActivity >= 1:
		paymentRegularity = 50
	default:
		paymentRegularity = 25
	}

	var creditMix float64
	switch {
	case f.utilizationRatio < 0.3:
		creditMix = 100
	case f.utilizationRatio < 0.5:
		creditMix = 80
	case f.utilizationRatio < 0.7:
		creditMix = 60
	case f.utilizationRatio < 0.9:
		creditMix = 40
	default:
		creditMix = 20
	}

	var creditAge float64
	switch {
	case f.accountAgeMonths >= 24:
		creditAge = 100
	case f.accountAgeMonths >= 12:
		creditAge = 80
	case f.accountAgeMonths >= 6:
		creditAge = 60
	case f.accountAgeMonths >= 3:
		creditAge = 40
	default:
		creditAge = 20
	}

	var recentBehavior float64
	switch {
	case f.recentCreditCount >= 2 && f.recentDebitCount <= 10:
		recentBehavior = 90
	case f.recentCreditCount >= 1 && f.recentDebitCount <= 15:
		recentBehavior = 70
	case f.recentDebitCount <= 20:
		recentBehavior = 50
	default:
		recentBehavior = 30
	}

	hasBudgets := len(budgets) > 0
	discipline := f.avgGoalProgress * 100 * 0.6
	if hasBudgets {
		discipline += 40
	}

	raw := paymentRegularity*0.30 + creditMix*0.25 + creditAge*0.25 +
		recentBehavior*0.15 + discipline*0.05
	score := int(math.Round(300 + (raw/100)*600))

	rating, ratingColor, ratingDescription := "Very Poor", "red", "Very high risk - Loan approval unlikely"
	switch {
	case score >= 750:
		rating, ratingColor, ratingDescription = "Excellent", "green", "Low risk - Best loan terms available"
	case score >= 700:
		rating, ratingColor, ratingDescription = "Good", "lightgreen", "Medium risk - Good loan approval chances"
	case score >= 650:
		rating, ratingColor, ratingDescription = "Fair", "orange", "Moderate risk - Limited loan options"
	case score >= 550:
		rating, ratingColor, ratingDescription = "Poor", "darkorange", "High risk - Loan approval difficult"
	}

	paymentDesc := "Limited payment history"
	if f.monthsWithActivity >= 3 {
		paymentDesc = fmt.Sprintf("%d months of consistent activity", f.monthsWithActivity)
	}
	mixDesc := "High debt burden"
	if f.utilizationRatio < 0.3 {
		mixDesc = "Excellent debt management"
	} else if f.utilizationRatio < 0.7 {
		mixDesc = "Moderate debt levels"
	}
	ageDesc := "Building credit history"
	if f.accountAgeMonths >= 12 {
		ageDesc = fmt.Sprintf("%d months credit history", f.accountAgeMonths)
	}
	disciplineDesc := "No active financial goals"
	if f.activeGoalCount > 0 || hasBudgets {
		disciplineDesc = "Active financial planning"
	}

	factors := []dto.ScoreFactor{
		{
			Name:        "Payment History",
			Score:       int(math.Round(paymentRegularity)),
			Weight:      30,
			Impact:      impactAt(paymentRegularity, 75, "negative"),
			Description: paymentDesc,
		},
		{
			Name:        "Credit Mix",
			Score:       int(math.Round(creditMix)),
			Weight:      25,
			Impact:      impactAt(creditMix, 70, "negative"),
			Description: mixDesc,
		},
		{
			Name:        "Credit Age",
			Score:       int(math.Round(creditAge)),
			Weight:      25,
			Impact:      impactAt(creditAge, 60, "neutral"),
			Description: ageDesc,
		},
		{
			Name:   "Recent Behavior",
			Score:  int(math.Round(recentBehavior)),
			Weight: 15,
			Impact: impactAt(recentBehavior, 70, "neutral"),
			Description: fmt.Sprintf("%d expenses, %d income sources in last 30 days",
				f.recentDebitCount, f.recentCreditCount),
		},
		{
			Name:        "Financial Discipline",
			Score:       int(math.Round(discipline)),
			Weight:      5,
			Impact:      impactAt(discipline, 50, "neutral"),
			Description: disciplineDesc,
		},
	}

	recommendations := []dto.ScoreRecommendation{}
	if paymentRegularity < 75 {
		recommendations = append(recommendations, dto.ScoreRecommendation{
			Title:       "Maintain Regular Income",
			Description: "Show at least 3 months of consistent income to improve CIBIL score",
			Impact:      "High",
			Priority:    1,
		})
	}
	if creditMix < 70 {
		recommendations = append(recommendations, dto.ScoreRecommendation{
			Title: "Reduce Debt-to-Income Ratio",
			Description: fmt.Sprintf("Current DTI: %d%%. Keep it below 30%% for excellent score",
				roundPercent(f.utilizationRatio)),
			Impact:   "High",
			Priority: 2,
		})
	}
	if creditAge < 60 {
		recommendations = append(recommendations, dto.ScoreRecommendation{
			Title:       "Build Credit History",
			Description: "Maintain accounts for at least 12-24 months for better CIBIL score",
			Impact:      "Medium",
			Priority:    3,
		})
	}
	if recentBehavior < 70 {
		recommendations = append(recommendations, dto.ScoreRecommendation{
			Title:       "Control Recent Spending",
			Description: "Reduce number of expense transactions to show better financial control",
			Impact:      "Medium",
			Priority:    4,
		})
	}
	if discipline < 50 {
		recommendations = append(recommendations, dto.ScoreRecommendation{
			Title:       "Demonstrate Financial Planning",
			Description: "Set savings goals and budgets to show responsible financial behavior",
			Impact:      "Low",
			Priority:    5,
		})
	}

	var eligibilityMessage string
	switch {
	case score >= 750:
		eligibilityMessage = "Eligible for all loan types with best interest rates"
	case score >= 700:
		eligibilityMessage = "Eligible for most loans with competitive rates"
	case score >= 650:
		eligibilityMessage = "Limited loan options with higher interest rates"
	default:
		eligibilityMessage = "Improve score to access better loan products"
	}

	return dto.CIBILScoreReport{
		CIBILScore:        score,
		Rating:            rating,
		RatingColor:       ratingColor,
		RatingDescription: ratingDescription,
		Factors:           factors,
		Recommendations:   recommendations,
		LoanEligibility: dto.LoanEligibility{
			PersonalLoan: score >= 700,
			HomeLoan:     score >= 720,
			CarLoan:      score >= 680,
			CreditCard:   score >= 650,
			Message:      eligibilityMessage,
		},
		Metadata: dto.CIBILScoreMetadata{
			CalculatedAt:      now.UTC().Format(time.RFC3339),
			TransactionCount:  len(txs),
			AccountAge:        fmt.Sprintf("%d months", f.accountAgeMonths),
			AvgMonthlyIncome:  int(math.Round(f.avgMonthlyIncome)),
			DebtToIncomeRatio: fmt.Sprintf("%d%%", roundPercent(f.utilizationRatio)),
		},
	}
}

// buildCreditReport computes the 850-scale variant: weights 35/30/15/10/10,
// score = round(300 + raw/100*550).
func buildCreditReport(txs []models.Transaction, budgets []models.Budget, goals []models.SavingsGoal, now time.Time) dto.CreditScoreReport {
	f := extractScoreFeatures(txs, goals, now)

	// Payment consistency keys off credit activity alone, unlike the CIBIL
	// variant's any-activity window.
	paymentHistory := float64(30)
	if len(f.monthlyIncome) > 0 {
		var total float64
		for _, v := range f.monthlyIncome {
			total += v
		}
		if total/float64(len(f.monthlyIncome)) > 10000 {
			paymentHistory = 100
		} else {
			paymentHistory = 70
		}
	}

	utilization := math.Max(0, math.Min(100, (1-f.utilizationRatio)*150))
	historyLength := math.Min(100, float64(f.accountAgeMonths)/12*100)

	savings := math.Min(100, f.avgGoalProgress*100+20)

	budgetAdherence := float64(50)
	if len(budgets) > 0 {
		spending := map[string]float64{}
		for _, t := range txs {
			date, ok := parseDate(t.Date)
			if !ok || t.Type != models.TypeDebit || !sameMonth(date, now) {
				continue
			}
			spending[t.Category] += t.Amount
		}
		var total float64
		for _, b := range budgets {
			spent := spending[b.Category]
			if spent <= b.LimitAmount {
				total += 1
			} else if b.LimitAmount > 0 {
				total += math.Max(0, 1-(spent-b.LimitAmount)/b.LimitAmount)
			}
		}
		budgetAdherence = total / float64(len(budgets)) * 100
	}

	raw := paymentHistory*0.35 + utilization*0.30 + historyLength*0.15 +
		savings*0.10 + budgetAdherence*0.10
	unrounded := 300 + (raw/100)*550
	score := int(math.Round(unrounded))

	rating, ratingColor, ratingDescription := "Poor", "red", "Needs significant improvement"
	switch {
	case score >= 800:
		rating, ratingColor, ratingDescription = "Exceptional", "green", "Excellent financial management"
	case score >= 740:
		rating, ratingColor, ratingDescription = "Very Good", "lightgreen", "Above average financial health"
	case score >= 670:
		rating, ratingColor, ratingDescription = "Good", "blue", "Acceptable financial standing"
	case score >= 580:
		rating, ratingColor, ratingDescription = "Fair", "orange", "Below average, room for improvement"
	}

	paymentDesc := "Inconsistent income or spending patterns"
	if paymentHistory >= 70 {
		paymentDesc = "Regular income patterns detected"
	}
	utilizationDesc := "High spending relative to income"
	if f.utilizationRatio < 0.3 {
		utilizationDesc = "Excellent spending control"
	} else if f.utilizationRatio < 0.7 {
		utilizationDesc = "Moderate spending relative to income"
	}
	historyDesc := "New to financial tracking"
	if f.accountAgeMonths >= 12 {
		historyDesc = fmt.Sprintf("%d months of tracked history", f.accountAgeMonths)
	} else if f.accountAgeMonths >= 6 {
		historyDesc = "Building financial history"
	}
	savingsDesc := "No active savings goals"
	if f.activeGoalCount > 0 {
		savingsDesc = fmt.Sprintf("%d%% average goal progress", roundPercent(f.avgGoalProgress))
	}
	adherenceDesc := "No budgets set"
	if len(budgets) > 0 {
		if budgetAdherence >= 70 {
			adherenceDesc = "Staying within budget limits"
		} else {
			adherenceDesc = "Exceeding some budget limits"
		}
	}

	factors := []dto.ScoreFactor{
		{
			Name:        "Payment History",
			Score:       int(math.Round(paymentHistory)),
			Weight:      35,
			Impact:      impactAt(paymentHistory, 70, "negative"),
			Description: paymentDesc,
		},
		{
			Name:        "Credit Utilization",
			Score:       int(math.Round(utilization)),
			Weight:      30,
			Impact:      impactAt(utilization, 60, "negative"),
			Description: utilizationDesc,
		},
		{
			Name:        "Financial History",
			Score:       int(math.Round(historyLength)),
			Weight:      15,
			Impact:      impactAt(historyLength, 50, "neutral"),
			Description: historyDesc,
		},
		{
			Name:        "Savings Behavior",
			Score:       int(math.Round(savings)),
			Weight:      10,
			Impact:      impactAt(savings, 60, "neutral"),
			Description: savingsDesc,
		},
		{
			Name:        "Budget Adherence",
			Score:       int(math.Round(budgetAdherence)),
			Weight:      10,
			Impact:      impactAt(budgetAdherence, 70, "neutral"),
			Description: adherenceDesc,
		},
	}

	recommendations := []dto.ScoreRecommendation{}
	if paymentHistory < 70 {
		recommendations = append(recommendations, dto.ScoreRecommendation{
			Title:       "Establish Regular Income",
			Description: "Add consistent income transactions to demonstrate financial stability",
			Impact:      "High",
		})
	}
	if utilization < 60 {
		recommendations = append(recommendations, dto.ScoreRecommendation{
			Title: "Reduce Spending Ratio",
			Description: fmt.Sprintf("Your spending is %d%% of income. Aim for below 30%% to improve your score significantly",
				roundPercent(f.utilizationRatio)),
			Impact: "High",
		})
	}
	if historyLength < 50 {
		recommendations = append(recommendations, dto.ScoreRecommendation{
			Title:       "Build Financial History",
			Description: "Continue tracking transactions consistently to establish a longer financial history",
			Impact:      "Medium",
		})
	}
	if savings < 60 {
		recommendations = append(recommendations, dto.ScoreRecommendation{
			Title:       "Set Savings Goals",
			Description: "Create and work towards savings goals to demonstrate financial planning",
			Impact:      "Medium",
		})
	}
	if budgetAdherence < 70 && len(budgets) > 0 {
		recommendations = append(recommendations, dto.ScoreRecommendation{
			Title:       "Improve Budget Discipline",
			Description: "Stay within your budget limits to show responsible spending habits",
			Impact:      "Low",
		})
	} else if len(budgets) == 0 {
		recommendations = append(recommendations, dto.ScoreRecommendation{
			Title:       "Create Budget Limits",
			Description: "Set monthly spending limits for each category to better control expenses",
			Impact:      "Low",
		})
	}

	direction := "down"
	if float64(score) >= unrounded {
		direction = "up"
	}

	return dto.CreditScoreReport{
		CreditScore:       score,
		Rating:            rating,
		RatingColor:       ratingColor,
		RatingDescription: ratingDescription,
		Factors:           factors,
		Recommendations:   recommendations,
		Trend: dto.ScoreTrend{
			Direction: direction,
			Change:    int(math.Round(math.Abs(float64(score) - unrounded))),
		},
		Metadata: dto.CreditScoreMetadata{
			CalculatedAt:      now.UTC().Format(time.RFC3339),
			TransactionCount:  len(txs),
			AccountAge:        fmt.Sprintf("%d months", f.accountAgeMonths),
			SavingsGoalsCount: len(goals),
		},
	}
}

// impactAt tags a factor "positive" at or above the threshold, otherwise
// with the variant's below-threshold tag.
func impactAt(score, threshold float64, below string) string {
	if score >= threshold {
		return "positive"
	}
	return below
}

func roundPercent(ratio float64) int {
	return int(math.Round(ratio * 100))
}
