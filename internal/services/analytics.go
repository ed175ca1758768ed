package services

import (
	"context"
	"sort"
	"time"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/models"
)

type analyticsTransactionStore interface {
	ListAllByUser(ctx context.Context, userID int) ([]models.Transaction, error)
	ListByUserSince(ctx context.Context, userID int, from string) ([]models.Transaction, error)
	ListBetween(ctx context.Context, userID int, from, to string) ([]models.Transaction, error)
}

type analyticsService struct {
	txs      analyticsTransactionStore
	clockNow func() time.Time
}

func NewAnalyticsService(txs analyticsTransactionStore) *analyticsService {
	return &analyticsService{txs: txs, clockNow: time.Now}
}

// Dashboard summarizes the current calendar month: debit/credit totals, a
// per-category debit breakdown, and the single biggest spending category.
// Income is tracked in totalIncome, never as a spending category.
func (s *analyticsService) Dashboard(ctx context.Context, userID int) (dto.DashboardSummary, error) {
	from, to := monthBounds(s.clockNow())
	txs, err := s.txs.ListBetween(ctx, userID, from, to)
	if err != nil {
		return dto.DashboardSummary{}, err
	}

	summary := dto.DashboardSummary{
		CategorySpending: map[string]float64{},
		TransactionCount: len(txs),
	}
	for _, t := range txs {
		switch t.Type {
		case models.TypeDebit:
			summary.TotalSpent += t.Amount
			if t.Category != models.IncomeCategory {
				summary.CategorySpending[t.Category] += t.Amount
			}
		case models.TypeCredit:
			summary.TotalIncome += t.Amount
		}
	}

	for category, amount := range summary.CategorySpending {
		rounded := round2(amount)
		summary.CategorySpending[category] = rounded
		if summary.TopCategory == nil || rounded > summary.TopCategory.Amount {
			summary.TopCategory = &dto.TopCategory{Category: category, Amount: rounded}
		}
	}
	summary.TotalSpent = round2(summary.TotalSpent)
	summary.TotalIncome = round2(summary.TotalIncome)
	return summary, nil
}

// MonthlyTrend returns exactly six calendar-month buckets, oldest first,
// current month last. Months with no transactions still appear with zero
// sums.
func (s *analyticsService) MonthlyTrend(ctx context.Context, userID int) (dto.MonthlyTrendResponse, error) {
	now := s.clockNow()
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -5, 0)

	txs, err := s.txs.ListByUserSince(ctx, userID, windowStart.Format(dateLayout))
	if err != nil {
		return dto.MonthlyTrendResponse{}, err
	}

	months := make([]dto.TrendMonth, 6)
	index := make(map[string]int, 6)
	for i := 0; i < 6; i++ {
		label := monthLabel(windowStart.AddDate(0, i, 0))
		months[i] = dto.TrendMonth{Month: label, Categories: map[string]float64{}}
		index[label] = i
	}

	for _, t := range txs {
		date, ok := parseDate(t.Date)
		if !ok {
			continue
		}
		i, ok := index[monthLabel(date)]
		if !ok {
			continue
		}
		switch t.Type {
		case models.TypeDebit:
			months[i].Expenditure += t.Amount
			if t.Category != models.IncomeCategory {
				months[i].Categories[t.Category] += t.Amount
			}
		case models.TypeCredit:
			months[i].Income += t.Amount
		}
	}

	for i := range months {
		months[i].Expenditure = round2(months[i].Expenditure)
		months[i].Income = round2(months[i].Income)
		months[i].Amount = months[i].Expenditure
		for category, amount := range months[i].Categories {
			months[i].Categories[category] = round2(amount)
		}
	}
	return dto.MonthlyTrendResponse{Trend: months}, nil
}

// Forecast groups the user's full debit history into monthly totals and
// extrapolates one period forward with an OLS fit.
func (s *analyticsService) Forecast(ctx context.Context, userID int) (dto.ForecastResponse, error) {
	txs, err := s.txs.ListAllByUser(ctx, userID)
	if err != nil {
		return dto.ForecastResponse{}, err
	}

	totals := map[string]float64{}
	for _, t := range txs {
		if t.Type != models.TypeDebit {
			continue
		}
		date, ok := parseDate(t.Date)
		if !ok {
			continue
		}
		totals[date.Format("2006-01")] += t.Amount
	}

	keys := make([]string, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	series := make([]float64, 0, len(keys))
	for _, k := range keys {
		series = append(series, round2(totals[k]))
	}

	return dto.ForecastResponse{
		PredictedExpenditure: round2(predictNextExpenditure(series)),
		MonthlyTotals:        series,
	}, nil
}

// predictNextExpenditure fits y = slope*x + intercept over x = 0..n-1 and
// evaluates at x = n. Fewer than two points return the lone value or zero;
// negative extrapolations clamp to zero.
func predictNextExpenditure(series []float64) float64 {
	n := len(series)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return series[0]
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range series {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	fn := float64(n)
	slope := (fn*sumXY - sumX*sumY) / (fn*sumXX - sumX*sumX)
	intercept := (sumY - slope*sumX) / fn

	predicted := slope*fn + intercept
	if predicted < 0 {
		return 0
	}
	return predicted
}
