package dto

type TopCategory struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type DashboardSummary struct {
	TotalSpent       float64            `json:"totalSpent"`
	TotalIncome      float64            `json:"totalIncome"`
	TopCategory      *TopCategory       `json:"topCategory"`
	CategorySpending map[string]float64 `json:"categorySpending"`
	TransactionCount int                `json:"transactionCount"`
}

// TrendMonth is one calendar-month bucket of the trailing six-month trend.
// Amount mirrors Expenditure (kept for chart compatibility).
type TrendMonth struct {
	Month       string             `json:"month"` // "Jan 2006"
	Amount      float64            `json:"amount"`
	Expenditure float64            `json:"expenditure"`
	Income      float64            `json:"income"`
	Categories  map[string]float64 `json:"categories"`
}

type MonthlyTrendResponse struct {
	Trend []TrendMonth `json:"trend"`
}

type ForecastResponse struct {
	PredictedExpenditure float64   `json:"predictedExpenditure"`
	MonthlyTotals        []float64 `json:"monthlyTotals"`
}
