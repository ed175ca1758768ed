package dto

// ScoreFactor is one weighted component of a score report. Score is 0-100,
// Weight a percentage, Impact one of "positive" / "neutral" / "negative".
type ScoreFactor struct {
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Weight      int    `json:"weight"`
	Impact      string `json:"impact"`
	Description string `json:"description"`
}

type ScoreRecommendation struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Impact      string `json:"impact"`
	Priority    int    `json:"priority,omitempty"` // CIBIL variant only
}

type LoanEligibility struct {
	PersonalLoan bool   `json:"personalLoan"`
	HomeLoan     bool   `json:"homeLoan"`
	CarLoan      bool   `json:"carLoan"`
	CreditCard   bool   `json:"creditCard"`
	Message      string `json:"message"`
}

type ScoreTrend struct {
	Direction string `json:"direction"`
	Change    int    `json:"change"`
}

type CIBILScoreMetadata struct {
	CalculatedAt      string `json:"calculatedAt"`
	TransactionCount  int    `json:"transactionCount"`
	AccountAge        string `json:"accountAge"`
	AvgMonthlyIncome  int    `json:"avgMonthlyIncome"`
	DebtToIncomeRatio string `json:"debtToIncomeRatio"`
}

// CIBILScoreReport is the 900-scale variant.
type CIBILScoreReport struct {
	CIBILScore        int                   `json:"cibilScore"`
	Rating            string                `json:"rating"`
	RatingColor       string                `json:"ratingColor"`
	RatingDescription string                `json:"ratingDescription"`
	Factors           []ScoreFactor         `json:"factors"`
	Recommendations   []ScoreRecommendation `json:"recommendations"`
	LoanEligibility   LoanEligibility       `json:"loanEligibility"`
	Metadata          CIBILScoreMetadata    `json:"metadata"`
}

type CreditScoreMetadata struct {
	CalculatedAt      string `json:"calculatedAt"`
	TransactionCount  int    `json:"transactionCount"`
	AccountAge        string `json:"accountAge"`
	SavingsGoalsCount int    `json:"savingsGoalsCount"`
}

// CreditScoreReport is the 850-scale variant.
type CreditScoreReport struct {
	CreditScore       int                   `json:"creditScore"`
	Rating            string                `json:"rating"`
	RatingColor       string                `json:"ratingColor"`
	RatingDescription string                `json:"ratingDescription"`
	Factors           []ScoreFactor         `json:"factors"`
	Recommendations   []ScoreRecommendation `json:"recommendations"`
	Trend             ScoreTrend            `json:"trend"`
	Metadata          CreditScoreMetadata   `json:"metadata"`
}
