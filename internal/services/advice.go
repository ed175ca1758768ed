package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/errs"
	"github.com/finsight/finsight-backend/internal/models"
)

const adviceFallback = "Unable to generate advice at this time."

type adviceTransactionStore interface {
	ListByUser(ctx context.Context, userID, limit, offset int) ([]models.Transaction, error)
}

type geminiClient interface {
	Configured() bool
	GenerateContent(ctx context.Context, req dto.GeminiGenerateRequest) (dto.GeminiGenerateResponse, error)
}

type adviceService struct {
	txs      adviceTransactionStore
	gemini   geminiClient
	clockNow func() time.Time
}

func NewAdviceService(txs adviceTransactionStore, gemini geminiClient) *adviceService {
	return &adviceService{txs: txs, gemini: gemini, clockNow: time.Now}
}

// Generate builds a financial-context prompt from the user's 20 most recent
// transactions and asks the model for advice. The context block in the
// response is computed locally and returned even when the model's text is
// the fallback string.
func (s *adviceService) Generate(ctx context.Context, req dto.AdviceRequest) (dto.AdviceResponse, error) {
	if req.UserID == 0 {
		return dto.AdviceResponse{}, errs.NewValidationError("MISSING_USER_ID", "userId is required")
	}
	if !s.gemini.Configured() {
		return dto.AdviceResponse{}, errs.NewExternalServiceError("gemini",
			"MISSING_API_KEY", "Gemini API key not configured")
	}

	recent, err := s.txs.ListByUser(ctx, req.UserID, 20, 0)
	if err != nil {
		return dto.AdviceResponse{}, err
	}

	now := s.clockNow()
	adviceCtx := dto.AdviceContext{}
	categorySpending := map[string]float64{}
	for _, t := range recent {
		date, ok := parseDate(t.Date)
		if !ok || !sameMonth(date, now) {
			continue
		}
		switch t.Type {
		case models.TypeDebit:
			adviceCtx.TotalSpent += t.Amount
			categorySpending[t.Category] += t.Amount
		case models.TypeCredit:
			adviceCtx.TotalIncome += t.Amount
		}
	}
	adviceCtx.NetBalance = adviceCtx.TotalIncome - adviceCtx.TotalSpent
	adviceCtx.TopCategories = topCategories(categorySpending, 3)

	resp, err := s.gemini.GenerateContent(ctx, dto.GeminiGenerateRequest{
		Prompt:          buildAdvicePrompt(adviceCtx, recent, req.Question),
		Temperature:     0.7,
		TopK:            40,
		TopP:            0.95,
		MaxOutputTokens: 1024,
	})
	if err != nil {
		return dto.AdviceResponse{}, errs.NewExternalServiceError("gemini",
			"GEMINI_API_ERROR", "Failed to get AI advice")
	}

	advice := resp.Text
	if advice == "" {
		advice = adviceFallback
	}
	return dto.AdviceResponse{Advice: advice, Context: adviceCtx}, nil
}

func buildAdvicePrompt(c dto.AdviceContext, recent []models.Transaction, question string) string {
	var top []string
	for _, tc := range c.TopCategories {
		top = append(top, fmt.Sprintf("%s (₹%.2f)", tc.Category, tc.Amount))
	}

	var lines []string
	for i, t := range recent {
		if i >= 5 {
			break
		}
		sign := "+"
		if t.Type == models.TypeDebit {
			sign = "-"
		}
		lines = append(lines, fmt.Sprintf("- %s: %s₹%g on %s (%s)",
			t.Date, sign, t.Amount, t.Category, t.Merchant))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "User Financial Summary:\n")
	fmt.Fprintf(&b, "- Total spent this month: ₹%.2f\n", c.TotalSpent)
	fmt.Fprintf(&b, "- Total income this month: ₹%.2f\n", c.TotalIncome)
	fmt.Fprintf(&b, "- Net balance: ₹%.2f\n", c.NetBalance)
	fmt.Fprintf(&b, "- Top spending categories: %s\n", strings.Join(top, ", "))
	fmt.Fprintf(&b, "\nRecent transactions:\n%s\n", strings.Join(lines, "\n"))

	if question != "" {
		fmt.Fprintf(&b, "\nUser question: %s\n\nProvide helpful, personalized financial advice "+
			"based on the user's spending patterns and question. Keep the response "+
			"conversational, practical, and actionable.", question)
	} else {
		b.WriteString("\nProvide personalized financial advice and recommendations to help " +
			"the user improve their financial health. Focus on spending reduction, savings " +
			"opportunities, and budget optimization. Keep the advice conversational and actionable.")
	}
	return b.String()
}

// topCategories returns the n largest spending categories, biggest first.
func topCategories(spending map[string]float64, n int) []dto.TopCategory {
	all := make([]dto.TopCategory, 0, len(spending))
	for category, amount := range spending {
		all = append(all, dto.TopCategory{Category: category, Amount: amount})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Amount > all[j].Amount })
	if len(all) > n {
		all = all[:n]
	}
	return all
}
