package handlers

import (
	"log/slog"

	"github.com/finsight/finsight-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
	TransactionSvc  TransactionService
	BudgetSvc       BudgetService
	GoalSvc         GoalService
	AnalyticsSvc    AnalyticsService
	ScoreSvc        ScoreService
	AdviceSvc       AdviceService
}
