package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/finsight/finsight-backend/internal/handlers"
	"github.com/finsight/finsight-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	lm := middleware.NewLoggerMiddleware(deps.Log)
	r.Use(chimiddleware.RequestID)
	r.Use(lm.LoggerMiddleware)
	r.Use(chimiddleware.Recoverer)

	ush := handlers.NewUserHandlers(deps)
	txh := handlers.NewTransactionHandlers(deps)
	bh := handlers.NewBudgetHandlers(deps)
	gh := handlers.NewGoalHandlers(deps)
	anh := handlers.NewAnalyticsHandlers(deps)
	sch := handlers.NewScoreHandlers(deps)
	adh := handlers.NewAdviceHandlers(deps)

	r.Mount("/users", ush.UserRoutes())
	r.Mount("/auth", ush.AuthRoutes())
	r.Mount("/transactions", txh.TransactionRoutes())
	r.Mount("/budgets", bh.BudgetRoutes())
	r.Mount("/savings-goals", gh.GoalRoutes())
	r.Mount("/analytics", anh.AnalyticsRoutes())
	r.Mount("/cibil-score", sch.CIBILRoutes())
	r.Mount("/credit-score", sch.CreditRoutes())
	r.Mount("/ai", adh.AdviceRoutes())
	return r
}
