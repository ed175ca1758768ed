package main

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/finsight/finsight-backend/internal/bootstrap"
	"github.com/finsight/finsight-backend/internal/config"
	"github.com/finsight/finsight-backend/internal/handlers"
	"github.com/finsight/finsight-backend/internal/response"
	"github.com/finsight/finsight-backend/internal/router"
	"github.com/finsight/finsight-backend/internal/services"
	"github.com/finsight/finsight-backend/internal/store"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// stores
	ustore := store.NewUserStore(bs.Pool)
	tstore := store.NewTransactionStore(bs.Pool)
	bstore := store.NewBudgetStore(bs.Pool)
	gstore := store.NewGoalStore(bs.Pool)

	// services
	rec := services.NewBudgetReconciler(bstore, tstore)
	userv := services.NewUserService(ustore)
	tserv := services.NewTransactionService(tstore, ustore, rec)
	bserv := services.NewBudgetService(bstore, rec)
	gserv := services.NewGoalService(gstore)
	anserv := services.NewAnalyticsService(tstore)
	scserv := services.NewScoreService(tstore, bstore, gstore)
	adserv := services.NewAdviceService(tstore, bs.GeminiAdapter)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.UserSvc = userv
	deps.TransactionSvc = tserv
	deps.BudgetSvc = bserv
	deps.GoalSvc = gserv
	deps.AnalyticsSvc = anserv
	deps.ScoreSvc = scserv
	deps.AdviceSvc = adserv

	// router
	r := router.NewRouter(deps)
	bs.Log.Info("server starting", "port", cfg.Port)
	err = http.ListenAndServe(":"+cfg.Port, r)
	exitOnError("server start failed", err, bs.Log)
}
