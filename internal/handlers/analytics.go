package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/response"
)

type AnalyticsService interface {
	Dashboard(ctx context.Context, userID int) (dto.DashboardSummary, error)
	MonthlyTrend(ctx context.Context, userID int) (dto.MonthlyTrendResponse, error)
	Forecast(ctx context.Context, userID int) (dto.ForecastResponse, error)
}

type analyticsHandlers struct {
	ResponseHandler response.ResponseHandler
	AnalyticsSvc    AnalyticsService
}

func NewAnalyticsHandlers(deps *Deps) *analyticsHandlers {
	return &analyticsHandlers{
		ResponseHandler: deps.ResponseHandler,
		AnalyticsSvc:    deps.AnalyticsSvc,
	}
}

func (h *analyticsHandlers) AnalyticsRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/dashboard", h.Dashboard)
	r.Get("/monthly-trend", h.MonthlyTrend)
	r.Get("/forecast", h.Forecast)
	return r
}

func (h *analyticsHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt(r, "userId", "MISSING_USER_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	summary, err := h.AnalyticsSvc.Dashboard(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, summary)
}

func (h *analyticsHandlers) MonthlyTrend(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt(r, "userId", "MISSING_USER_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	trend, err := h.AnalyticsSvc.MonthlyTrend(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, trend)
}

func (h *analyticsHandlers) Forecast(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt(r, "userId", "MISSING_USER_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	forecast, err := h.AnalyticsSvc.Forecast(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, forecast)
}
