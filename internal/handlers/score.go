package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/response"
)

type ScoreService interface {
	CIBILScore(ctx context.Context, userID int) (dto.CIBILScoreReport, error)
	CreditScore(ctx context.Context, userID int) (dto.CreditScoreReport, error)
}

type scoreHandlers struct {
	ResponseHandler response.ResponseHandler
	ScoreSvc        ScoreService
}

func NewScoreHandlers(deps *Deps) *scoreHandlers {
	return &scoreHandlers{
		ResponseHandler: deps.ResponseHandler,
		ScoreSvc:        deps.ScoreSvc,
	}
}

func (h *scoreHandlers) CIBILRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.CIBILScore)
	return r
}

func (h *scoreHandlers) CreditRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.CreditScore)
	return r
}

func (h *scoreHandlers) CIBILScore(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt(r, "userId", "MISSING_USER_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	report, err := h.ScoreSvc.CIBILScore(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, report)
}

func (h *scoreHandlers) CreditScore(w http.ResponseWriter, r *http.Request) {
	userID, err := queryInt(r, "userId", "MISSING_USER_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	report, err := h.ScoreSvc.CreditScore(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, report)
}
