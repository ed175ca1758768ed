package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/errs"
	"github.com/finsight/finsight-backend/internal/response"
)

type AdviceService interface {
	Generate(ctx context.Context, req dto.AdviceRequest) (dto.AdviceResponse, error)
}

type adviceHandlers struct {
	ResponseHandler response.ResponseHandler
	AdviceSvc       AdviceService
}

func NewAdviceHandlers(deps *Deps) *adviceHandlers {
	return &adviceHandlers{
		ResponseHandler: deps.ResponseHandler,
		AdviceSvc:       deps.AdviceSvc,
	}
}

func (h *adviceHandlers) AdviceRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/advice", h.Generate)
	return r
}

func (h *adviceHandlers) Generate(w http.ResponseWriter, r *http.Request) {
	var body dto.AdviceRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("INVALID_JSON", "Request body must be valid JSON"))
		return
	}

	resp, err := h.AdviceSvc.Generate(r.Context(), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, resp)
}
