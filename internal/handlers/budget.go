package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/errs"
	"github.com/finsight/finsight-backend/internal/models"
	"github.com/finsight/finsight-backend/internal/response"
)

type BudgetService interface {
	Get(ctx context.Context, id int) (dto.BudgetView, error)
	List(ctx context.Context, userID int) ([]dto.BudgetView, error)
	Create(ctx context.Context, req dto.CreateBudgetRequest) (dto.BudgetView, error)
	Update(ctx context.Context, id int, req dto.UpdateBudgetRequest) (models.Budget, error)
	Delete(ctx context.Context, id int) (models.Budget, error)
}

type budgetHandlers struct {
	ResponseHandler response.ResponseHandler
	BudgetSvc       BudgetService
}

func NewBudgetHandlers(deps *Deps) *budgetHandlers {
	return &budgetHandlers{
		ResponseHandler: deps.ResponseHandler,
		BudgetSvc:       deps.BudgetSvc,
	}
}

func (h *budgetHandlers) BudgetRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.Post("/", h.Create)
	r.Put("/", h.Update)
	r.Delete("/", h.Delete)
	return r
}

// Get returns a single budget when ?id= is present, otherwise all of a
// user's budgets. Spent is recomputed server-side either way.
func (h *budgetHandlers) Get(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		id, err := queryInt(r, "id", "INVALID_ID")
		if err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		budget, err := h.BudgetSvc.Get(r.Context(), id)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		h.ResponseHandler.WriteJSON(w, r, http.StatusOK, budget)
		return
	}

	userID, err := queryInt(r, "userId", "MISSING_USER_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	budgets, err := h.BudgetSvc.List(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, dto.ListBudgetsResponse{Budgets: budgets})
}

func (h *budgetHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("INVALID_JSON", "Request body must be valid JSON"))
		return
	}

	budget, err := h.BudgetSvc.Create(r.Context(), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusCreated, budget)
}

func (h *budgetHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "id", "INVALID_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	var body dto.UpdateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("INVALID_JSON", "Request body must be valid JSON"))
		return
	}

	budget, err := h.BudgetSvc.Update(r.Context(), id, body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, budget)
}

func (h *budgetHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "id", "INVALID_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	budget, err := h.BudgetSvc.Delete(r.Context(), id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, dto.DeleteBudgetResponse{
		Message: "Budget deleted successfully",
		Budget:  budget,
	})
}
