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

type GoalService interface {
	Get(ctx context.Context, id int) (models.SavingsGoal, error)
	List(ctx context.Context, userID int) ([]models.SavingsGoal, error)
	Create(ctx context.Context, req dto.CreateGoalRequest) (models.SavingsGoal, error)
	Update(ctx context.Context, id int, req dto.UpdateGoalRequest) (models.SavingsGoal, error)
	Delete(ctx context.Context, id int) (models.SavingsGoal, error)
}

type goalHandlers struct {
	ResponseHandler response.ResponseHandler
	GoalSvc         GoalService
}

func NewGoalHandlers(deps *Deps) *goalHandlers {
	return &goalHandlers{
		ResponseHandler: deps.ResponseHandler,
		GoalSvc:         deps.GoalSvc,
	}
}

func (h *goalHandlers) GoalRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.Post("/", h.Create)
	r.Put("/", h.Update)
	r.Delete("/", h.Delete)
	return r
}

func (h *goalHandlers) Get(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		id, err := queryInt(r, "id", "INVALID_ID")
		if err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		goal, err := h.GoalSvc.Get(r.Context(), id)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		h.ResponseHandler.WriteJSON(w, r, http.StatusOK, goal)
		return
	}

	userID, err := queryInt(r, "userId", "MISSING_USER_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	goals, err := h.GoalSvc.List(r.Context(), userID)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, dto.ListGoalsResponse{Goals: goals})
}

func (h *goalHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("INVALID_JSON", "Request body must be valid JSON"))
		return
	}

	goal, err := h.GoalSvc.Create(r.Context(), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusCreated, goal)
}

func (h *goalHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "id", "INVALID_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	var body dto.UpdateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("INVALID_JSON", "Request body must be valid JSON"))
		return
	}

	goal, err := h.GoalSvc.Update(r.Context(), id, body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, goal)
}

func (h *goalHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "id", "INVALID_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	goal, err := h.GoalSvc.Delete(r.Context(), id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, dto.DeleteGoalResponse{
		Message: "Savings goal deleted successfully",
		Goal:    goal,
	})
}
