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

type UserService interface {
	List(ctx context.Context) ([]models.User, error)
	Get(ctx context.Context, id int) (models.User, error)
	Create(ctx context.Context, req dto.CreateUserRequest) (models.User, error)
	Update(ctx context.Context, id int, req dto.UpdateUserRequest) (models.User, error)
	Delete(ctx context.Context, id int) (models.User, error)
	Login(ctx context.Context, email, password string) (models.User, error)
}

type userHandlers struct {
	ResponseHandler response.ResponseHandler
	UserSvc         UserService
}

func NewUserHandlers(deps *Deps) *userHandlers {
	return &userHandlers{
		ResponseHandler: deps.ResponseHandler,
		UserSvc:         deps.UserSvc,
	}
}

func (h *userHandlers) UserRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.Post("/", h.Create)
	r.Put("/", h.Update)
	r.Delete("/", h.Delete)
	return r
}

func (h *userHandlers) AuthRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.Login)
	return r
}

// Get returns a single user when ?id= is present, otherwise every user.
func (h *userHandlers) Get(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") == "" {
		users, err := h.UserSvc.List(r.Context())
		if err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		h.ResponseHandler.WriteJSON(w, r, http.StatusOK, users)
		return
	}

	id, err := queryInt(r, "id", "INVALID_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	user, err := h.UserSvc.Get(r.Context(), id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, user)
}

func (h *userHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("INVALID_JSON", "Request body must be valid JSON"))
		return
	}

	user, err := h.UserSvc.Create(r.Context(), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusCreated, user)
}

func (h *userHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "id", "INVALID_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	var body dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("INVALID_JSON", "Request body must be valid JSON"))
		return
	}

	user, err := h.UserSvc.Update(r.Context(), id, body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, user)
}

func (h *userHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "id", "INVALID_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	user, err := h.UserSvc.Delete(r.Context(), id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, dto.DeleteUserResponse{
		Message: "User deleted successfully",
		User:    user,
	})
}

func (h *userHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var body dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("INVALID_JSON", "Request body must be valid JSON"))
		return
	}
	if body.Email == "" || body.Password == "" {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("MISSING_CREDENTIALS", "Email and password are required"))
		return
	}

	user, err := h.UserSvc.Login(r.Context(), body.Email, body.Password)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, user)
}
