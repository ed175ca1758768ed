package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/errs"
	"github.com/finsight/finsight-backend/internal/models"
	"github.com/finsight/finsight-backend/internal/response"
)

// 10 MB cap on CSV uploads.
const maxUploadBytes = 10 << 20

type TransactionService interface {
	Get(ctx context.Context, id int) (models.Transaction, error)
	List(ctx context.Context, userID, limit, offset int) ([]models.Transaction, error)
	Create(ctx context.Context, req dto.CreateTransactionRequest) (models.Transaction, error)
	Update(ctx context.Context, id int, req dto.UpdateTransactionRequest) (models.Transaction, error)
	Delete(ctx context.Context, id int) (models.Transaction, error)
	ImportCSV(ctx context.Context, userID int, filename string, file io.Reader) (dto.ImportResult, error)
}

type transactionHandlers struct {
	ResponseHandler response.ResponseHandler
	TransactionSvc  TransactionService
}

func NewTransactionHandlers(deps *Deps) *transactionHandlers {
	return &transactionHandlers{
		ResponseHandler: deps.ResponseHandler,
		TransactionSvc:  deps.TransactionSvc,
	}
}

func (h *transactionHandlers) TransactionRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Get)
	r.Post("/", h.Create)
	r.Put("/", h.Update)
	r.Delete("/", h.Delete)
	r.Post("/upload-csv", h.UploadCSV)
	return r
}

// Get returns a single transaction when ?id= is present, otherwise a page of
// the user's transactions, newest first.
func (h *transactionHandlers) Get(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("id") != "" {
		id, err := queryInt(r, "id", "INVALID_ID")
		if err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		tx, err := h.TransactionSvc.Get(r.Context(), id)
		if err != nil {
			h.ResponseHandler.HandleError(w, r, err)
			return
		}
		h.ResponseHandler.WriteJSON(w, r, http.StatusOK, tx)
		return
	}

	userID, err := queryInt(r, "userId", "MISSING_USER_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	limit := queryIntDefault(r, "limit", 0)
	offset := queryIntDefault(r, "offset", 0)

	txs, err := h.TransactionSvc.List(r.Context(), userID, limit, offset)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, dto.ListTransactionsResponse{Transactions: txs})
}

func (h *transactionHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var body dto.CreateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("INVALID_JSON", "Request body must be valid JSON"))
		return
	}

	tx, err := h.TransactionSvc.Create(r.Context(), body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusCreated, tx)
}

func (h *transactionHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "id", "INVALID_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	var body dto.UpdateTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("INVALID_JSON", "Request body must be valid JSON"))
		return
	}

	tx, err := h.TransactionSvc.Update(r.Context(), id, body)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, tx)
}

func (h *transactionHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := queryInt(r, "id", "INVALID_ID")
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	tx, err := h.TransactionSvc.Delete(r.Context(), id)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusOK, dto.DeleteTransactionResponse{
		Message:     "Transaction deleted successfully",
		Transaction: tx,
	})
}

// UploadCSV ingests a multipart form with a csv "file" and a "userId" field.
// Rows that fail validation are collected into the response rather than
// aborting the batch; a batch with zero valid rows is a 400.
func (h *transactionHandlers) UploadCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("INVALID_FORM", "Request must be multipart/form-data"))
		return
	}

	userID, err := strconv.Atoi(r.FormValue("userId"))
	if err != nil || userID <= 0 {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("MISSING_USER_ID", "userId is required"))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.ResponseHandler.HandleError(w, r,
			errs.NewValidationError("MISSING_FILE", "CSV file is required"))
		return
	}
	defer file.Close()

	result, err := h.TransactionSvc.ImportCSV(r.Context(), userID, header.Filename, file)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	if result.Imported == 0 {
		h.writeNoValidRows(w, r, result)
		return
	}
	h.ResponseHandler.WriteJSON(w, r, http.StatusCreated, result)
}

// writeNoValidRows reports an all-rows-rejected import, keeping the per-row
// errors in the body so the client can surface them.
func (h *transactionHandlers) writeNoValidRows(w http.ResponseWriter, r *http.Request, result dto.ImportResult) {
	h.ResponseHandler.WriteJSON(w, r, http.StatusBadRequest, struct {
		Error  string               `json:"error"`
		Code   string               `json:"code"`
		Errors []dto.ImportRowError `json:"errors"`
	}{
		Error:  "No valid transactions found in CSV",
		Code:   "NO_VALID_TRANSACTIONS",
		Errors: result.Errors,
	})
}
