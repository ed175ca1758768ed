package services

import (
	"context"
	"errors"
	"strings"

	"github.com/finsight/finsight-backend/internal/dto"
	"github.com/finsight/finsight-backend/internal/errs"
	"github.com/finsight/finsight-backend/internal/models"
	"github.com/finsight/finsight-backend/internal/store"
	"github.com/finsight/finsight-backend/pkg/helpers"
	"github.com/finsight/finsight-backend/pkg/logger"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

type transactionStore interface {
	Get(ctx context.Context, id int) (models.Transaction, error)
	ListByUser(ctx context.Context, userID, limit, offset int) ([]models.Transaction, error)
	Create(ctx context.Context, t models.Transaction) (models.Transaction, error)
	CreateBatch(ctx context.Context, txs []models.Transaction) ([]models.Transaction, error)
	Update(ctx context.Context, t models.Transaction) (models.Transaction, error)
	Delete(ctx context.Context, id int) (models.Transaction, error)
}

type transactionUserStore interface {
	Get(ctx context.Context, id int) (models.User, error)
	AdjustBalance(ctx context.Context, id int, delta float64) (models.User, error)
}

type reconciler interface {
	Recalculate(ctx context.Context, userID int) error
}

type transactionService struct {
	txs        transactionStore
	users      transactionUserStore
	reconciler reconciler
}

func NewTransactionService(txs transactionStore, users transactionUserStore, rec reconciler) *transactionService {
	return &transactionService{
		txs:        txs,
		users:      users,
		reconciler: rec,
	}
}

func (s *transactionService) Get(ctx context.Context, id int) (models.Transaction, error) {
	t, err := s.txs.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return t, errs.NewNotFoundError("NOT_FOUND", "Transaction not found")
	}
	return t, err
}

func (s *transactionService) List(ctx context.Context, userID, limit, offset int) ([]models.Transaction, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return s.txs.ListByUser(ctx, userID, limit, offset)
}

func (s *transactionService) Create(ctx context.Context, req dto.CreateTransactionRequest) (models.Transaction, error) {
	if req.UserID == 0 {
		return models.Transaction{}, errs.NewValidationError("MISSING_USER_ID", "userId is required")
	}
	if req.Amount == nil {
		return models.Transaction{}, errs.NewValidationError("MISSING_AMOUNT", "amount is required")
	}
	if strings.TrimSpace(req.Category) == "" {
		return models.Transaction{}, errs.NewValidationError("MISSING_CATEGORY", "category is required")
	}
	if strings.TrimSpace(req.Merchant) == "" {
		return models.Transaction{}, errs.NewValidationError("MISSING_MERCHANT", "merchant is required")
	}
	if strings.TrimSpace(req.Date) == "" {
		return models.Transaction{}, errs.NewValidationError("MISSING_DATE", "date is required")
	}
	if req.Type == "" {
		return models.Transaction{}, errs.NewValidationError("MISSING_TYPE", "type is required")
	}
	if *req.Amount <= 0 {
		return models.Transaction{}, errs.NewValidationError("INVALID_AMOUNT", "amount must be greater than 0")
	}
	txType, ok := parseTransactionType(req.Type)
	if !ok {
		return models.Transaction{}, errs.NewValidationError("INVALID_TYPE",
			`type must be either "debit" or "credit"`)
	}

	// The original contract reports a missing owner as a 400, not a 404.
	if _, err := s.users.Get(ctx, req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.Transaction{}, errs.NewValidationError("USER_NOT_FOUND", "User not found")
		}
		return models.Transaction{}, err
	}

	created, err := s.txs.Create(ctx, models.Transaction{
		UserID:      req.UserID,
		Amount:      *req.Amount,
		Category:    strings.TrimSpace(req.Category),
		Merchant:    strings.TrimSpace(req.Merchant),
		Date:        strings.TrimSpace(req.Date),
		Type:        txType,
		Description: trimDescription(req.Description),
	})
	if err != nil {
		return models.Transaction{}, err
	}

	if _, err := s.users.AdjustBalance(ctx, req.UserID, balanceDelta(created)); err != nil {
		return models.Transaction{}, err
	}

	s.reconcile(ctx, req.UserID)
	return created, nil
}

func (s *transactionService) Update(ctx context.Context, id int, req dto.UpdateTransactionRequest) (models.Transaction, error) {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return existing, err
	}

	if req.Amount != nil && *req.Amount <= 0 {
		return models.Transaction{}, errs.NewValidationError("INVALID_AMOUNT", "amount must be greater than 0")
	}
	if req.Type != nil {
		txType, ok := parseTransactionType(*req.Type)
		if !ok {
			return models.Transaction{}, errs.NewValidationError("INVALID_TYPE",
				`type must be either "debit" or "credit"`)
		}
		existing.Type = txType
	}
	if req.Amount != nil {
		existing.Amount = *req.Amount
	}
	if req.Category != nil {
		existing.Category = strings.TrimSpace(*req.Category)
	}
	if req.Merchant != nil {
		existing.Merchant = strings.TrimSpace(*req.Merchant)
	}
	if req.Date != nil {
		existing.Date = strings.TrimSpace(*req.Date)
	}
	if req.Description != nil {
		existing.Description = trimDescription(req.Description)
	}

	updated, err := s.txs.Update(ctx, existing)
	if err != nil {
		return models.Transaction{}, err
	}

	// Balance is deliberately not readjusted on edits.
	s.reconcile(ctx, existing.UserID)
	return updated, nil
}

func (s *transactionService) Delete(ctx context.Context, id int) (models.Transaction, error) {
	deleted, err := s.txs.Delete(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return deleted, errs.NewNotFoundError("NOT_FOUND", "Transaction not found")
	}
	if err != nil {
		return deleted, err
	}

	s.reconcile(ctx, deleted.UserID)
	return deleted, nil
}

// reconcile is fire-and-log: a reconciliation failure must never fail the
// transaction mutation that triggered it.
func (s *transactionService) reconcile(ctx context.Context, userID int) {
	if err := s.reconciler.Recalculate(ctx, userID); err != nil {
		logger.FromContext(ctx).Error("budget reconciliation failed",
			"user_id", userID, "error", err)
	}
}

func parseTransactionType(raw string) (models.TransactionType, bool) {
	switch models.TransactionType(strings.ToLower(strings.TrimSpace(raw))) {
	case models.TypeDebit:
		return models.TypeDebit, true
	case models.TypeCredit:
		return models.TypeCredit, true
	}
	return "", false
}

func balanceDelta(t models.Transaction) float64 {
	if t.Type == models.TypeCredit {
		return t.Amount
	}
	return -t.Amount
}

func trimDescription(desc *string) *string {
	if desc == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*desc)
	if trimmed == "" {
		return nil
	}
	return helpers.Ptr(trimmed)
}
