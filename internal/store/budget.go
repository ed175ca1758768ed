package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsight/finsight-backend/internal/models"
)

const budgetColumns = `id, user_id, category, limit_amount, spent, created_at, updated_at`

type budgetStore struct {
	pool *pgxpool.Pool
}

func NewBudgetStore(pool *pgxpool.Pool) *budgetStore {
	return &budgetStore{pool: pool}
}

func scanBudget(row pgx.Row) (models.Budget, error) {
	var b models.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.LimitAmount, &b.Spent,
		&b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return b, ErrNotFound
	}
	return b, err
}

func (s *budgetStore) Get(ctx context.Context, id int) (models.Budget, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id)
	return scanBudget(row)
}

func (s *budgetStore) ListByUser(ctx context.Context, userID int) ([]models.Budget, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+budgetColumns+` FROM budgets WHERE user_id = $1 ORDER BY id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	budgets := []models.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (s *budgetStore) Create(ctx context.Context, b models.Budget) (models.Budget, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO budgets (user_id, category, limit_amount, spent)
		VALUES ($1, $2, $3, $4)
		RETURNING `+budgetColumns,
		b.UserID, b.Category, b.LimitAmount, b.Spent)
	return scanBudget(row)
}

func (s *budgetStore) Update(ctx context.Context, b models.Budget) (models.Budget, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE budgets
		SET category = $1, limit_amount = $2, updated_at = now()
		WHERE id = $3
		RETURNING `+budgetColumns,
		b.Category, b.LimitAmount, b.ID)
	return scanBudget(row)
}

// UpdateSpent overwrites the cached spent value during reconciliation.
func (s *budgetStore) UpdateSpent(ctx context.Context, id int, spent float64) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE budgets SET spent = $1, updated_at = now() WHERE id = $2`,
		spent, id)
	return err
}

func (s *budgetStore) Delete(ctx context.Context, id int) (models.Budget, error) {
	row := s.pool.QueryRow(ctx, `DELETE FROM budgets WHERE id = $1 RETURNING `+budgetColumns, id)
	return scanBudget(row)
}
