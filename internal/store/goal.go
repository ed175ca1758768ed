package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsight/finsight-backend/internal/models"
)

const goalColumns = `id, user_id, title, target_amount, current_amount, deadline, icon, created_at, updated_at`

type goalStore struct {
	pool *pgxpool.Pool
}

func NewGoalStore(pool *pgxpool.Pool) *goalStore {
	return &goalStore{pool: pool}
}

func scanGoal(row pgx.Row) (models.SavingsGoal, error) {
	var g models.SavingsGoal
	err := row.Scan(&g.ID, &g.UserID, &g.Title, &g.TargetAmount, &g.CurrentAmount,
		&g.Deadline, &g.Icon, &g.CreatedAt, &g.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return g, ErrNotFound
	}
	return g, err
}

func (s *goalStore) Get(ctx context.Context, id int) (models.SavingsGoal, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+goalColumns+` FROM savings_goals WHERE id = $1`, id)
	return scanGoal(row)
}

func (s *goalStore) ListByUser(ctx context.Context, userID int) ([]models.SavingsGoal, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+goalColumns+` FROM savings_goals WHERE user_id = $1 ORDER BY id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	goals := []models.SavingsGoal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

func (s *goalStore) Create(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO savings_goals (user_id, title, target_amount, current_amount, deadline, icon)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+goalColumns,
		g.UserID, g.Title, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Icon)
	return scanGoal(row)
}

func (s *goalStore) Update(ctx context.Context, g models.SavingsGoal) (models.SavingsGoal, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE savings_goals
		SET title = $1, target_amount = $2, current_amount = $3, deadline = $4, icon = $5, updated_at = now()
		WHERE id = $6
		RETURNING `+goalColumns,
		g.Title, g.TargetAmount, g.CurrentAmount, g.Deadline, g.Icon, g.ID)
	return scanGoal(row)
}

func (s *goalStore) Delete(ctx context.Context, id int) (models.SavingsGoal, error) {
	row := s.pool.QueryRow(ctx, `DELETE FROM savings_goals WHERE id = $1 RETURNING `+goalColumns, id)
	return scanGoal(row)
}
