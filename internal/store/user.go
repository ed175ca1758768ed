package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsight/finsight-backend/internal/models"
)

const userColumns = `id, name, email, password, balance, avatar, created_at`

type userStore struct {
	pool *pgxpool.Pool
}

func NewUserStore(pool *pgxpool.Pool) *userStore {
	return &userStore{pool: pool}
}

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Balance, &u.Avatar, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, ErrNotFound
	}
	return u, err
}

func (s *userStore) List(ctx context.Context) ([]models.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (s *userStore) Get(ctx context.Context, id int) (models.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *userStore) Create(ctx context.Context, u models.User) (models.User, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (name, email, password, balance, avatar)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+userColumns,
		u.Name, u.Email, u.Password, u.Balance, u.Avatar)
	return scanUser(row)
}

func (s *userStore) Update(ctx context.Context, u models.User) (models.User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users
		SET name = $1, email = $2, password = $3, balance = $4, avatar = $5
		WHERE id = $6
		RETURNING `+userColumns,
		u.Name, u.Email, u.Password, u.Balance, u.Avatar, u.ID)
	return scanUser(row)
}

// AdjustBalance applies a signed delta in one statement.
func (s *userStore) AdjustBalance(ctx context.Context, id int, delta float64) (models.User, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE users SET balance = balance + $1 WHERE id = $2
		RETURNING `+userColumns,
		delta, id)
	return scanUser(row)
}

func (s *userStore) Delete(ctx context.Context, id int) (models.User, error) {
	row := s.pool.QueryRow(ctx, `DELETE FROM users WHERE id = $1 RETURNING `+userColumns, id)
	return scanUser(row)
}
