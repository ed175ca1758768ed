package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finsight/finsight-backend/internal/models"
)

const transactionColumns = `id, user_id, amount, category, merchant, date, type, description, created_at`

type transactionStore struct {
	pool *pgxpool.Pool
}

func NewTransactionStore(pool *pgxpool.Pool) *transactionStore {
	return &transactionStore{pool: pool}
}

func scanTransaction(row pgx.Row) (models.Transaction, error) {
	var t models.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.Amount, &t.Category, &t.Merchant,
		&t.Date, &t.Type, &t.Description, &t.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrNotFound
	}
	return t, err
}

func collectTransactions(rows pgx.Rows) ([]models.Transaction, error) {
	defer rows.Close()
	txs := []models.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}

func (s *transactionStore) Get(ctx context.Context, id int) (models.Transaction, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id)
	return scanTransaction(row)
}

func (s *transactionStore) ListByUser(ctx context.Context, userID, limit, offset int) ([]models.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1
		ORDER BY date DESC, id DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func (s *transactionStore) ListAllByUser(ctx context.Context, userID int) ([]models.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1
		ORDER BY date, id`,
		userID)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

// ListByUserSince filters on the ISO date column; string comparison is safe
// for YYYY-MM-DD values.
func (s *transactionStore) ListByUserSince(ctx context.Context, userID int, from string) ([]models.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1 AND date >= $2
		ORDER BY date, id`,
		userID, from)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func (s *transactionStore) ListBetween(ctx context.Context, userID int, from, to string) ([]models.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date, id`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func (s *transactionStore) ListDebitsBetween(ctx context.Context, userID int, from, to string) ([]models.Transaction, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE user_id = $1 AND type = 'debit' AND date >= $2 AND date <= $3
		ORDER BY date, id`,
		userID, from, to)
	if err != nil {
		return nil, err
	}
	return collectTransactions(rows)
}

func (s *transactionStore) Create(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	row := s.pool.QueryRow(ctx, `
		INSERT INTO transactions (user_id, amount, category, merchant, date, type, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+transactionColumns,
		t.UserID, t.Amount, t.Category, t.Merchant, t.Date, t.Type, t.Description)
	return scanTransaction(row)
}

// CreateBatch inserts all rows over a single round trip.
func (s *transactionStore) CreateBatch(ctx context.Context, txs []models.Transaction) ([]models.Transaction, error) {
	if len(txs) == 0 {
		return []models.Transaction{}, nil
	}

	batch := &pgx.Batch{}
	for _, t := range txs {
		batch.Queue(`
			INSERT INTO transactions (user_id, amount, category, merchant, date, type, description)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+transactionColumns,
			t.UserID, t.Amount, t.Category, t.Merchant, t.Date, t.Type, t.Description)
	}

	results := s.pool.SendBatch(ctx, batch)
	defer results.Close()

	inserted := make([]models.Transaction, 0, len(txs))
	for range txs {
		t, err := scanTransaction(results.QueryRow())
		if err != nil {
			return nil, err
		}
		inserted = append(inserted, t)
	}
	return inserted, nil
}

func (s *transactionStore) Update(ctx context.Context, t models.Transaction) (models.Transaction, error) {
	row := s.pool.QueryRow(ctx, `
		UPDATE transactions
		SET amount = $1, category = $2, merchant = $3, date = $4, type = $5, description = $6
		WHERE id = $7
		RETURNING `+transactionColumns,
		t.Amount, t.Category, t.Merchant, t.Date, t.Type, t.Description, t.ID)
	return scanTransaction(row)
}

func (s *transactionStore) Delete(ctx context.Context, id int) (models.Transaction, error) {
	row := s.pool.QueryRow(ctx,
		`DELETE FROM transactions WHERE id = $1 RETURNING `+transactionColumns, id)
	return scanTransaction(row)
}
