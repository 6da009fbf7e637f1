package repositories

import (
	"context"

	"cryptotracker/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `transaction_id, user_id, transaction_type, coin_id, amount, price, total_value, to_coin_id, to_amount, to_price, notes, created_at`

// TransactionRepository is append-only: audit rows are created once after a
// successful ledger mutation and never updated or deleted.
type TransactionRepository interface {
	ListByUser(ctx context.Context, userID int) ([]models.Transaction, error)
	Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error
}

type transactionRepo struct {
	db *pgxpool.Pool
}

func NewTransactionRepository(db *pgxpool.Pool) TransactionRepository {
	return &transactionRepo{db: db}
}

func (r *transactionRepo) conn(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *transactionRepo) ListByUser(ctx context.Context, userID int) ([]models.Transaction, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+transactionColumns+`
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	transactions := []models.Transaction{}
	for rows.Next() {
		var t models.Transaction
		if err := rows.Scan(&t.TransactionID, &t.UserID, &t.TransactionType, &t.CoinID,
			&t.Amount, &t.Price, &t.TotalValue, &t.ToCoinID, &t.ToAmount, &t.ToPrice,
			&t.Notes, &t.CreatedAt); err != nil {
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, rows.Err()
}

func (r *transactionRepo) Create(ctx context.Context, t *models.Transaction, tx pgx.Tx) error {
	return r.conn(tx).QueryRow(ctx,
		`INSERT INTO transactions (user_id, transaction_type, coin_id, amount, price, total_value, to_coin_id, to_amount, to_price, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW())
		RETURNING transaction_id, created_at`,
		t.UserID, t.TransactionType, t.CoinID, t.Amount, t.Price, t.TotalValue,
		t.ToCoinID, t.ToAmount, t.ToPrice, t.Notes,
	).Scan(&t.TransactionID, &t.CreatedAt)
}
