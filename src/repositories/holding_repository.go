package repositories

import (
	"context"
	"errors"
	"strconv"
	"time"

	"cryptotracker/src/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const holdingColumns = `portfolio_id, user_id, coin_id, amount, purchase_price, purchase_date, notes, created_at, updated_at`

type HoldingRepository interface {
	ListByUser(ctx context.Context, userID int, tx pgx.Tx) ([]models.Holding, error)
	GetByUserAndCoin(ctx context.Context, userID int, coinID string, tx pgx.Tx) (*models.Holding, error)
	GetByUserAndCoinForUpdate(ctx context.Context, userID int, coinID string, tx pgx.Tx) (*models.Holding, error)
	Create(ctx context.Context, h *models.Holding, tx pgx.Tx) error
	UpdateAmount(ctx context.Context, portfolioID int, amount decimal.Decimal, tx pgx.Tx) error
	UpdateFields(ctx context.Context, userID int, coinID string, fields HoldingUpdate, tx pgx.Tx) (*models.Holding, error)
	Delete(ctx context.Context, portfolioID int, tx pgx.Tx) error
	DeleteByUserAndCoin(ctx context.Context, userID int, coinID string, tx pgx.Tx) (int64, error)
}

// HoldingUpdate is a partial update; nil pointers leave the column untouched.
type HoldingUpdate struct {
	Amount        *decimal.Decimal
	PurchasePrice *decimal.Decimal
	PurchaseDate  *time.Time
	Notes         *string
}

type holdingRepo struct {
	db *pgxpool.Pool
}

func NewHoldingRepository(db *pgxpool.Pool) HoldingRepository {
	return &holdingRepo{db: db}
}

func (r *holdingRepo) conn(tx pgx.Tx) querier {
	if tx != nil {
		return tx
	}
	return r.db
}

func scanHolding(row pgx.Row) (*models.Holding, error) {
	var h models.Holding
	err := row.Scan(&h.PortfolioID, &h.UserID, &h.CoinID, &h.Amount,
		&h.PurchasePrice, &h.PurchaseDate, &h.Notes, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *holdingRepo) ListByUser(ctx context.Context, userID int, tx pgx.Tx) ([]models.Holding, error) {
	rows, err := r.conn(tx).Query(ctx,
		`SELECT `+holdingColumns+`
		FROM portfolio
		WHERE user_id = $1
		ORDER BY created_at DESC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	holdings := []models.Holding{}
	for rows.Next() {
		var h models.Holding
		if err := rows.Scan(&h.PortfolioID, &h.UserID, &h.CoinID, &h.Amount,
			&h.PurchasePrice, &h.PurchaseDate, &h.Notes, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, err
		}
		holdings = append(holdings, h)
	}
	return holdings, rows.Err()
}

func (r *holdingRepo) GetByUserAndCoin(ctx context.Context, userID int, coinID string, tx pgx.Tx) (*models.Holding, error) {
	h, err := scanHolding(r.conn(tx).QueryRow(ctx,
		`SELECT `+holdingColumns+`
		FROM portfolio
		WHERE user_id = $1 AND coin_id = $2
		ORDER BY portfolio_id
		LIMIT 1`,
		userID, coinID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return h, err
}

// GetByUserAndCoinForUpdate locks the row for the rest of the transaction so
// concurrent swaps or sells against the same holding cannot double-spend it.
func (r *holdingRepo) GetByUserAndCoinForUpdate(ctx context.Context, userID int, coinID string, tx pgx.Tx) (*models.Holding, error) {
	h, err := scanHolding(tx.QueryRow(ctx,
		`SELECT `+holdingColumns+`
		FROM portfolio
		WHERE user_id = $1 AND coin_id = $2
		ORDER BY portfolio_id
		LIMIT 1
		FOR UPDATE`,
		userID, coinID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return h, err
}

func (r *holdingRepo) Create(ctx context.Context, h *models.Holding, tx pgx.Tx) error {
	return r.conn(tx).QueryRow(ctx,
		`INSERT INTO portfolio (user_id, coin_id, amount, purchase_price, purchase_date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING portfolio_id, created_at, updated_at`,
		h.UserID, h.CoinID, h.Amount, h.PurchasePrice, h.PurchaseDate, h.Notes,
	).Scan(&h.PortfolioID, &h.CreatedAt, &h.UpdatedAt)
}

func (r *holdingRepo) UpdateAmount(ctx context.Context, portfolioID int, amount decimal.Decimal, tx pgx.Tx) error {
	tag, err := r.conn(tx).Exec(ctx,
		`UPDATE portfolio SET amount = $1, updated_at = NOW() WHERE portfolio_id = $2`,
		amount, portfolioID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *holdingRepo) UpdateFields(ctx context.Context, userID int, coinID string, fields HoldingUpdate, tx pgx.Tx) (*models.Holding, error) {
	set := ""
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if fields.Amount != nil {
		set += "amount = " + arg(*fields.Amount) + ", "
	}
	if fields.PurchasePrice != nil {
		set += "purchase_price = " + arg(*fields.PurchasePrice) + ", "
	}
	if fields.PurchaseDate != nil {
		set += "purchase_date = " + arg(*fields.PurchaseDate) + ", "
	}
	if fields.Notes != nil {
		set += "notes = " + arg(*fields.Notes) + ", "
	}
	if set == "" {
		return nil, errors.New("no fields to update")
	}

	query := `UPDATE portfolio SET ` + set + `updated_at = NOW()
		WHERE user_id = ` + arg(userID) + ` AND coin_id = ` + arg(coinID) + `
		RETURNING ` + holdingColumns
	h, err := scanHolding(r.conn(tx).QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return h, err
}

func (r *holdingRepo) Delete(ctx context.Context, portfolioID int, tx pgx.Tx) error {
	tag, err := r.conn(tx).Exec(ctx,
		`DELETE FROM portfolio WHERE portfolio_id = $1`, portfolioID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *holdingRepo) DeleteByUserAndCoin(ctx context.Context, userID int, coinID string, tx pgx.Tx) (int64, error) {
	tag, err := r.conn(tx).Exec(ctx,
		`DELETE FROM portfolio WHERE user_id = $1 AND coin_id = $2`,
		userID, coinID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
