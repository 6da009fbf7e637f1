package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TransactionTypeBuy  = "buy"
	TransactionTypeSell = "sell"
	TransactionTypeSwap = "swap"
)

// Transaction is an append-only audit record. Swap records carry both legs in
// the to_* columns; rows are never updated or deleted.
type Transaction struct {
	TransactionID   int                 `db:"transaction_id" json:"transaction_id"`
	UserID          int                 `db:"user_id" json:"user_id"`
	TransactionType string              `db:"transaction_type" json:"transaction_type"`
	CoinID          string              `db:"coin_id" json:"coin_id"`
	Amount          decimal.Decimal     `db:"amount" json:"amount"`
	Price           decimal.NullDecimal `db:"price" json:"price"`
	TotalValue      decimal.NullDecimal `db:"total_value" json:"total_value"`
	ToCoinID        *string             `db:"to_coin_id" json:"to_coin_id"`
	ToAmount        decimal.NullDecimal `db:"to_amount" json:"to_amount"`
	ToPrice         decimal.NullDecimal `db:"to_price" json:"to_price"`
	Notes           *string             `db:"notes" json:"notes"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
}
