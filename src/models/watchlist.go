package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type WatchlistItem struct {
	WatchlistID int                 `db:"watchlist_id" json:"watchlist_id"`
	UserID      int                 `db:"user_id" json:"user_id"`
	CoinID      string              `db:"coin_id" json:"coin_id"`
	Notes       *string             `db:"notes" json:"notes"`
	TargetPrice decimal.NullDecimal `db:"target_price" json:"target_price"`
	CreatedAt   time.Time           `db:"created_at" json:"created_at"`
}
