package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is one user's position in one coin. A row only exists while its
// amount is positive; sell and swap delete the row once the amount reaches
// zero.
type Holding struct {
	PortfolioID   int                 `db:"portfolio_id" json:"portfolio_id"`
	UserID        int                 `db:"user_id" json:"user_id"`
	CoinID        string              `db:"coin_id" json:"coin_id"`
	Amount        decimal.Decimal     `db:"amount" json:"amount"`
	PurchasePrice decimal.NullDecimal `db:"purchase_price" json:"purchase_price"`
	PurchaseDate  *time.Time          `db:"purchase_date" json:"purchase_date"`
	Notes         *string             `db:"notes" json:"notes"`
	CreatedAt     time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time           `db:"updated_at" json:"updated_at"`
}
