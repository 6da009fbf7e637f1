package schemas

import (
	"cryptotracker/src/models"

	"github.com/shopspring/decimal"
)

type PortfolioResponse struct {
	UserID   int              `json:"user_id"`
	Holdings []models.Holding `json:"holdings"`
}

type CreateHoldingRequest struct {
	CoinID        string           `json:"coin_id"`
	Amount        decimal.Decimal  `json:"amount"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	PurchaseDate  *string          `json:"purchase_date"`
	Notes         *string          `json:"notes"`
}

type CreateHoldingResponse struct {
	Created *models.Holding `json:"created"`
}

// UpdateHoldingRequest carries a partial update; nil fields are left
// untouched.
type UpdateHoldingRequest struct {
	CoinID        string           `json:"coin_id"`
	Amount        *decimal.Decimal `json:"amount"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	PurchaseDate  *string          `json:"purchase_date"`
	Notes         *string          `json:"notes"`
}

type UpdateHoldingResponse struct {
	Updated *models.Holding `json:"updated"`
}

type DeleteHoldingRequest struct {
	CoinID string `json:"coin_id"`
}

type DeleteHoldingResponse struct {
	Deleted int64  `json:"deleted"`
	CoinID  string `json:"coin_id"`
}

type SellRequest struct {
	CoinID string          `json:"coin_id"`
	Amount decimal.Decimal `json:"amount"`
}

type SwapRequest struct {
	FromCoinID string          `json:"from_coin_id"`
	ToCoinID   string          `json:"to_coin_id"`
	Amount     decimal.Decimal `json:"amount"`
	VsCurrency string          `json:"vs_currency"`
}

type SwapResponse struct {
	Success       bool             `json:"success"`
	Holdings      []models.Holding `json:"holdings"`
	ReceiveAmount decimal.Decimal  `json:"receive_amount"`
}
