package schemas

import (
	"cryptotracker/src/models"

	"github.com/shopspring/decimal"
)

type WatchlistResponse struct {
	Watchlist []models.WatchlistItem `json:"watchlist"`
}

type AddWatchlistRequest struct {
	CoinID      string           `json:"coin_id"`
	Notes       *string          `json:"notes"`
	TargetPrice *decimal.Decimal `json:"target_price"`
}

type AddWatchlistResponse struct {
	Added *models.WatchlistItem `json:"added"`
}
