package controllers

import (
	"context"
	"strings"

	"cryptotracker/src/models"
	"cryptotracker/src/repositories"
	"cryptotracker/src/schemas"
	"cryptotracker/src/utils"

	"github.com/shopspring/decimal"
)

type WatchlistControllerI interface {
	GetWatchlist(ctx context.Context, userID int) ([]models.WatchlistItem, error)
	AddToWatchlist(ctx context.Context, userID int, req *schemas.AddWatchlistRequest) (*models.WatchlistItem, error)
	RemoveFromWatchlist(ctx context.Context, userID, watchlistID int) error
}

type WatchlistController struct {
	Watchlist repositories.WatchlistRepository
}

func NewWatchlistController(watchlist repositories.WatchlistRepository) *WatchlistController {
	return &WatchlistController{Watchlist: watchlist}
}

func (c *WatchlistController) GetWatchlist(ctx context.Context, userID int) ([]models.WatchlistItem, error) {
	return c.Watchlist.ListByUser(ctx, userID)
}

func (c *WatchlistController) AddToWatchlist(ctx context.Context, userID int, req *schemas.AddWatchlistRequest) (*models.WatchlistItem, error) {
	coinID := strings.TrimSpace(req.CoinID)
	if coinID == "" {
		return nil, utils.BadRequest("coin_id is required")
	}
	if req.TargetPrice != nil && req.TargetPrice.Sign() < 0 {
		return nil, utils.BadRequest("target_price cannot be negative")
	}

	existing, err := c.Watchlist.GetByUserAndCoin(ctx, userID, coinID)
	if err != nil {
		return nil, utils.InternalServerError("failed to check watchlist")
	}
	if existing != nil {
		return nil, utils.Conflict("Coin already in watchlist")
	}

	item := &models.WatchlistItem{
		UserID: userID,
		CoinID: coinID,
		Notes:  req.Notes,
	}
	if req.TargetPrice != nil {
		item.TargetPrice = decimal.NewNullDecimal(*req.TargetPrice)
	}
	if err := c.Watchlist.Create(ctx, item); err != nil {
		return nil, utils.InternalServerError("failed to add to watchlist")
	}
	return item, nil
}

func (c *WatchlistController) RemoveFromWatchlist(ctx context.Context, userID, watchlistID int) error {
	affected, err := c.Watchlist.Delete(ctx, userID, watchlistID)
	if err != nil {
		return utils.InternalServerError("failed to remove from watchlist")
	}
	if affected == 0 {
		return utils.NotFound("watchlist item not found")
	}
	return nil
}
