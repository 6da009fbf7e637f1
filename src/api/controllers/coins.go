package controllers

import (
	"context"
	"time"

	"cryptotracker/src/clients/coingecko"
	"cryptotracker/src/utils"
)

type CoinsControllerI interface {
	GetMarkets(ctx context.Context, vsCurrency string, perPage, page int, order string) ([]coingecko.CoinMarketData, error)
	GetCoin(ctx context.Context, coinID string) (*coingecko.CoinDetails, error)
	GetPrice(ctx context.Context, coinID string, vsCurrencies []string) (map[string]interface{}, error)
	Search(ctx context.Context, query string) (*coingecko.SearchResult, error)
	GetTrending(ctx context.Context) (*coingecko.TrendingCoins, error)
	GetSupportedCurrencies(ctx context.Context) ([]string, error)
}

// CoinsController proxies the market-data API. The supported-currencies list
// changes rarely, so it sits in an in-process cache for an hour.
type CoinsController struct {
	CoinGecko     coingecko.CoinGeckoServiceClientI
	currencyCache *utils.Cache[[]string]
}

func NewCoinsController(client coingecko.CoinGeckoServiceClientI) *CoinsController {
	return &CoinsController{
		CoinGecko:     client,
		currencyCache: utils.NewCache[[]string](),
	}
}

func (c *CoinsController) GetMarkets(ctx context.Context, vsCurrency string, perPage, page int, order string) ([]coingecko.CoinMarketData, error) {
	return c.CoinGecko.GetCoinsMarkets(ctx, vsCurrency, perPage, page, order)
}

func (c *CoinsController) GetCoin(ctx context.Context, coinID string) (*coingecko.CoinDetails, error) {
	if coinID == "" {
		return nil, utils.BadRequest("coin id required")
	}
	return c.CoinGecko.GetCoinDetails(ctx, coinID)
}

// GetPrice returns the quotes for one coin, or nil data when the oracle does
// not know the coin.
func (c *CoinsController) GetPrice(ctx context.Context, coinID string, vsCurrencies []string) (map[string]interface{}, error) {
	if coinID == "" {
		return nil, utils.BadRequest("coin id required")
	}
	if len(vsCurrencies) == 0 {
		vsCurrencies = []string{"usd"}
	}

	prices, err := c.CoinGecko.GetSimplePrice(ctx, []string{coinID}, vsCurrencies)
	if err != nil {
		return nil, err
	}

	quotes, ok := prices[coinID]
	if !ok {
		return map[string]interface{}{"success": true, "data": nil}, nil
	}
	return map[string]interface{}{"success": true, "data": quotes}, nil
}

func (c *CoinsController) Search(ctx context.Context, query string) (*coingecko.SearchResult, error) {
	if query == "" {
		return nil, utils.BadRequest("query required")
	}
	return c.CoinGecko.SearchCoins(ctx, query)
}

func (c *CoinsController) GetTrending(ctx context.Context) (*coingecko.TrendingCoins, error) {
	return c.CoinGecko.GetTrendingCoins(ctx)
}

func (c *CoinsController) GetSupportedCurrencies(ctx context.Context) ([]string, error) {
	if cached, ok := c.currencyCache.Get(); ok {
		return cached, nil
	}

	currencies, err := c.CoinGecko.GetSupportedVsCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	c.currencyCache.Set(currencies, time.Hour)
	return currencies, nil
}
