package coingecko

import (
	"github.com/shopspring/decimal"
)

// SimplePriceData maps coin id -> quote currency -> spot price. A missing
// entry means the oracle does not price that pair; callers must not treat it
// as zero.
type SimplePriceData map[string]map[string]decimal.Decimal

type Coin struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

type CoinMarketData struct {
	ID                       string          `json:"id"`
	Symbol                   string          `json:"symbol"`
	Name                     string          `json:"name"`
	Image                    string          `json:"image"`
	CurrentPrice             decimal.Decimal `json:"current_price"`
	MarketCap                decimal.Decimal `json:"market_cap"`
	MarketCapRank            int             `json:"market_cap_rank"`
	TotalVolume              decimal.Decimal `json:"total_volume"`
	High24h                  decimal.Decimal `json:"high_24h"`
	Low24h                   decimal.Decimal `json:"low_24h"`
	PriceChange24h           decimal.Decimal `json:"price_change_24h"`
	PriceChangePercentage24h decimal.Decimal `json:"price_change_percentage_24h"`
	CirculatingSupply        decimal.Decimal `json:"circulating_supply"`
	LastUpdated              string          `json:"last_updated"`
}

type CoinDetails struct {
	ID          string `json:"id"`
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Description struct {
		En string `json:"en"`
	} `json:"description"`
	Image struct {
		Thumb string `json:"thumb"`
		Small string `json:"small"`
		Large string `json:"large"`
	} `json:"image"`
	MarketData struct {
		CurrentPrice             map[string]decimal.Decimal `json:"current_price"`
		MarketCap                map[string]decimal.Decimal `json:"market_cap"`
		TotalVolume              map[string]decimal.Decimal `json:"total_volume"`
		High24h                  map[string]decimal.Decimal `json:"high_24h"`
		Low24h                   map[string]decimal.Decimal `json:"low_24h"`
		PriceChange24h           decimal.Decimal            `json:"price_change_24h"`
		PriceChangePercentage24h decimal.Decimal            `json:"price_change_percentage_24h"`
		MarketCapRank            int                        `json:"market_cap_rank"`
		CirculatingSupply        decimal.Decimal            `json:"circulating_supply"`
	} `json:"market_data"`
}

type SearchResult struct {
	Coins []struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		Symbol        string `json:"symbol"`
		MarketCapRank int    `json:"market_cap_rank"`
		Thumb         string `json:"thumb"`
		Large         string `json:"large"`
	} `json:"coins"`
}

type TrendingCoins struct {
	Coins []struct {
		Item struct {
			ID     string `json:"id"`
			Name   string `json:"name"`
			Symbol string `json:"symbol"`
			Thumb  string `json:"thumb"`
		} `json:"item"`
	} `json:"coins"`
}
