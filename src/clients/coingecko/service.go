package coingecko

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"cryptotracker/src/config"
	"cryptotracker/src/utils"
	redis_utils "cryptotracker/src/utils/redis"
	requests "cryptotracker/src/utils/requests"
)

// ErrOracleUnavailable wraps any transport or upstream failure of the price
// oracle. Callers must abort rather than assume a default price.
var ErrOracleUnavailable = errors.New("price oracle unavailable")

// priceCacheTTL is the revalidation window for spot prices, matching the
// upstream's own 60s revalidation.
const priceCacheTTL = 60 * time.Second

type CoinGeckoServiceClientI interface {
	GetSimplePrice(ctx context.Context, coinIDs []string, vsCurrencies []string) (SimplePriceData, error)
	GetCoinsMarkets(ctx context.Context, vsCurrency string, perPage, page int, order string) ([]CoinMarketData, error)
	GetCoinDetails(ctx context.Context, coinID string) (*CoinDetails, error)
	SearchCoins(ctx context.Context, query string) (*SearchResult, error)
	GetTrendingCoins(ctx context.Context) (*TrendingCoins, error)
	GetSupportedVsCurrencies(ctx context.Context) ([]string, error)
}

// CoinGeckoServiceClient talks to the CoinGecko REST API. Redis, when
// configured, caches simple-price responses for a short window so bursts of
// portfolio views do not hammer the upstream.
type CoinGeckoServiceClient struct {
	API     *requests.ExternalAPIService
	BaseURL string
	APIKey  string
	Cache   *redis_utils.RedisHandler
}

// NewClient creates a new instance of CoinGeckoServiceClient. cache may be
// nil, in which case every call goes to the upstream.
func NewClient(cfg *config.Config, cache *redis_utils.RedisHandler) *CoinGeckoServiceClient {
	baseURL := cfg.ExternalClients.CoinGecko.BaseURL
	if baseURL == "" {
		baseURL = "https://api.coingecko.com/api/v3"
	}
	return &CoinGeckoServiceClient{
		API:     requests.NewExternalAPIService(),
		BaseURL: baseURL,
		APIKey:  cfg.ExternalClients.CoinGecko.APIKey,
		Cache:   cache,
	}
}

func (c *CoinGeckoServiceClient) getJSON(ctx context.Context, endpoint string, params url.Values, out interface{}) error {
	var resp *http.Response
	var err error
	if c.APIKey != "" {
		// Demo keys authenticate via header; GetWithHeaders also rejects
		// non-2xx statuses before we ever see the body.
		headers := map[string]string{"x-cg-demo-api-key": c.APIKey}
		resp, err = c.API.GetWithHeaders(ctx, c.BaseURL+endpoint, params, headers)
	} else {
		resp, err = c.API.Get(ctx, c.BaseURL+endpoint, params)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: status %d: %s", ErrOracleUnavailable, resp.StatusCode, strings.TrimSpace(string(body)))
	}

	responseBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}

	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("%w: %v", ErrOracleUnavailable, err)
	}
	return nil
}

// GetSimplePrice fetches current spot prices for the given coins in the given
// quote currencies. Currency codes are lower-cased before the call. Unknown
// coin/currency pairs are simply absent from the result.
func (c *CoinGeckoServiceClient) GetSimplePrice(ctx context.Context, coinIDs []string, vsCurrencies []string) (SimplePriceData, error) {
	if len(coinIDs) == 0 || len(vsCurrencies) == 0 {
		return nil, utils.BadRequest("coin ids and vs currencies must not be empty")
	}

	ids := make([]string, 0, len(coinIDs))
	for _, id := range coinIDs {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	currencies := make([]string, 0, len(vsCurrencies))
	for _, cur := range vsCurrencies {
		cur = strings.ToLower(strings.TrimSpace(cur))
		if cur != "" {
			currencies = append(currencies, cur)
		}
	}
	sort.Strings(ids)
	sort.Strings(currencies)

	cacheKey := redis_utils.CacheKey("simple_price", strings.Join(ids, ","), strings.Join(currencies, ","))
	if c.Cache != nil {
		var cached SimplePriceData
		if err := c.Cache.Get(ctx, cacheKey, &cached); err == nil {
			return cached, nil
		}
	}

	params := url.Values{}
	params.Set("ids", strings.Join(ids, ","))
	params.Set("vs_currencies", strings.Join(currencies, ","))

	var prices SimplePriceData
	if err := c.getJSON(ctx, "/simple/price", params, &prices); err != nil {
		return nil, err
	}

	if c.Cache != nil {
		if err := c.Cache.Set(ctx, cacheKey, prices, priceCacheTTL); err != nil {
			utils.LoggerFromContext(ctx).WithError(err).Warn("could not cache simple price response")
		}
	}
	return prices, nil
}

// GetCoinsMarkets fetches the paginated market table for a quote currency.
func (c *CoinGeckoServiceClient) GetCoinsMarkets(ctx context.Context, vsCurrency string, perPage, page int, order string) ([]CoinMarketData, error) {
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	if perPage <= 0 {
		perPage = 100
	}
	if page <= 0 {
		page = 1
	}
	if order == "" {
		order = "market_cap_desc"
	}

	params := url.Values{}
	params.Set("vs_currency", strings.ToLower(vsCurrency))
	params.Set("per_page", strconv.Itoa(perPage))
	params.Set("page", strconv.Itoa(page))
	params.Set("order", order)
	params.Set("sparkline", "false")

	var markets []CoinMarketData
	if err := c.getJSON(ctx, "/coins/markets", params, &markets); err != nil {
		return nil, err
	}
	return markets, nil
}

// GetCoinDetails fetches a single coin with its market data block.
func (c *CoinGeckoServiceClient) GetCoinDetails(ctx context.Context, coinID string) (*CoinDetails, error) {
	params := url.Values{}
	params.Set("localization", "false")
	params.Set("tickers", "false")
	params.Set("market_data", "true")
	params.Set("community_data", "false")
	params.Set("developer_data", "false")
	params.Set("sparkline", "false")

	var details CoinDetails
	if err := c.getJSON(ctx, "/coins/"+url.PathEscape(coinID), params, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// SearchCoins queries the upstream search endpoint.
func (c *CoinGeckoServiceClient) SearchCoins(ctx context.Context, query string) (*SearchResult, error) {
	params := url.Values{}
	params.Set("query", query)

	var result SearchResult
	if err := c.getJSON(ctx, "/search", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// GetTrendingCoins fetches the trending list.
func (c *CoinGeckoServiceClient) GetTrendingCoins(ctx context.Context) (*TrendingCoins, error) {
	var trending TrendingCoins
	if err := c.getJSON(ctx, "/search/trending", nil, &trending); err != nil {
		return nil, err
	}
	return &trending, nil
}

// GetSupportedVsCurrencies fetches the quote currencies the oracle supports.
func (c *CoinGeckoServiceClient) GetSupportedVsCurrencies(ctx context.Context) ([]string, error) {
	var currencies []string
	if err := c.getJSON(ctx, "/simple/supported_vs_currencies", nil, &currencies); err != nil {
		return nil, err
	}
	return currencies, nil
}
