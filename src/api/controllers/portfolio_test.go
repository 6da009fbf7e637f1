package controllers_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"cryptotracker/src/api/controllers"
	"cryptotracker/src/clients/coingecko"
	"cryptotracker/src/models"
	"cryptotracker/src/repositories"
	"cryptotracker/src/schemas"
	"cryptotracker/src/utils"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUserID = 1

// fakeTx satisfies pgx.Tx for the methods the controller touches. The
// embedded interface panics on anything else, which is exactly what we want
// in a test.
type fakeTx struct {
	pgx.Tx
	commits   int
	rollbacks int
}

func (t *fakeTx) Commit(_ context.Context) error {
	t.commits++
	return nil
}

func (t *fakeTx) Rollback(_ context.Context) error {
	t.rollbacks++
	return nil
}

type fakeDB struct {
	tx       *fakeTx
	beginErr error
}

func (db *fakeDB) Begin(_ context.Context) (pgx.Tx, error) {
	if db.beginErr != nil {
		return nil, db.beginErr
	}
	return db.tx, nil
}

// fakeHoldingRepo keeps one user's holdings in a map keyed by coin id.
type fakeHoldingRepo struct {
	holdings map[string]*models.Holding
	nextID   int
}

func newFakeHoldingRepo() *fakeHoldingRepo {
	return &fakeHoldingRepo{holdings: map[string]*models.Holding{}, nextID: 1}
}

func (r *fakeHoldingRepo) add(coinID string, amount string, purchasePrice string) *models.Holding {
	h := &models.Holding{
		PortfolioID: r.nextID,
		UserID:      testUserID,
		CoinID:      coinID,
		Amount:      decimal.RequireFromString(amount),
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if purchasePrice != "" {
		h.PurchasePrice = decimal.NewNullDecimal(decimal.RequireFromString(purchasePrice))
	}
	r.nextID++
	r.holdings[coinID] = h
	return h
}

func (r *fakeHoldingRepo) ListByUser(_ context.Context, userID int, _ pgx.Tx) ([]models.Holding, error) {
	out := []models.Holding{}
	for _, h := range r.holdings {
		if h.UserID == userID {
			out = append(out, *h)
		}
	}
	return out, nil
}

func (r *fakeHoldingRepo) GetByUserAndCoin(_ context.Context, userID int, coinID string, _ pgx.Tx) (*models.Holding, error) {
	h, ok := r.holdings[coinID]
	if !ok || h.UserID != userID {
		return nil, nil
	}
	copied := *h
	return &copied, nil
}

func (r *fakeHoldingRepo) GetByUserAndCoinForUpdate(ctx context.Context, userID int, coinID string, tx pgx.Tx) (*models.Holding, error) {
	return r.GetByUserAndCoin(ctx, userID, coinID, tx)
}

func (r *fakeHoldingRepo) Create(_ context.Context, h *models.Holding, _ pgx.Tx) error {
	h.PortfolioID = r.nextID
	r.nextID++
	h.CreatedAt = time.Now()
	h.UpdatedAt = time.Now()
	copied := *h
	r.holdings[h.CoinID] = &copied
	return nil
}

func (r *fakeHoldingRepo) UpdateAmount(_ context.Context, portfolioID int, amount decimal.Decimal, _ pgx.Tx) error {
	for _, h := range r.holdings {
		if h.PortfolioID == portfolioID {
			h.Amount = amount
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeHoldingRepo) UpdateFields(_ context.Context, userID int, coinID string, fields repositories.HoldingUpdate, _ pgx.Tx) (*models.Holding, error) {
	h, ok := r.holdings[coinID]
	if !ok || h.UserID != userID {
		return nil, nil
	}
	if fields.Amount != nil {
		h.Amount = *fields.Amount
	}
	if fields.PurchasePrice != nil {
		h.PurchasePrice = decimal.NewNullDecimal(*fields.PurchasePrice)
	}
	if fields.PurchaseDate != nil {
		h.PurchaseDate = fields.PurchaseDate
	}
	if fields.Notes != nil {
		h.Notes = fields.Notes
	}
	copied := *h
	return &copied, nil
}

func (r *fakeHoldingRepo) Delete(_ context.Context, portfolioID int, _ pgx.Tx) error {
	for coinID, h := range r.holdings {
		if h.PortfolioID == portfolioID {
			delete(r.holdings, coinID)
			return nil
		}
	}
	return pgx.ErrNoRows
}

func (r *fakeHoldingRepo) DeleteByUserAndCoin(_ context.Context, userID int, coinID string, _ pgx.Tx) (int64, error) {
	h, ok := r.holdings[coinID]
	if !ok || h.UserID != userID {
		return 0, nil
	}
	delete(r.holdings, coinID)
	return 1, nil
}

type fakeTransactionRepo struct {
	created   []models.Transaction
	createErr error
}

func (r *fakeTransactionRepo) ListByUser(_ context.Context, _ int) ([]models.Transaction, error) {
	return r.created, nil
}

func (r *fakeTransactionRepo) Create(_ context.Context, t *models.Transaction, _ pgx.Tx) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.created = append(r.created, *t)
	return nil
}

type fakeUserRepo struct {
	user *models.User
}

func (r *fakeUserRepo) List(_ context.Context) ([]models.User, error) { return nil, nil }
func (r *fakeUserRepo) GetByID(_ context.Context, _ int) (*models.User, error) {
	return r.user, nil
}
func (r *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*models.User, error) {
	return r.user, nil
}
func (r *fakeUserRepo) Create(_ context.Context, _ *models.User) error             { return nil }
func (r *fakeUserRepo) UpdatePassword(_ context.Context, _ int, _ string) error    { return nil }
func (r *fakeUserRepo) UpdatePreference(_ context.Context, _ int, _, _ string) error {
	return nil
}
func (r *fakeUserRepo) SetDisabled(_ context.Context, _ int, _ bool) error { return nil }
func (r *fakeUserRepo) Delete(_ context.Context, _ int) error              { return nil }

type fakePriceSource struct {
	prices coingecko.SimplePriceData
	err    error
}

func (s *fakePriceSource) GetSimplePrice(_ context.Context, _ []string, _ []string) (coingecko.SimplePriceData, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.prices, nil
}

func usdPrices(pairs map[string]string) coingecko.SimplePriceData {
	data := coingecko.SimplePriceData{}
	for coinID, price := range pairs {
		data[coinID] = map[string]decimal.Decimal{"usd": decimal.RequireFromString(price)}
	}
	return data
}

type portfolioFixture struct {
	controller *controllers.PortfolioController
	holdings   *fakeHoldingRepo
	txLog      *fakeTransactionRepo
	tx         *fakeTx
	prices     *fakePriceSource
}

func newPortfolioFixture(prices *fakePriceSource) *portfolioFixture {
	holdings := newFakeHoldingRepo()
	txLog := &fakeTransactionRepo{}
	tx := &fakeTx{}
	controller := controllers.NewPortfolioController(
		&fakeDB{tx: tx}, holdings, txLog, &fakeUserRepo{}, prices)
	return &portfolioFixture{
		controller: controller,
		holdings:   holdings,
		txLog:      txLog,
		tx:         tx,
		prices:     prices,
	}
}

func httpCode(t *testing.T, err error) int {
	t.Helper()
	var httpErr *utils.HTTPError
	require.ErrorAs(t, err, &httpErr)
	return httpErr.Code
}

func TestSwapFullBalanceDeletesSourceAndCreatesDestination(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{
		prices: usdPrices(map[string]string{"bitcoin": "50000", "ethereum": "2500"}),
	})
	f.holdings.add("bitcoin", "2", "45000")

	resp, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
		FromCoinID: "bitcoin",
		ToCoinID:   "ethereum",
		Amount:     decimal.RequireFromString("2"),
	})
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.True(t, resp.Success)
	assert.True(t, resp.ReceiveAmount.Equal(decimal.RequireFromString("40")),
		"expected 40 ethereum, got %s", resp.ReceiveAmount)

	_, exists := f.holdings.holdings["bitcoin"]
	assert.False(t, exists, "fully swapped holding should be removed")

	eth := f.holdings.holdings["ethereum"]
	require.NotNil(t, eth)
	assert.True(t, eth.Amount.Equal(decimal.RequireFromString("40")))
	require.True(t, eth.PurchasePrice.Valid)
	assert.True(t, eth.PurchasePrice.Decimal.Equal(decimal.RequireFromString("2500")))
	require.NotNil(t, eth.Notes)
	assert.Equal(t, "Swapped from bitcoin", *eth.Notes)

	assert.Equal(t, 1, f.tx.commits)
}

func TestSwapPartialBalanceDecrementsSource(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{
		prices: usdPrices(map[string]string{"bitcoin": "50000", "ethereum": "2500"}),
	})
	f.holdings.add("bitcoin", "5", "45000")

	resp, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
		FromCoinID: "bitcoin",
		ToCoinID:   "ethereum",
		Amount:     decimal.RequireFromString("2"),
	})
	require.NoError(t, err)
	assert.True(t, resp.ReceiveAmount.Equal(decimal.RequireFromString("40")))

	btc := f.holdings.holdings["bitcoin"]
	require.NotNil(t, btc)
	assert.True(t, btc.Amount.Equal(decimal.RequireFromString("3")))
	require.True(t, btc.PurchasePrice.Valid)
	assert.True(t, btc.PurchasePrice.Decimal.Equal(decimal.RequireFromString("45000")),
		"source cost basis must not change on a partial swap")
}

func TestSwapIntoExistingHoldingKeepsItsCostBasis(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{
		prices: usdPrices(map[string]string{"bitcoin": "50000", "ethereum": "2500"}),
	})
	f.holdings.add("bitcoin", "1", "45000")
	f.holdings.add("ethereum", "10", "1800")

	resp, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
		FromCoinID: "bitcoin",
		ToCoinID:   "ethereum",
		Amount:     decimal.RequireFromString("1"),
	})
	require.NoError(t, err)
	assert.True(t, resp.ReceiveAmount.Equal(decimal.RequireFromString("20")))

	eth := f.holdings.holdings["ethereum"]
	require.NotNil(t, eth)
	assert.True(t, eth.Amount.Equal(decimal.RequireFromString("30")))
	require.True(t, eth.PurchasePrice.Valid)
	assert.True(t, eth.PurchasePrice.Decimal.Equal(decimal.RequireFromString("1800")),
		"existing destination keeps its prior purchase price")
}

func TestSwapRecordsAuditTransaction(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{
		prices: usdPrices(map[string]string{"bitcoin": "50000", "ethereum": "2500"}),
	})
	f.holdings.add("bitcoin", "2", "")

	_, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
		FromCoinID: "bitcoin",
		ToCoinID:   "ethereum",
		Amount:     decimal.RequireFromString("2"),
	})
	require.NoError(t, err)

	require.Len(t, f.txLog.created, 1)
	logged := f.txLog.created[0]
	assert.Equal(t, models.TransactionTypeSwap, logged.TransactionType)
	assert.Equal(t, "bitcoin", logged.CoinID)
	assert.True(t, logged.Amount.Equal(decimal.RequireFromString("2")))
	require.NotNil(t, logged.ToCoinID)
	assert.Equal(t, "ethereum", *logged.ToCoinID)
	require.True(t, logged.ToAmount.Valid)
	assert.True(t, logged.ToAmount.Decimal.Equal(decimal.RequireFromString("40")))
	require.True(t, logged.Price.Valid)
	assert.True(t, logged.Price.Decimal.Equal(decimal.RequireFromString("50000")))
	require.True(t, logged.TotalValue.Valid)
	assert.True(t, logged.TotalValue.Decimal.Equal(decimal.RequireFromString("100000")))
}

func TestSwapSucceedsWhenAuditWriteFails(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{
		prices: usdPrices(map[string]string{"bitcoin": "50000", "ethereum": "2500"}),
	})
	f.holdings.add("bitcoin", "2", "")
	f.txLog.createErr = errors.New("transactions table is on fire")

	resp, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
		FromCoinID: "bitcoin",
		ToCoinID:   "ethereum",
		Amount:     decimal.RequireFromString("2"),
	})
	require.NoError(t, err, "audit failure must not surface")
	assert.True(t, resp.Success)
	assert.Equal(t, 1, f.tx.commits)
}

func TestSwapInsufficientBalance(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{
		prices: usdPrices(map[string]string{"bitcoin": "50000", "ethereum": "2500"}),
	})
	f.holdings.add("bitcoin", "1", "45000")

	_, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
		FromCoinID: "bitcoin",
		ToCoinID:   "ethereum",
		Amount:     decimal.RequireFromString("2"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	assert.Contains(t, err.Error(), "you cannot swap more than you hold")

	btc := f.holdings.holdings["bitcoin"]
	require.NotNil(t, btc)
	assert.True(t, btc.Amount.Equal(decimal.RequireFromString("1")), "rejected swap must not mutate the ledger")
	_, exists := f.holdings.holdings["ethereum"]
	assert.False(t, exists)
	assert.Empty(t, f.txLog.created)
	assert.Zero(t, f.tx.commits)
}

func TestSwapRejectsSameCoin(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{})
	f.holdings.add("bitcoin", "2", "")

	_, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
		FromCoinID: "bitcoin",
		ToCoinID:   "bitcoin",
		Amount:     decimal.RequireFromString("1"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	assert.Contains(t, err.Error(), "choose a different coin to receive")
}

func TestSwapRejectsNonPositiveAmount(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{})

	for _, amount := range []string{"0", "-1"} {
		_, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
			FromCoinID: "bitcoin",
			ToCoinID:   "ethereum",
			Amount:     decimal.RequireFromString(amount),
		})
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	}
}

func TestSwapUnknownSourceCoin(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{
		prices: usdPrices(map[string]string{"bitcoin": "50000", "ethereum": "2500"}),
	})

	_, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
		FromCoinID: "bitcoin",
		ToCoinID:   "ethereum",
		Amount:     decimal.RequireFromString("1"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	assert.Contains(t, err.Error(), "you do not hold this coin")
}

func TestSwapOracleFailureIsBadGateway(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{err: coingecko.ErrOracleUnavailable})
	f.holdings.add("bitcoin", "2", "")

	_, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
		FromCoinID: "bitcoin",
		ToCoinID:   "ethereum",
		Amount:     decimal.RequireFromString("1"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, httpCode(t, err))
	assert.Contains(t, err.Error(), "failed to fetch prices for swap")

	btc := f.holdings.holdings["bitcoin"]
	require.NotNil(t, btc)
	assert.True(t, btc.Amount.Equal(decimal.RequireFromString("2")))
	assert.Zero(t, f.tx.commits)
}

func TestSwapZeroDestinationPriceIsBadGateway(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{
		prices: usdPrices(map[string]string{"bitcoin": "50000", "ethereum": "0"}),
	})
	f.holdings.add("bitcoin", "2", "")

	_, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
		FromCoinID: "bitcoin",
		ToCoinID:   "ethereum",
		Amount:     decimal.RequireFromString("1"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, httpCode(t, err))
}

func TestSwapMissingDestinationPriceIsBadGateway(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{
		prices: usdPrices(map[string]string{"bitcoin": "50000"}),
	})
	f.holdings.add("bitcoin", "2", "")

	_, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
		FromCoinID: "bitcoin",
		ToCoinID:   "ethereum",
		Amount:     decimal.RequireFromString("1"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadGateway, httpCode(t, err))
}

func TestSwapReturnsRefreshedHoldings(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{
		prices: usdPrices(map[string]string{"bitcoin": "50000", "ethereum": "2500"}),
	})
	f.holdings.add("bitcoin", "5", "")

	resp, err := f.controller.Swap(context.Background(), testUserID, &schemas.SwapRequest{
		FromCoinID: "bitcoin",
		ToCoinID:   "ethereum",
		Amount:     decimal.RequireFromString("2"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Holdings, 2)
	byCoin := map[string]models.Holding{}
	for _, h := range resp.Holdings {
		byCoin[h.CoinID] = h
	}
	assert.True(t, byCoin["bitcoin"].Amount.Equal(decimal.RequireFromString("3")))
	assert.True(t, byCoin["ethereum"].Amount.Equal(decimal.RequireFromString("40")))
}

func TestSellFullPositionDeletesHolding(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{})
	f.holdings.add("bitcoin", "2", "")

	err := f.controller.Sell(context.Background(), testUserID, &schemas.SellRequest{
		CoinID: "bitcoin",
		Amount: decimal.RequireFromString("2"),
	})
	require.NoError(t, err)

	_, exists := f.holdings.holdings["bitcoin"]
	assert.False(t, exists)
	assert.Equal(t, 1, f.tx.commits)

	require.Len(t, f.txLog.created, 1)
	assert.Equal(t, models.TransactionTypeSell, f.txLog.created[0].TransactionType)
}

func TestSellPartialPositionKeepsRemainder(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{})
	f.holdings.add("bitcoin", "5", "45000")

	err := f.controller.Sell(context.Background(), testUserID, &schemas.SellRequest{
		CoinID: "bitcoin",
		Amount: decimal.RequireFromString("2"),
	})
	require.NoError(t, err)

	btc := f.holdings.holdings["bitcoin"]
	require.NotNil(t, btc)
	assert.True(t, btc.Amount.Equal(decimal.RequireFromString("3")))
}

func TestSellMoreThanHeld(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{})
	f.holdings.add("bitcoin", "1", "")

	err := f.controller.Sell(context.Background(), testUserID, &schemas.SellRequest{
		CoinID: "bitcoin",
		Amount: decimal.RequireFromString("2"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
	assert.Contains(t, err.Error(), "you cannot sell more than you hold")
	assert.Zero(t, f.tx.commits)
}

func TestCreateHoldingValidation(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{})

	_, err := f.controller.CreateHolding(context.Background(), testUserID, &schemas.CreateHoldingRequest{
		CoinID: "",
		Amount: decimal.RequireFromString("1"),
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))

	_, err = f.controller.CreateHolding(context.Background(), testUserID, &schemas.CreateHoldingRequest{
		CoinID: "bitcoin",
		Amount: decimal.RequireFromString("0"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be a positive number")

	badDate := "29-08-2026"
	_, err = f.controller.CreateHolding(context.Background(), testUserID, &schemas.CreateHoldingRequest{
		CoinID:       "bitcoin",
		Amount:       decimal.RequireFromString("1"),
		PurchaseDate: &badDate,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "purchase_date must be YYYY-MM-DD")
}

func TestCreateHolding(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{})

	price := decimal.RequireFromString("45000")
	date := "2026-01-15"
	holding, err := f.controller.CreateHolding(context.Background(), testUserID, &schemas.CreateHoldingRequest{
		CoinID:        "bitcoin",
		Amount:        decimal.RequireFromString("1.5"),
		PurchasePrice: &price,
		PurchaseDate:  &date,
	})
	require.NoError(t, err)
	require.NotNil(t, holding)
	assert.NotZero(t, holding.PortfolioID)
	require.True(t, holding.PurchasePrice.Valid)
	require.NotNil(t, holding.PurchaseDate)
	assert.Equal(t, "2026-01-15", holding.PurchaseDate.Format("2006-01-02"))
}

func TestUpdateHoldingNotFound(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{})

	amount := decimal.RequireFromString("2")
	_, err := f.controller.UpdateHolding(context.Background(), testUserID, &schemas.UpdateHoldingRequest{
		CoinID: "bitcoin",
		Amount: &amount,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestDeleteHoldingNotFound(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{})

	_, err := f.controller.DeleteHolding(context.Background(), testUserID, "bitcoin")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, httpCode(t, err))
}

func TestGetValuationDegradesWithoutPrices(t *testing.T) {
	f := newPortfolioFixture(&fakePriceSource{err: coingecko.ErrOracleUnavailable})
	f.holdings.add("bitcoin", "2", "45000")

	resp, err := f.controller.GetValuation(context.Background(), testUserID, "usd", "", false)
	require.NoError(t, err, "valuation must degrade, not fail, when the oracle is down")
	require.Len(t, resp.Rows, 1)
	assert.Nil(t, resp.Rows[0].CurrentPrice)
	assert.Nil(t, resp.Rows[0].CurrentValue)
	require.NotNil(t, resp.Rows[0].CostBasis)
	assert.True(t, resp.Rows[0].CostBasis.Equal(decimal.RequireFromString("90000")))
}

func TestGetValuationUsesUserPreferredCurrency(t *testing.T) {
	holdings := newFakeHoldingRepo()
	holdings.add("bitcoin", "1", "")
	prices := &fakePriceSource{prices: coingecko.SimplePriceData{
		"bitcoin": map[string]decimal.Decimal{"eur": decimal.RequireFromString("42000")},
	}}
	users := &fakeUserRepo{user: &models.User{UserID: testUserID, PCurrency: "EUR"}}
	controller := controllers.NewPortfolioController(
		&fakeDB{tx: &fakeTx{}}, holdings, &fakeTransactionRepo{}, users, prices)

	resp, err := controller.GetValuation(context.Background(), testUserID, "", "", false)
	require.NoError(t, err)
	assert.Equal(t, "eur", resp.VsCurrency)
	require.Len(t, resp.Rows, 1)
	require.NotNil(t, resp.Rows[0].CurrentPrice)
	assert.True(t, resp.Rows[0].CurrentPrice.Equal(decimal.RequireFromString("42000")))
}
