package controllers

import (
	"context"
	"strings"
	"time"

	"cryptotracker/src/models"
	"cryptotracker/src/repositories"
	"cryptotracker/src/schemas"
	"cryptotracker/src/services"
	"cryptotracker/src/utils"

	"github.com/shopspring/decimal"
)

type PortfolioControllerI interface {
	GetHoldings(ctx context.Context, userID int) ([]models.Holding, error)
	CreateHolding(ctx context.Context, userID int, req *schemas.CreateHoldingRequest) (*models.Holding, error)
	UpdateHolding(ctx context.Context, userID int, req *schemas.UpdateHoldingRequest) (*models.Holding, error)
	DeleteHolding(ctx context.Context, userID int, coinID string) (int64, error)
	Sell(ctx context.Context, userID int, req *schemas.SellRequest) error
	Swap(ctx context.Context, userID int, req *schemas.SwapRequest) (*schemas.SwapResponse, error)
	GetValuation(ctx context.Context, userID int, vsCurrency string, sortKey services.SortKey, desc bool) (*schemas.PortfolioValuationResponse, error)
}

type PortfolioController struct {
	DB           TxBeginner
	Holdings     repositories.HoldingRepository
	Transactions repositories.TransactionRepository
	Users        repositories.UserRepository
	Prices       PriceSource
}

func NewPortfolioController(db TxBeginner, holdings repositories.HoldingRepository,
	transactions repositories.TransactionRepository, users repositories.UserRepository,
	prices PriceSource) *PortfolioController {
	return &PortfolioController{
		DB:           db,
		Holdings:     holdings,
		Transactions: transactions,
		Users:        users,
		Prices:       prices,
	}
}

func (c *PortfolioController) GetHoldings(ctx context.Context, userID int) ([]models.Holding, error) {
	return c.Holdings.ListByUser(ctx, userID, nil)
}

func (c *PortfolioController) CreateHolding(ctx context.Context, userID int, req *schemas.CreateHoldingRequest) (*models.Holding, error) {
	coinID := strings.TrimSpace(req.CoinID)
	if coinID == "" {
		return nil, utils.BadRequest("coin_id required")
	}
	if !req.Amount.IsPositive() {
		return nil, utils.BadRequest("amount must be a positive number")
	}
	if req.PurchasePrice != nil && req.PurchasePrice.IsNegative() {
		return nil, utils.BadRequest("purchase_price must be a non-negative number")
	}

	purchaseDate, err := parseDate(req.PurchaseDate)
	if err != nil {
		return nil, err
	}

	holding := &models.Holding{
		UserID:       userID,
		CoinID:       coinID,
		Amount:       req.Amount,
		PurchaseDate: purchaseDate,
		Notes:        req.Notes,
	}
	if req.PurchasePrice != nil {
		holding.PurchasePrice = decimal.NewNullDecimal(*req.PurchasePrice)
	}

	if err := c.Holdings.Create(ctx, holding, nil); err != nil {
		return nil, err
	}
	return holding, nil
}

func (c *PortfolioController) UpdateHolding(ctx context.Context, userID int, req *schemas.UpdateHoldingRequest) (*models.Holding, error) {
	coinID := strings.TrimSpace(req.CoinID)
	if coinID == "" {
		return nil, utils.BadRequest("coin_id required")
	}

	existing, err := c.Holdings.GetByUserAndCoin(ctx, userID, coinID, nil)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NotFound("holding not found")
	}

	fields := repositories.HoldingUpdate{}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, utils.BadRequest("amount must be positive")
		}
		fields.Amount = req.Amount
	}
	if req.PurchasePrice != nil {
		if req.PurchasePrice.IsNegative() {
			return nil, utils.BadRequest("invalid purchase_price")
		}
		fields.PurchasePrice = req.PurchasePrice
	}
	if req.PurchaseDate != nil {
		date, err := parseDate(req.PurchaseDate)
		if err != nil {
			return nil, err
		}
		fields.PurchaseDate = date
	}
	if req.Notes != nil {
		fields.Notes = req.Notes
	}
	if fields.Amount == nil && fields.PurchasePrice == nil && fields.PurchaseDate == nil && fields.Notes == nil {
		return nil, utils.BadRequest("no fields to update")
	}

	updated, err := c.Holdings.UpdateFields(ctx, userID, coinID, fields, nil)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, utils.NotFound("holding not found")
	}
	return updated, nil
}

func (c *PortfolioController) DeleteHolding(ctx context.Context, userID int, coinID string) (int64, error) {
	coinID = strings.TrimSpace(coinID)
	if coinID == "" {
		return 0, utils.BadRequest("coin_id required")
	}

	deleted, err := c.Holdings.DeleteByUserAndCoin(ctx, userID, coinID, nil)
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, utils.NotFound("not found")
	}
	return deleted, nil
}

// Sell reduces a holding by the sold amount, deleting the row when the whole
// position is sold. The audit record is written after the ledger mutation and
// its failure never surfaces to the caller.
func (c *PortfolioController) Sell(ctx context.Context, userID int, req *schemas.SellRequest) error {
	coinID := strings.TrimSpace(req.CoinID)
	if coinID == "" {
		return utils.BadRequest("coin_id required")
	}
	if !req.Amount.IsPositive() {
		return utils.BadRequest("amount must be a positive number")
	}

	tx, err := c.DB.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	holding, err := c.Holdings.GetByUserAndCoinForUpdate(ctx, userID, coinID, tx)
	if err != nil {
		return err
	}
	if holding == nil {
		return utils.NotFound("holding not found")
	}
	if holding.Amount.LessThan(req.Amount) {
		return utils.BadRequest("you cannot sell more than you hold")
	}

	remaining := holding.Amount.Sub(req.Amount)
	if remaining.Sign() <= 0 {
		if err := c.Holdings.Delete(ctx, holding.PortfolioID, tx); err != nil {
			return err
		}
	} else {
		if err := c.Holdings.UpdateAmount(ctx, holding.PortfolioID, remaining, tx); err != nil {
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	c.record(ctx, &models.Transaction{
		UserID:          userID,
		TransactionType: models.TransactionTypeSell,
		CoinID:          coinID,
		Amount:          req.Amount,
	})
	return nil
}

// Swap converts an amount of one coin into another at current spot prices.
// All validation happens before any write; the decrement of the source row
// and the credit of the destination row commit as one transaction so a
// failure in between cannot vanish the user's balance.
func (c *PortfolioController) Swap(ctx context.Context, userID int, req *schemas.SwapRequest) (*schemas.SwapResponse, error) {
	fromCoinID := strings.TrimSpace(req.FromCoinID)
	toCoinID := strings.TrimSpace(req.ToCoinID)
	if fromCoinID == "" {
		return nil, utils.BadRequest("from_coin_id required")
	}
	if toCoinID == "" {
		return nil, utils.BadRequest("to_coin_id required")
	}
	if fromCoinID == toCoinID {
		return nil, utils.BadRequest("choose a different coin to receive")
	}
	if !req.Amount.IsPositive() {
		return nil, utils.BadRequest("amount must be a positive number")
	}

	currency := strings.ToLower(strings.TrimSpace(req.VsCurrency))
	if currency == "" {
		currency = "usd"
	}

	fromHolding, err := c.Holdings.GetByUserAndCoin(ctx, userID, fromCoinID, nil)
	if err != nil {
		return nil, err
	}
	if fromHolding == nil {
		return nil, utils.BadRequest("you do not hold this coin")
	}
	if fromHolding.Amount.LessThan(req.Amount) {
		return nil, utils.BadRequest("you cannot swap more than you hold")
	}

	priceData, err := c.Prices.GetSimplePrice(ctx, []string{fromCoinID, toCoinID}, []string{currency})
	if err != nil {
		return nil, utils.BadGateway("failed to fetch prices for swap")
	}
	fromPrice, fromOK := priceData[fromCoinID][currency]
	toPrice, toOK := priceData[toCoinID][currency]
	if !fromOK || !toOK || toPrice.IsZero() {
		return nil, utils.BadGateway("failed to fetch prices for swap")
	}

	receiveAmount := req.Amount.Mul(fromPrice).Div(toPrice)

	tx, err := c.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	// Re-read under lock: the pre-check above raced any concurrent swap/sell.
	locked, err := c.Holdings.GetByUserAndCoinForUpdate(ctx, userID, fromCoinID, tx)
	if err != nil {
		return nil, err
	}
	if locked == nil || locked.Amount.LessThan(req.Amount) {
		return nil, utils.BadRequest("you cannot swap more than you hold")
	}

	remaining := locked.Amount.Sub(req.Amount)
	if remaining.Sign() <= 0 {
		if err := c.Holdings.Delete(ctx, locked.PortfolioID, tx); err != nil {
			return nil, err
		}
	} else {
		if err := c.Holdings.UpdateAmount(ctx, locked.PortfolioID, remaining, tx); err != nil {
			return nil, err
		}
	}

	toHolding, err := c.Holdings.GetByUserAndCoinForUpdate(ctx, userID, toCoinID, tx)
	if err != nil {
		return nil, err
	}
	if toHolding != nil {
		// The destination keeps its prior cost basis; received amounts are
		// not blended into a weighted average.
		newAmount := toHolding.Amount.Add(receiveAmount)
		if err := c.Holdings.UpdateAmount(ctx, toHolding.PortfolioID, newAmount, tx); err != nil {
			return nil, err
		}
	} else {
		today := time.Now().Truncate(24 * time.Hour)
		notes := "Swapped from " + fromCoinID
		created := &models.Holding{
			UserID:        userID,
			CoinID:        toCoinID,
			Amount:        receiveAmount,
			PurchasePrice: decimal.NewNullDecimal(toPrice),
			PurchaseDate:  &today,
			Notes:         &notes,
		}
		if err := c.Holdings.Create(ctx, created, tx); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	toAmount := receiveAmount
	c.record(ctx, &models.Transaction{
		UserID:          userID,
		TransactionType: models.TransactionTypeSwap,
		CoinID:          fromCoinID,
		Amount:          req.Amount,
		Price:           decimal.NewNullDecimal(fromPrice),
		TotalValue:      decimal.NewNullDecimal(req.Amount.Mul(fromPrice)),
		ToCoinID:        &toCoinID,
		ToAmount:        decimal.NewNullDecimal(toAmount),
		ToPrice:         decimal.NewNullDecimal(toPrice),
	})

	holdings, err := c.Holdings.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	return &schemas.SwapResponse{
		Success:       true,
		Holdings:      holdings,
		ReceiveAmount: receiveAmount,
	}, nil
}

func (c *PortfolioController) GetValuation(ctx context.Context, userID int, vsCurrency string, sortKey services.SortKey, desc bool) (*schemas.PortfolioValuationResponse, error) {
	holdings, err := c.Holdings.ListByUser(ctx, userID, nil)
	if err != nil {
		return nil, err
	}

	currency := strings.ToLower(strings.TrimSpace(vsCurrency))
	if currency == "" {
		if user, err := c.Users.GetByID(ctx, userID); err == nil && user != nil {
			currency = strings.ToLower(user.PCurrency)
		}
	}
	if currency == "" {
		currency = "usd"
	}

	prices := map[string]decimal.Decimal{}
	if len(holdings) > 0 {
		seen := map[string]bool{}
		coinIDs := []string{}
		for _, h := range holdings {
			if !seen[h.CoinID] {
				seen[h.CoinID] = true
				coinIDs = append(coinIDs, h.CoinID)
			}
		}
		priceData, err := c.Prices.GetSimplePrice(ctx, coinIDs, []string{currency})
		if err != nil {
			// Valuation degrades to cost-basis-only rows when the oracle is
			// down; missing prices stay absent rather than zero.
			utils.LoggerFromContext(ctx).WithError(err).Warn("could not fetch prices for valuation")
		} else {
			for coinID, quotes := range priceData {
				if price, ok := quotes[currency]; ok {
					prices[coinID] = price
				}
			}
		}
	}

	rows := services.Valuate(holdings, prices)
	services.SortRows(rows, sortKey, desc)

	return &schemas.PortfolioValuationResponse{
		UserID:     userID,
		VsCurrency: currency,
		Rows:       rows,
		Totals:     services.Totals(rows),
	}, nil
}

// record appends an audit row. Logging is best-effort: a failure here must
// never roll back or fail the ledger mutation that triggered it.
func (c *PortfolioController) record(ctx context.Context, t *models.Transaction) {
	if err := c.Transactions.Create(ctx, t, nil); err != nil {
		utils.LoggerFromContext(ctx).WithError(err).
			WithField("transaction_type", t.TransactionType).
			Warn("could not record transaction")
	}
}

func parseDate(value *string) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	date, err := time.Parse("2006-01-02", strings.TrimSpace(*value))
	if err != nil {
		return nil, utils.BadRequest("purchase_date must be YYYY-MM-DD")
	}
	return &date, nil
}
