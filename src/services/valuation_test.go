package services_test

import (
	"testing"
	"time"

	"cryptotracker/src/models"
	"cryptotracker/src/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func holding(coinID, amount, purchasePrice string) models.Holding {
	h := models.Holding{CoinID: coinID, Amount: dec(amount)}
	if purchasePrice != "" {
		h.PurchasePrice = decimal.NewNullDecimal(dec(purchasePrice))
	}
	return h
}

func TestValuateComputesValueAndPnL(t *testing.T) {
	holdings := []models.Holding{holding("bitcoin", "2", "45000")}
	prices := map[string]decimal.Decimal{"bitcoin": dec("50000")}

	rows := services.Valuate(holdings, prices)
	require.Len(t, rows, 1)

	row := rows[0]
	require.NotNil(t, row.CurrentPrice)
	assert.True(t, row.CurrentPrice.Equal(dec("50000")))
	require.NotNil(t, row.CurrentValue)
	assert.True(t, row.CurrentValue.Equal(dec("100000")))
	require.NotNil(t, row.CostBasis)
	assert.True(t, row.CostBasis.Equal(dec("90000")))
	require.NotNil(t, row.PnL)
	assert.True(t, row.PnL.Equal(dec("10000")))
	require.NotNil(t, row.PnLPercent)
	assert.True(t, row.PnLPercent.Round(4).Equal(dec("11.1111")))
}

func TestValuateMissingPriceLeavesDerivedFieldsNil(t *testing.T) {
	holdings := []models.Holding{holding("obscurecoin", "10", "3")}

	rows := services.Valuate(holdings, map[string]decimal.Decimal{})
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Nil(t, row.CurrentPrice)
	assert.Nil(t, row.CurrentValue)
	assert.Nil(t, row.PnL)
	assert.Nil(t, row.PnLPercent)
	require.NotNil(t, row.CostBasis, "cost basis needs no price feed")
	assert.True(t, row.CostBasis.Equal(dec("30")))
}

func TestValuateMissingPurchasePrice(t *testing.T) {
	holdings := []models.Holding{holding("bitcoin", "1", "")}
	prices := map[string]decimal.Decimal{"bitcoin": dec("50000")}

	rows := services.Valuate(holdings, prices)
	require.Len(t, rows, 1)

	row := rows[0]
	require.NotNil(t, row.CurrentValue)
	assert.Nil(t, row.CostBasis)
	assert.Nil(t, row.PnL, "pnl is unknown without a cost basis, not zero")
}

func TestValuateZeroCostBasisHasNoPercent(t *testing.T) {
	holdings := []models.Holding{holding("airdropcoin", "100", "0")}
	prices := map[string]decimal.Decimal{"airdropcoin": dec("2")}

	rows := services.Valuate(holdings, prices)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].PnL)
	assert.True(t, rows[0].PnL.Equal(dec("200")))
	assert.Nil(t, rows[0].PnLPercent, "percent is undefined on a zero cost basis")
}

func TestTotalsSkipUnknownValues(t *testing.T) {
	holdings := []models.Holding{
		holding("bitcoin", "2", "45000"),
		holding("obscurecoin", "10", ""),
	}
	prices := map[string]decimal.Decimal{"bitcoin": dec("50000")}

	totals := services.Totals(services.Valuate(holdings, prices))
	assert.True(t, totals.TotalValue.Equal(dec("100000")))
	assert.True(t, totals.TotalCost.Equal(dec("90000")))
	assert.True(t, totals.TotalPnL.Equal(dec("10000")))
	require.NotNil(t, totals.TotalPnLPct)
}

func TestSortRowsByValueDescending(t *testing.T) {
	holdings := []models.Holding{
		holding("litecoin", "10", ""),
		holding("bitcoin", "1", ""),
		holding("ethereum", "5", ""),
	}
	prices := map[string]decimal.Decimal{
		"litecoin": dec("100"),
		"bitcoin":  dec("50000"),
		"ethereum": dec("2500"),
	}

	rows := services.Valuate(holdings, prices)
	services.SortRows(rows, services.SortByValue, true)

	assert.Equal(t, "bitcoin", rows[0].Holding.CoinID)
	assert.Equal(t, "ethereum", rows[1].Holding.CoinID)
	assert.Equal(t, "litecoin", rows[2].Holding.CoinID)
}

func TestSortRowsUnknownValuesGroupFirstAscending(t *testing.T) {
	holdings := []models.Holding{
		holding("bitcoin", "1", ""),
		holding("obscurecoin", "10", ""),
	}
	prices := map[string]decimal.Decimal{"bitcoin": dec("50000")}

	rows := services.Valuate(holdings, prices)
	services.SortRows(rows, services.SortByValue, false)

	assert.Equal(t, "obscurecoin", rows[0].Holding.CoinID, "rows without a price sort as negative infinity")
	assert.Equal(t, "bitcoin", rows[1].Holding.CoinID)
}

func TestSortRowsByCoinIsDefault(t *testing.T) {
	rows := services.Valuate([]models.Holding{
		holding("ethereum", "1", ""),
		holding("bitcoin", "1", ""),
		holding("cardano", "1", ""),
	}, nil)

	services.SortRows(rows, "not-a-real-key", false)

	assert.Equal(t, "bitcoin", rows[0].Holding.CoinID)
	assert.Equal(t, "cardano", rows[1].Holding.CoinID)
	assert.Equal(t, "ethereum", rows[2].Holding.CoinID)
}

func TestSortRowsByDate(t *testing.T) {
	early := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	withDate := holding("bitcoin", "1", "")
	withDate.PurchaseDate = &late
	older := holding("ethereum", "1", "")
	older.PurchaseDate = &early
	noDate := holding("cardano", "1", "")

	rows := services.Valuate([]models.Holding{withDate, older, noDate}, nil)
	services.SortRows(rows, services.SortByDate, false)

	assert.Equal(t, "cardano", rows[0].Holding.CoinID, "undated rows sort first ascending")
	assert.Equal(t, "ethereum", rows[1].Holding.CoinID)
	assert.Equal(t, "bitcoin", rows[2].Holding.CoinID)
}
