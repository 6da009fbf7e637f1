package services

import (
	"sort"
	"strings"

	"cryptotracker/src/models"

	"github.com/shopspring/decimal"
)

// SortKey selects the column a valuation view is ordered by.
type SortKey string

const (
	SortByCoin          SortKey = "coin"
	SortByAmount        SortKey = "amount"
	SortByPurchasePrice SortKey = "purchase_price"
	SortByCurrentPrice  SortKey = "current_price"
	SortByValue         SortKey = "value"
	SortByPnL           SortKey = "pnl"
	SortByDate          SortKey = "date"
)

// ValuationRow is one holding with its derived figures. Derived fields are
// nil when the inputs needed to compute them are missing; a nil value means
// "unknown", never zero.
type ValuationRow struct {
	Holding      models.Holding   `json:"holding"`
	CurrentPrice *decimal.Decimal `json:"current_price"`
	CurrentValue *decimal.Decimal `json:"current_value"`
	CostBasis    *decimal.Decimal `json:"cost_basis"`
	PnL          *decimal.Decimal `json:"pnl"`
	PnLPercent   *decimal.Decimal `json:"pnl_percent"`
}

// ValuationTotals sums the rows; absent per-row values contribute zero so
// partial price data still produces a usable total.
type ValuationTotals struct {
	TotalValue  decimal.Decimal  `json:"total_value"`
	TotalCost   decimal.Decimal  `json:"total_cost"`
	TotalPnL    decimal.Decimal  `json:"total_pnl"`
	TotalPnLPct *decimal.Decimal `json:"total_pnl_percent"`
}

// Valuate computes current value, cost basis and profit/loss per holding from
// the given spot prices. It is a pure function: no I/O, no hidden state.
func Valuate(holdings []models.Holding, prices map[string]decimal.Decimal) []ValuationRow {
	rows := make([]ValuationRow, 0, len(holdings))
	for _, h := range holdings {
		row := ValuationRow{Holding: h}

		if price, ok := prices[h.CoinID]; ok {
			p := price
			row.CurrentPrice = &p
			value := h.Amount.Mul(price)
			row.CurrentValue = &value
		}
		if h.PurchasePrice.Valid {
			cost := h.Amount.Mul(h.PurchasePrice.Decimal)
			row.CostBasis = &cost
		}
		if row.CurrentValue != nil && row.CostBasis != nil {
			pnl := row.CurrentValue.Sub(*row.CostBasis)
			row.PnL = &pnl
			if row.CostBasis.IsPositive() {
				pct := pnl.Div(*row.CostBasis).Mul(decimal.NewFromInt(100))
				row.PnLPercent = &pct
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// Totals aggregates the valuation rows.
func Totals(rows []ValuationRow) ValuationTotals {
	totals := ValuationTotals{}
	for _, row := range rows {
		if row.CurrentValue != nil {
			totals.TotalValue = totals.TotalValue.Add(*row.CurrentValue)
		}
		if row.CostBasis != nil {
			totals.TotalCost = totals.TotalCost.Add(*row.CostBasis)
		}
	}
	totals.TotalPnL = totals.TotalValue.Sub(totals.TotalCost)
	if totals.TotalCost.IsPositive() {
		pct := totals.TotalPnL.Div(totals.TotalCost).Mul(decimal.NewFromInt(100))
		totals.TotalPnLPct = &pct
	}
	return totals
}

// SortRows orders rows by the given key, ascending unless desc is set. The
// sort is stable; rows with an unknown numeric value sort as if the value
// were negative infinity.
func SortRows(rows []ValuationRow, key SortKey, desc bool) {
	less := lessFunc(key)
	sort.SliceStable(rows, func(i, j int) bool {
		if desc {
			return less(rows[j], rows[i])
		}
		return less(rows[i], rows[j])
	})
}

func lessFunc(key SortKey) func(a, b ValuationRow) bool {
	switch key {
	case SortByAmount:
		return func(a, b ValuationRow) bool { return a.Holding.Amount.LessThan(b.Holding.Amount) }
	case SortByPurchasePrice:
		return func(a, b ValuationRow) bool {
			return lessNullDecimal(a.Holding.PurchasePrice, b.Holding.PurchasePrice)
		}
	case SortByCurrentPrice:
		return func(a, b ValuationRow) bool { return lessDecimalPtr(a.CurrentPrice, b.CurrentPrice) }
	case SortByValue:
		return func(a, b ValuationRow) bool { return lessDecimalPtr(a.CurrentValue, b.CurrentValue) }
	case SortByPnL:
		return func(a, b ValuationRow) bool { return lessDecimalPtr(a.PnL, b.PnL) }
	case SortByDate:
		return func(a, b ValuationRow) bool {
			ad, bd := a.Holding.PurchaseDate, b.Holding.PurchaseDate
			if ad == nil {
				return bd != nil
			}
			if bd == nil {
				return false
			}
			return ad.Before(*bd)
		}
	default: // SortByCoin
		return func(a, b ValuationRow) bool {
			return strings.Compare(a.Holding.CoinID, b.Holding.CoinID) < 0
		}
	}
}

// lessDecimalPtr treats nil as negative infinity, so unknown values group at
// the ascending end.
func lessDecimalPtr(a, b *decimal.Decimal) bool {
	if a == nil {
		return b != nil
	}
	if b == nil {
		return false
	}
	return a.LessThan(*b)
}

func lessNullDecimal(a, b decimal.NullDecimal) bool {
	if !a.Valid {
		return b.Valid
	}
	if !b.Valid {
		return false
	}
	return a.Decimal.LessThan(b.Decimal)
}
