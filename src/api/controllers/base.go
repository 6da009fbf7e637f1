package controllers

import (
	"context"

	"cryptotracker/src/clients/coingecko"

	"github.com/jackc/pgx/v5"
)

// TxBeginner starts a ledger transaction. *pgxpool.Pool satisfies it; tests
// substitute a fake.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// PriceSource is the slice of the market-data client the ledger workflows
// need: current spot prices and nothing else.
type PriceSource interface {
	GetSimplePrice(ctx context.Context, coinIDs []string, vsCurrencies []string) (coingecko.SimplePriceData, error)
}
