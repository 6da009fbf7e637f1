package schemas

import (
	"cryptotracker/src/models"

	"github.com/shopspring/decimal"
)

type TransactionsResponse struct {
	Transactions []models.Transaction `json:"transactions"`
}

type CreateTransactionRequest struct {
	TransactionType string           `json:"transaction_type"`
	CoinID          string           `json:"coin_id"`
	Amount          decimal.Decimal  `json:"amount"`
	Price           *decimal.Decimal `json:"price"`
	TotalValue      *decimal.Decimal `json:"total_value"`
	ToCoinID        *string          `json:"to_coin_id"`
	ToAmount        *decimal.Decimal `json:"to_amount"`
	ToPrice         *decimal.Decimal `json:"to_price"`
	Notes           *string          `json:"notes"`
}

type CreateTransactionResponse struct {
	Created *models.Transaction `json:"created"`
}
