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

type TransactionsControllerI interface {
	GetTransactions(ctx context.Context, userID int) ([]models.Transaction, error)
	CreateTransaction(ctx context.Context, userID int, req *schemas.CreateTransactionRequest) (*models.Transaction, error)
}

type TransactionsController struct {
	Transactions repositories.TransactionRepository
}

func NewTransactionsController(transactions repositories.TransactionRepository) *TransactionsController {
	return &TransactionsController{Transactions: transactions}
}

func (c *TransactionsController) GetTransactions(ctx context.Context, userID int) ([]models.Transaction, error) {
	return c.Transactions.ListByUser(ctx, userID)
}

func (c *TransactionsController) CreateTransaction(ctx context.Context, userID int, req *schemas.CreateTransactionRequest) (*models.Transaction, error) {
	transactionType := strings.ToLower(strings.TrimSpace(req.TransactionType))
	switch transactionType {
	case models.TransactionTypeBuy, models.TransactionTypeSell, models.TransactionTypeSwap:
	case "":
		return nil, utils.BadRequest("transaction_type required")
	default:
		return nil, utils.BadRequest("transaction_type must be buy, sell, or swap")
	}

	coinID := strings.TrimSpace(req.CoinID)
	if coinID == "" {
		return nil, utils.BadRequest("coin_id required")
	}
	if !req.Amount.IsPositive() {
		return nil, utils.BadRequest("amount must be a positive number")
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, utils.BadRequest("price must be non-negative")
	}
	if req.ToAmount != nil && req.ToAmount.IsNegative() {
		return nil, utils.BadRequest("to_amount must be non-negative")
	}
	if req.ToPrice != nil && req.ToPrice.IsNegative() {
		return nil, utils.BadRequest("to_price must be non-negative")
	}
	if req.TotalValue != nil && req.TotalValue.IsNegative() {
		return nil, utils.BadRequest("total_value must be non-negative")
	}

	transaction := &models.Transaction{
		UserID:          userID,
		TransactionType: transactionType,
		CoinID:          coinID,
		Amount:          req.Amount,
		ToCoinID:        req.ToCoinID,
		Notes:           req.Notes,
	}
	if req.Price != nil {
		transaction.Price = decimal.NewNullDecimal(*req.Price)
	}
	if req.TotalValue != nil {
		transaction.TotalValue = decimal.NewNullDecimal(*req.TotalValue)
	}
	if req.ToAmount != nil {
		transaction.ToAmount = decimal.NewNullDecimal(*req.ToAmount)
	}
	if req.ToPrice != nil {
		transaction.ToPrice = decimal.NewNullDecimal(*req.ToPrice)
	}

	if err := c.Transactions.Create(ctx, transaction, nil); err != nil {
		return nil, err
	}
	return transaction, nil
}
