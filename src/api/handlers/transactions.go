package handlers

import (
	"net/http"

	"cryptotracker/src/schemas"
)

func (h *Handler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	transactions, err := h.TransactionsController.GetTransactions(ctx, principal.UserID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.TransactionsResponse{Transactions: transactions}, http.StatusOK)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	var req schemas.CreateTransactionRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	created, err := h.TransactionsController.CreateTransaction(ctx, principal.UserID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.CreateTransactionResponse{Created: created}, http.StatusCreated)
}
