package handlers

import (
	"net/http"

	"cryptotracker/src/schemas"
	"cryptotracker/src/services"
	"cryptotracker/src/utils"
)

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	holdings, err := h.PortfolioController.GetHoldings(ctx, principal.UserID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.PortfolioResponse{UserID: principal.UserID, Holdings: holdings}, http.StatusOK)
}

func (h *Handler) CreateHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	var req schemas.CreateHoldingRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	holding, err := h.PortfolioController.CreateHolding(ctx, principal.UserID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.CreateHoldingResponse{Created: holding}, http.StatusCreated)
}

func (h *Handler) UpdateHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	var req schemas.UpdateHoldingRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	holding, err := h.PortfolioController.UpdateHolding(ctx, principal.UserID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.UpdateHoldingResponse{Updated: holding}, http.StatusOK)
}

func (h *Handler) DeleteHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	var req schemas.DeleteHoldingRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	if req.CoinID == "" {
		h.HandleErrors(w, utils.BadRequest("coin_id is required"))
		return
	}

	deleted, err := h.PortfolioController.DeleteHolding(ctx, principal.UserID, req.CoinID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.DeleteHoldingResponse{Deleted: deleted, CoinID: req.CoinID}, http.StatusOK)
}

func (h *Handler) SellHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	var req schemas.SellRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.PortfolioController.Sell(ctx, principal.UserID, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.MessageResponse{Message: "sold"}, http.StatusOK)
}

func (h *Handler) SwapHolding(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	var req schemas.SwapRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	resp, err := h.PortfolioController.Swap(ctx, principal.UserID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, resp, http.StatusOK)
}

func (h *Handler) GetPortfolioValuation(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	vsCurrency := r.URL.Query().Get("vs_currency")
	sortKey := services.SortKey(r.URL.Query().Get("sort"))
	desc := r.URL.Query().Get("order") == "desc"

	resp, err := h.PortfolioController.GetValuation(ctx, principal.UserID, vsCurrency, sortKey, desc)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, resp, http.StatusOK)
}
