package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetCoinsMarkets(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	vsCurrency := r.URL.Query().Get("vs_currency")
	if vsCurrency == "" {
		vsCurrency = "usd"
	}
	perPage := queryInt(r, "per_page", 50)
	page := queryInt(r, "page", 1)
	order := r.URL.Query().Get("order")
	if order == "" {
		order = "market_cap_desc"
	}

	markets, err := h.CoinsController.GetMarkets(ctx, vsCurrency, perPage, page, order)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, markets, http.StatusOK)
}

func (h *Handler) GetCoinDetails(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	coin, err := h.CoinsController.GetCoin(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, coin, http.StatusOK)
}

func (h *Handler) GetCoinPrice(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	var vsCurrencies []string
	if raw := r.URL.Query().Get("vs_currencies"); raw != "" {
		vsCurrencies = strings.Split(raw, ",")
	}

	price, err := h.CoinsController.GetPrice(ctx, chi.URLParam(r, "id"), vsCurrencies)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, price, http.StatusOK)
}

func (h *Handler) SearchCoins(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	result, err := h.CoinsController.Search(ctx, r.URL.Query().Get("query"))
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, result, http.StatusOK)
}

func (h *Handler) GetTrendingCoins(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	trending, err := h.CoinsController.GetTrending(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, trending, http.StatusOK)
}

func (h *Handler) GetSupportedCurrencies(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	currencies, err := h.CoinsController.GetSupportedCurrencies(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, currencies, http.StatusOK)
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
