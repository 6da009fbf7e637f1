package handlers

import (
	"net/http"
	"strconv"

	"cryptotracker/src/schemas"
	"cryptotracker/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	items, err := h.WatchlistController.GetWatchlist(ctx, principal.UserID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.WatchlistResponse{Watchlist: items}, http.StatusOK)
}

func (h *Handler) AddToWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	var req schemas.AddWatchlistRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	item, err := h.WatchlistController.AddToWatchlist(ctx, principal.UserID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.AddWatchlistResponse{Added: item}, http.StatusCreated)
}

func (h *Handler) RemoveFromWatchlist(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	watchlistID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid watchlist id"))
		return
	}

	if err := h.WatchlistController.RemoveFromWatchlist(ctx, principal.UserID, watchlistID); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.MessageResponse{Message: "removed"}, http.StatusOK)
}
