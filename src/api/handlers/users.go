package handlers

import (
	"net/http"
	"strconv"

	"cryptotracker/src/schemas"
	"cryptotracker/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) UpdatePassword(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	var req schemas.UpdatePasswordRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	if err := h.UsersController.UpdatePassword(ctx, principal.UserID, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.MessageResponse{Message: "password updated"}, http.StatusOK)
}

func (h *Handler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	var req schemas.UpdateCurrencyRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	currency, err := h.UsersController.UpdateCurrency(ctx, principal.UserID, req.PCurrency)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.UpdateCurrencyRequest{PCurrency: currency}, http.StatusOK)
}

func (h *Handler) UpdateLanguage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	principal := PrincipalFromContext(ctx)
	var req schemas.UpdateLanguageRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	language, err := h.UsersController.UpdateLanguage(ctx, principal.UserID, req.PLanguage)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.UpdateLanguageRequest{PLanguage: language}, http.StatusOK)
}

func (h *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}

	user, err := h.UsersController.GetUser(ctx, userID)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, user, http.StatusOK)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	users, err := h.UsersController.ListUsers(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, users, http.StatusOK)
}

func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}
	var req schemas.UpdateUserRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	user, err := h.UsersController.UpdateUser(ctx, userID, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, user, http.StatusOK)
}

func (h *Handler) DisableUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}

	if err := h.UsersController.DisableUser(ctx, userID); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.MessageResponse{Message: "user disabled"}, http.StatusOK)
}

func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid user id"))
		return
	}

	if err := h.UsersController.DeleteUser(ctx, userID); err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, schemas.MessageResponse{Message: "user deleted"}, http.StatusOK)
}
