package handlers

import (
	"net/http"

	"cryptotracker/src/schemas"

	"github.com/go-chi/jwtauth"
)

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	var req schemas.RegisterRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	resp, err := h.UsersController.Register(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	h.respond(w, r, resp, http.StatusCreated)
}

// Login issues the JWT both in the response body and as an http-only session
// cookie, so browser clients never have to store the token themselves.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	var req schemas.LoginRequest
	if err := h.decode(r, &req); err != nil {
		h.HandleErrors(w, err)
		return
	}

	resp, err := h.UsersController.Login(ctx, &req)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    resp.Token,
		Path:     "/",
		MaxAge:   int(h.CookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	h.respond(w, r, resp, http.StatusOK)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     AuthCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
	h.respond(w, r, schemas.MessageResponse{Message: "logged out"}, http.StatusOK)
}

// Me reports the session state. An unauthenticated call is not an error, it
// just answers loggedIn false, so it sits behind the verifier only.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := h.requestContext(r)
	defer cancel()

	token, claims, err := jwtauth.FromContext(r.Context())
	if err != nil || token == nil {
		h.respond(w, r, schemas.MeResponse{LoggedIn: false}, http.StatusOK)
		return
	}
	userID, ok := claimInt(claims, "user_id")
	if !ok {
		h.respond(w, r, schemas.MeResponse{LoggedIn: false}, http.StatusOK)
		return
	}

	user, err := h.UsersController.GetUser(ctx, userID)
	if err != nil {
		h.respond(w, r, schemas.MeResponse{LoggedIn: false}, http.StatusOK)
		return
	}
	h.respond(w, r, schemas.MeResponse{LoggedIn: true, User: user}, http.StatusOK)
}
