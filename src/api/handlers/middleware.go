package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/jwtauth"
)

// AuthCookieName is the cookie the login handler sets and the verifier reads.
const AuthCookieName = "token"

// Principal identifies the authenticated caller for the rest of the request.
type Principal struct {
	UserID int
	Email  string
	Role   string
}

type principalCtxKey struct{}

func withPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext returns the caller set by Authenticator, or nil when
// the request was not authenticated.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalCtxKey{}).(*Principal)
	return p
}

// tokenFromAuthCookie reads the session cookie. It takes precedence over the
// Authorization header so browser sessions are not shadowed by stale bearer
// tokens.
func tokenFromAuthCookie(r *http.Request) string {
	cookie, err := r.Cookie(AuthCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// Verifier decodes the JWT from the session cookie or the Authorization
// header and stores the result in the request context.
func Verifier(tokenAuth *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return jwtauth.Verify(tokenAuth, tokenFromAuthCookie, jwtauth.TokenFromHeader)
}

// Authenticator rejects requests without a valid token and exposes the
// caller as a Principal in the context.
func Authenticator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, claims, err := jwtauth.FromContext(r.Context())
		if err != nil || token == nil {
			unauthorized(w, "authentication required")
			return
		}

		userID, ok := claimInt(claims, "user_id")
		if !ok {
			unauthorized(w, "invalid token")
			return
		}
		principal := &Principal{
			UserID: userID,
			Email:  claimString(claims, "email"),
			Role:   claimString(claims, "role"),
		}
		next.ServeHTTP(w, r.WithContext(withPrincipal(r.Context(), principal)))
	})
}

// AdminOnly must run after Authenticator.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal := PrincipalFromContext(r.Context())
		if principal == nil || principal.Role != "admin" {
			writeError(w, http.StatusForbidden, "admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// claimInt tolerates the numeric types the JWT library may hand back after
// decoding.
func claimInt(claims map[string]interface{}, key string) (int, bool) {
	switch v := claims[key].(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case int64:
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func claimString(claims map[string]interface{}, key string) string {
	s, _ := claims[key].(string)
	return s
}

func unauthorized(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, message)
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
