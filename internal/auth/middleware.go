package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/nvalverde/tourvia-be/internal/models"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "tourvia_session"

// SessionResolver resolves an opaque token to its owning user. Implemented
// by services.SessionService.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (models.User, error)
}

type contextKey string

// UserContextKey is the context key under which the authenticated user is stored.
const UserContextKey = contextKey("authUser")

// TokenContextKey is the context key under which the raw session token is stored.
const TokenContextKey = contextKey("authToken")

// UserFromContext returns the authenticated user placed in the request
// context by SessionMiddleware.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(models.User)
	return user, ok
}

// TokenFromRequest extracts the session token from the Authorization
// header or, failing that, the session cookie. Returns "" when absent.
// All cookie/header handling lives here; the services below only ever
// see an explicit token argument.
func TokenFromRequest(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			return token
		}
	}

	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

// SessionMiddleware creates a middleware for protecting routes. Requests
// without a resolvable, unexpired session are rejected with a generic
// 401 regardless of cause.
func SessionMiddleware(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			user, err := resolver.Resolve(r.Context(), token)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), UserContextKey, user)
			ctx = context.WithValue(ctx, TokenContextKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
