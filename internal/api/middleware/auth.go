package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/shadowhunt/shadowhunt-go/internal/api/apierr"
	"github.com/shadowhunt/shadowhunt-go/internal/model"
	"github.com/shadowhunt/shadowhunt-go/internal/services/auth"
)

type contextKey string

const (
	userContextKey   contextKey = "user"
	claimsContextKey contextKey = "claims"
)

// SessionCookieName is the cookie the browser clients carry the session
// token in
const SessionCookieName = "token"

// Auth creates authentication middleware
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			claims, err := authService.ValidateToken(token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			user, err := authService.GetUser(r.Context(), claims)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			// Add claims and user to context
			ctx := r.Context()
			ctx = context.WithValue(ctx, claimsContextKey, claims)
			ctx = context.WithValue(ctx, userContextKey, user)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth resolves the user if a valid token is present but doesn't
// require it
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token != "" {
				if claims, err := authService.ValidateToken(token); err == nil {
					if user, err := authService.GetUser(r.Context(), claims); err == nil {
						ctx := r.Context()
						ctx = context.WithValue(ctx, claimsContextKey, claims)
						ctx = context.WithValue(ctx, userContextKey, user)
						r = r.WithContext(ctx)
					}
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie(SessionCookieName)
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetUser returns the authenticated user from the request context
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// GetClaims returns the session claims from the request context
func GetClaims(ctx context.Context) *auth.SessionClaims {
	claims, _ := ctx.Value(claimsContextKey).(*auth.SessionClaims)
	return claims
}

// MustGetUser returns the authenticated user or panics
func MustGetUser(ctx context.Context) *model.User {
	user := GetUser(ctx)
	if user == nil {
		panic("no user in context - auth middleware not applied?")
	}
	return user
}
