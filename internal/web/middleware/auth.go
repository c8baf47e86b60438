package middleware

import (
	"context"
	"net/http"

	"github.com/mcoot/torosvacas/internal/api/response"
	"github.com/mcoot/torosvacas/internal/model"
	"github.com/mcoot/torosvacas/internal/services/auth"
)

type contextKey string

const (
	userContextKey contextKey = "user"
)

// GetUser retrieves the signed-in user from the request context
// Returns nil if nobody is signed in
func GetUser(ctx context.Context) *model.User {
	user, _ := ctx.Value(userContextKey).(*model.User)
	return user
}

// OptionalAuth resolves the session cookie when present
// Pages render for anonymous visitors too
func OptionalAuth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := userFromSession(r, authService)
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func userFromSession(r *http.Request, authService *auth.Service) *model.User {
	cookie, err := r.Cookie(response.SessionCookieName)
	if err != nil {
		return nil
	}

	user, err := authService.ValidateSession(r.Context(), cookie.Value)
	if err != nil {
		return nil
	}

	return user
}
