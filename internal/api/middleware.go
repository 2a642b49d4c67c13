package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	app_errors "elelem/backend/internal/errors"
	"elelem/backend/internal/interfaces"
	"elelem/backend/internal/model"
)

// contextKey is unexported so no other package can collide with our context
// values.
type contextKey string

const userContextKey contextKey = "currentUser"

// RequireAuth resolves the Authorization bearer token to a user and injects
// it into the request context. Every rejection happens here, before the
// request reaches persistence or the generator.
func RequireAuth(users interfaces.UserService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				respondWithError(w, fmt.Errorf("%w: missing bearer token", app_errors.ErrUnauthenticated))
				return
			}

			user, err := users.Authenticate(r.Context(), token)
			if err != nil {
				respondWithError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the authenticated user placed there by RequireAuth.
func UserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	return user, ok
}
