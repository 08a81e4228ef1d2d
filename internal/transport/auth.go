package transport

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/rpggio/worklog/internal/domain/user"
)

// ErrUnauthorized indicates invalid or missing credentials.
var ErrUnauthorized = errors.New("unauthorized")

type viewerKey struct{}

// UserResolver resolves the user behind a bearer token.
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (*user.User, error)
}

// UserLookup finds a user by username.
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

// ViewerFromContext returns the authenticated user, if present.
func ViewerFromContext(ctx context.Context) (user.User, bool) {
	u, ok := ctx.Value(viewerKey{}).(user.User)
	return u, ok
}

// WithViewer returns a context carrying u as the authenticated user.
func WithViewer(ctx context.Context, u user.User) context.Context {
	return context.WithValue(ctx, viewerKey{}, u)
}

// AuthMiddleware enforces bearer token authentication.
func AuthMiddleware(resolver UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			token := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
			if token == "" {
				writeError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			u, err := resolver.ResolveUser(r.Context(), token)
			if err != nil || u == nil {
				writeError(w, http.StatusUnauthorized, "invalid bearer token")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), *u)))
		})
	}
}

// DefaultUserMiddleware makes every request act as username. It is used when
// authentication is disabled.
func DefaultUserMiddleware(users UserLookup, username string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, err := users.GetByUsername(r.Context(), username)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "default user unavailable")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithViewer(r.Context(), *u)))
		})
	}
}
