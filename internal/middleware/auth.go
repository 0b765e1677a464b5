package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/parfumdelite/backend/internal/models"
	"github.com/parfumdelite/backend/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type contextKey int

const (
	contextKeyPrincipal contextKey = iota
)

// PrincipalStore resolves an authenticated account id to the account.
type PrincipalStore interface {
	GetUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// Auth verifies the request token and puts the acting account into the
// request context. A suspended account is rejected here, before any
// handler runs.
func Auth(ts service.TokenService, users PrincipalStore) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			payload, err := ts.VerifyToken(tokenString)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			actor, err := users.GetUserByID(r.Context(), payload.UserID)
			if err != nil {
				// only a missing account means bad credentials, a store
				// failure must not look like one
				if errors.Is(err, models.ErrDataNotFound) {
					http.Error(w, "unauthorized", http.StatusUnauthorized)
					return
				}
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			if actor.IsSuspended {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), actor)))
		})
	}
}

// AdminOnly rejects requests whose principal is not an admin. Fine-grained
// decisions stay in the service layer's Authorize, this gate only keeps
// non-admin traffic out of the admin surface.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := Principal(r.Context())
		if !ok || !actor.IsAdmin {
			http.Error(w, "Forbidden: Admins only", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// WithPrincipal puts the acting account into ctx
func WithPrincipal(ctx context.Context, actor *models.User) context.Context {
	return context.WithValue(ctx, contextKeyPrincipal, actor)
}

// Principal extracts the acting account from context
func Principal(ctx context.Context) (*models.User, bool) {
	actor, ok := ctx.Value(contextKeyPrincipal).(*models.User)
	return actor, ok
}

// extractToken reads the auth token from the cookie or the
// Authorization header.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie("auth_token"); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}

	return ""
}
