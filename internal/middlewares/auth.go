package middlewares

import (
	"context"
	"errors"
	"net/http"

	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"github.com/sbilibin2017/gw-bookstore/internal/services"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middlewares

// Authenticator resolves a credential pair to a user.
type Authenticator interface {
	Authenticate(ctx context.Context, identifier, secret string) (*models.User, error)
}

// TokenExtractor pulls a bearer token out of a request.
type TokenExtractor interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
}

const authRealm = `Basic realm="bookstore"`

type userKey struct{}

// WithUser stores the authenticated user in the context.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// UserFromContext returns the authenticated user, or nil.
func UserFromContext(ctx context.Context) *models.User {
	user, _ := ctx.Value(userKey{}).(*models.User)
	return user
}

// AuthMiddleware admits requests carrying valid credentials.
//
// Basic credentials are passed as identifier and secret. A bearer token is
// passed as the secret with an empty identifier.
func AuthMiddleware(auth Authenticator, tokens TokenExtractor) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			identifier, secret, ok := r.BasicAuth()
			if !ok {
				token, err := tokens.GetTokenFromRequest(ctx, r)
				if err != nil {
					logger.Log.Infow("authorization failed", "err", err)
					unauthorized(w)
					return
				}
				identifier, secret = "", token
			}

			user, err := auth.Authenticate(ctx, identifier, secret)
			if err != nil {
				if errors.Is(err, services.ErrUnauthorized) {
					logger.Log.Infow("authorization failed", "err", err)
					unauthorized(w)
					return
				}
				logger.Log.Errorw("authentication error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUser(ctx, user)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", authRealm)
	writeError(w, http.StatusUnauthorized, "Unauthorized access")
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + msg + `"}`))
}
