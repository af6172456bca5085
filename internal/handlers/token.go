package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-bookstore/internal/middlewares"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
)

//go:generate mockgen -source=token.go -destination=token_mock.go -package=handlers

// AuthTokenIssuer issues tokens for authenticated users.
type AuthTokenIssuer interface {
	IssueAuthToken(ctx context.Context, user *models.User) (string, time.Duration, error)
}

// TokenResponse represents an issued token
// swagger:model TokenResponse
type TokenResponse struct {
	// Signed token
	// default: JWT_TOKEN
	Token string `json:"token"`

	// Lifetime in seconds
	// default: 3600
	Expiration int64 `json:"expiration"`
}

// NewTokenHandler returns an HTTP handler issuing a token for the caller.
// @Summary Get an auth token
// @Description Issues a token usable as password or bearer credential.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.TokenResponse
// @Failure 401 {object} handlers.ErrorResponse
// @Router /token [get]
// @Security BasicAuth
func NewTokenHandler(svc AuthTokenIssuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := middlewares.UserFromContext(r.Context())
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Unauthorized access")
			return
		}

		token, exp, err := svc.IssueAuthToken(r.Context(), user)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, TokenResponse{
			Token:      token,
			Expiration: int64(exp / time.Second),
		})
	}
}

// RegisterTokenHandler registers the token route
func RegisterTokenHandler(r chi.Router, h http.HandlerFunc) {
	r.Get("/token", h)
}
