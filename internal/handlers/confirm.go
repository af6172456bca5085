package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
)

//go:generate mockgen -source=confirm.go -destination=confirm_mock.go -package=handlers

const confirmedMessage = "You have successfully verified your account."

// Confirmer confirms accounts.
type Confirmer interface {
	Confirm(ctx context.Context, email, password, token string) error
}

// ConfirmationResender issues fresh confirmation tokens.
type ConfirmationResender interface {
	ResendConfirmation(ctx context.Context, email, password string) (*models.User, string, error)
	ConfirmURL(token string) string
}

// ConfirmRequest carries the credentials of the account being confirmed.
// swagger:model ConfirmRequest
type ConfirmRequest struct {
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required"`

	// required: true
	// default: secret123
	Password string `json:"password" validate:"required"`
}

// ResendResponse carries a fresh confirmation link.
// swagger:model ResendResponse
type ResendResponse struct {
	ConfirmURL string `json:"confirm_url"`
	Token      string `json:"token"`
	Message    string `json:"message"`
}

// NewConfirmHandler returns an HTTP handler confirming an account.
// @Summary Confirm an account
// @Description Marks the account as confirmed. The token must have been issued to the account owning the credentials.
// @Tags auth
// @Accept json
// @Produce json
// @Param token path string true "Confirmation token"
// @Param confirmRequest body handlers.ConfirmRequest true "Account credentials"
// @Success 200 {object} handlers.MessageResponse
// @Failure 400 {object} handlers.ErrorResponse "Missing field or invalid token"
// @Failure 401 {object} handlers.ErrorResponse "Wrong password"
// @Failure 404 {object} handlers.ErrorResponse "Unknown email"
// @Failure 422 {object} handlers.ErrorResponse "Already confirmed"
// @Router /confirm/{token} [post]
func NewConfirmHandler(svc Confirmer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConfirmRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		if err := svc.Confirm(r.Context(), req.Email, req.Password, chi.URLParam(r, "token")); err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: confirmedMessage})
	}
}

// NewResendConfirmationHandler returns an HTTP handler issuing a fresh
// confirmation link.
// @Summary Resend the confirmation link
// @Tags auth
// @Accept json
// @Produce json
// @Param confirmRequest body handlers.ConfirmRequest true "Account credentials"
// @Success 200 {object} handlers.ResendResponse
// @Failure 400 {object} handlers.ErrorResponse "Missing field"
// @Failure 401 {object} handlers.ErrorResponse "Wrong password"
// @Failure 404 {object} handlers.ErrorResponse "Unknown email"
// @Failure 422 {object} handlers.ErrorResponse "Already confirmed"
// @Router /confirm [post]
func NewResendConfirmationHandler(svc ConfirmationResender) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ConfirmRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		_, token, err := svc.ResendConfirmation(r.Context(), req.Email, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, ResendResponse{
			ConfirmURL: svc.ConfirmURL(token),
			Token:      token,
			Message:    registerMessage,
		})
	}
}

// RegisterConfirmHandlers registers the confirmation routes
func RegisterConfirmHandlers(r chi.Router, confirm, resend http.HandlerFunc) {
	r.Post("/confirm/{token}", confirm)
	r.Post("/confirm", resend)
}
