package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
)

//go:generate mockgen -source=register.go -destination=register_mock.go -package=handlers

const registerMessage = "To confirm your account, send a POST request to the given url, with your email and password."

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, email, username, password string) (*models.User, error)
	IssueConfirmationToken(ctx context.Context, user *models.User) (string, error)
	ConfirmURL(token string) string
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Email
	// required: true
	// default: john@example.com
	Email string `json:"email" validate:"required"`

	// Username
	// required: true
	// default: john_doe
	Username string `json:"username" validate:"required"`

	// Password
	// required: true
	// default: secret123
	Password string `json:"password" validate:"required"`
}

// UserResponse is the public view of a user.
// swagger:model UserResponse
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Confirmed bool   `json:"confirmed"`
	URL       string `json:"url"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Confirmed: u.Confirmed,
		URL:       "/api/users/" + strconv.FormatInt(u.ID, 10),
	}
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	UserResponse
	ConfirmURL string `json:"confirm_url"`
	Token      string `json:"token"`
	Message    string `json:"message"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// @Summary Register a new user
// @Description Creates an unconfirmed account and returns the confirmation link. Email and username must be unique.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User successfully registered"
// @Failure 400 {object} handlers.ErrorResponse "Missing field"
// @Failure 409 {object} handlers.ErrorResponse "Email or username already exists"
// @Failure 500 {object} handlers.ErrorResponse "Internal server error"
// @Router /register [post]
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}

		user, err := svc.Register(r.Context(), req.Email, req.Username, req.Password)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		token, err := svc.IssueConfirmationToken(r.Context(), user)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			UserResponse: newUserResponse(user),
			ConfirmURL:   svc.ConfirmURL(token),
			Token:        token,
			Message:      registerMessage,
		})
	}
}

// RegisterRegisterHandler registers the registration route
func RegisterRegisterHandler(r chi.Router, h http.HandlerFunc) {
	r.Post("/register", h)
}
