package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-bookstore/internal/middlewares"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=handlers

const emptyUserUpdateMessage = "JSON data is empty. To update user, send PUT request with username, [email] and [password]."

// UserLister lists users.
type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

// UserGetter fetches a user.
type UserGetter interface {
	Get(ctx context.Context, id int64) (*models.User, error)
}

// UserUpdater updates a user on behalf of actor.
type UserUpdater interface {
	Update(ctx context.Context, actor *models.User, id int64, patch models.UserPatch) (*models.User, string, error)
}

// UserDeleter deletes a user on behalf of actor.
type UserDeleter interface {
	Delete(ctx context.Context, actor *models.User, id int64) (*models.User, error)
}

// UsersResponse lists users.
// swagger:model UsersResponse
type UsersResponse struct {
	Users []UserResponse `json:"users"`
}

// UpdateUserRequest carries optional profile changes.
// swagger:model UpdateUserRequest
type UpdateUserRequest struct {
	Email    *string `json:"email" validate:"omitempty,min=1"`
	Username *string `json:"username" validate:"omitempty,min=1"`
	Password *string `json:"password" validate:"omitempty,min=1"`
}

// UpdateUserResponse is the updated user. Token is set when the password
// changed and the account has to be confirmed again.
// swagger:model UpdateUserResponse
type UpdateUserResponse struct {
	UserResponse
	Token string `json:"token,omitempty"`
}

// NewListUsersHandler returns an HTTP handler listing users.
// @Summary List users
// @Tags users
// @Produce json
// @Success 200 {object} handlers.UsersResponse
// @Failure 500 {object} handlers.ErrorResponse
// @Router /users [get]
func NewListUsersHandler(svc UserLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := svc.List(r.Context())
		if err != nil {
			writeServiceError(w, err)
			return
		}

		resp := UsersResponse{Users: make([]UserResponse, 0, len(users))}
		for i := range users {
			resp.Users = append(resp.Users, newUserResponse(&users[i]))
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

// NewGetUserHandler returns an HTTP handler fetching one user.
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} handlers.UserResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/{id} [get]
func NewGetUserHandler(svc UserGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		user, err := svc.Get(r.Context(), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}

// NewUpdateUserHandler returns an HTTP handler updating the caller's account.
// @Summary Update own account
// @Description A password change resets the confirmed flag and returns a fresh confirmation token.
// @Tags users
// @Accept json
// @Produce json
// @Param id path int true "User id"
// @Param updateUserRequest body handlers.UpdateUserRequest true "Changes"
// @Success 200 {object} handlers.UpdateUserResponse
// @Failure 400 {object} handlers.ErrorResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Failure 409 {object} handlers.ErrorResponse
// @Router /users/{id} [put]
// @Security BasicAuth
func NewUpdateUserHandler(svc UserUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		var req UpdateUserRequest
		if !decodeAndValidate(w, r, &req) {
			return
		}
		patch := models.UserPatch{
			Email:    req.Email,
			Username: req.Username,
			Password: req.Password,
		}
		if patch.IsEmpty() {
			writeError(w, http.StatusBadRequest, emptyUserUpdateMessage)
			return
		}

		user, token, err := svc.Update(r.Context(), middlewares.UserFromContext(r.Context()), id, patch)
		if err != nil {
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, UpdateUserResponse{
			UserResponse: newUserResponse(user),
			Token:        token,
		})
	}
}

// NewDeleteUserHandler returns an HTTP handler deleting the caller's account.
// @Summary Delete own account
// @Tags users
// @Produce json
// @Param id path int true "User id"
// @Success 200 {object} handlers.UserResponse
// @Failure 403 {object} handlers.ErrorResponse
// @Failure 404 {object} handlers.ErrorResponse
// @Router /users/{id} [delete]
// @Security BasicAuth
func NewDeleteUserHandler(svc UserDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r)
		if !ok {
			return
		}

		user, err := svc.Delete(r.Context(), middlewares.UserFromContext(r.Context()), id)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, newUserResponse(user))
	}
}

// RegisterUserReadHandlers registers the public user routes
func RegisterUserReadHandlers(r chi.Router, list, get http.HandlerFunc) {
	r.Get("/users", list)
	r.Get("/users/{id}", get)
}

// RegisterUserWriteHandlers registers the protected user routes
func RegisterUserWriteHandlers(r chi.Router, update, del http.HandlerFunc) {
	r.Put("/users/{id}", update)
	r.Delete("/users/{id}", del)
}
