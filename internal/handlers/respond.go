package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/services"
)

const internalErrorMessage = "Internal server error"

// ErrorResponse is the body of every failed request.
// swagger:model ErrorResponse
type ErrorResponse struct {
	// Error message
	// default: email cannot be empty.
	Error string `json:"error"`
}

// MessageResponse carries a human readable outcome.
// swagger:model MessageResponse
type MessageResponse struct {
	Message string `json:"message"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// validationMessage names the first field that failed validation.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return fmt.Sprintf("%s cannot be empty.", verrs[0].Field())
	}
	return "Invalid request body."
}

// decodeAndValidate reads a JSON body into v and validates it. On failure
// the 400 response has already been written.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON body.")
		return false
	}
	if err := validate.Struct(v); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

// pathID parses the {id} URL parameter. On failure the 400 response has
// already been written.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid id.")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}

// writeServiceError maps domain errors to status codes. Unknown errors are
// logged and reported as 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, "email already registered.")
	case errors.Is(err, services.ErrDuplicateUsername):
		writeError(w, http.StatusConflict, "username already taken.")
	case errors.Is(err, services.ErrUserNotFound):
		writeError(w, http.StatusNotFound, "User not found.")
	case errors.Is(err, services.ErrBookNotFound):
		writeError(w, http.StatusNotFound, "Book not found.")
	case errors.Is(err, services.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid email or password.")
	case errors.Is(err, services.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized access")
	case errors.Is(err, services.ErrAlreadyConfirmed):
		writeError(w, http.StatusUnprocessableEntity, "Account already confirmed.")
	case errors.Is(err, services.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, "The confirmation link is invalid or has expired.")
	case errors.Is(err, services.ErrForbidden):
		writeError(w, http.StatusForbidden, "You can only modify your own account.")
	default:
		logger.Log.Errorw("internal server error", "err", err)
		writeError(w, http.StatusInternalServerError, internalErrorMessage)
	}
}
