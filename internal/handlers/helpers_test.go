package handlers

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/gw-bookstore/internal/middlewares"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
)

// doRequest routes one request through a chi router set up by register.
// A non-nil user is placed in the request context as the authenticated user.
func doRequest(t *testing.T, register func(chi.Router), method, target, body string, user *models.User) *httptest.ResponseRecorder {
	t.Helper()

	r := chi.NewRouter()
	if user != nil {
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(middlewares.WithUser(req.Context(), user)))
			})
		})
	}
	register(r)

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, rd)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func strPtr(s string) *string { return &s }

// unused fills route slots a test does not exercise.
var unused http.HandlerFunc = func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}
