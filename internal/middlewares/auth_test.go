package middlewares

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"github.com/sbilibin2017/gw-bookstore/internal/services"
	"github.com/stretchr/testify/assert"
)

func TestAuthMiddleware(t *testing.T) {
	alice := &models.User{ID: 1, Email: "a@x.com", Username: "alice"}

	tests := []struct {
		name             string
		prepare          func(r *http.Request)
		mockSetup        func(a *MockAuthenticator, te *MockTokenExtractor)
		expectedStatus   int
		expectNextCalled bool
	}{
		{
			name:    "NoCredentials",
			prepare: func(r *http.Request) {},
			mockSetup: func(a *MockAuthenticator, te *MockTokenExtractor) {
				te.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).
					Return("", errors.New("authorization header missing"))
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "BasicValid",
			prepare: func(r *http.Request) {
				r.SetBasicAuth("a@x.com", "p1")
			},
			mockSetup: func(a *MockAuthenticator, te *MockTokenExtractor) {
				a.EXPECT().Authenticate(gomock.Any(), "a@x.com", "p1").Return(alice, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
		{
			name: "BasicTokenAsPassword",
			prepare: func(r *http.Request) {
				r.SetBasicAuth("anything", "tok")
			},
			mockSetup: func(a *MockAuthenticator, te *MockTokenExtractor) {
				a.EXPECT().Authenticate(gomock.Any(), "anything", "tok").Return(alice, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
		{
			name: "BearerValid",
			prepare: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer tok")
			},
			mockSetup: func(a *MockAuthenticator, te *MockTokenExtractor) {
				te.EXPECT().GetTokenFromRequest(gomock.Any(), gomock.Any()).Return("tok", nil)
				a.EXPECT().Authenticate(gomock.Any(), "", "tok").Return(alice, nil)
			},
			expectedStatus:   http.StatusOK,
			expectNextCalled: true,
		},
		{
			name: "Rejected",
			prepare: func(r *http.Request) {
				r.SetBasicAuth("a@x.com", "wrong")
			},
			mockSetup: func(a *MockAuthenticator, te *MockTokenExtractor) {
				a.EXPECT().Authenticate(gomock.Any(), "a@x.com", "wrong").Return(nil, services.ErrUnauthorized)
			},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name: "BackendFailure",
			prepare: func(r *http.Request) {
				r.SetBasicAuth("a@x.com", "p1")
			},
			mockSetup: func(a *MockAuthenticator, te *MockTokenExtractor) {
				a.EXPECT().Authenticate(gomock.Any(), "a@x.com", "p1").Return(nil, errors.New("db down"))
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			auth := NewMockAuthenticator(ctrl)
			tokens := NewMockTokenExtractor(ctrl)
			tt.mockSetup(auth, tokens)

			nextCalled := false
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				assert.Equal(t, alice, UserFromContext(r.Context()))
				w.WriteHeader(http.StatusOK)
			})

			handler := AuthMiddleware(auth, tokens)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			tt.prepare(req)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Equal(t, tt.expectNextCalled, nextCalled)
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Equal(t, authRealm, rr.Header().Get("WWW-Authenticate"))
				assert.JSONEq(t, `{"error":"Unauthorized access"}`, rr.Body.String())
			}
		})
	}
}

func TestUserFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, UserFromContext(req.Context()))
}
