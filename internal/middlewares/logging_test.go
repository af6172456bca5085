package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingMiddleware(t *testing.T) {
	tests := []struct {
		name          string
		handlerStatus int
		handlerBody   string
		incomingID    string
		keepsID       bool
	}{
		{
			name:          "OK response",
			handlerStatus: http.StatusOK,
			handlerBody:   "hello",
		},
		{
			name:          "Internal server error",
			handlerStatus: http.StatusInternalServerError,
			handlerBody:   "error",
		},
		{
			name:          "Caller request id kept",
			handlerStatus: http.StatusCreated,
			handlerBody:   "{}",
			incomingID:    "0b0e2c4a-8c53-4cf5-9a44-2b8f5f9f1f00",
			keepsID:       true,
		},
		{
			name:          "Garbage request id replaced",
			handlerStatus: http.StatusOK,
			handlerBody:   "ok",
			incomingID:    "not-a-uuid",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.InfoLevel)
			log := zap.New(core).Sugar()

			var seenID string
			nextHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seenID = RequestIDFromContext(r.Context())
				w.WriteHeader(tt.handlerStatus)
				_, _ = w.Write([]byte(tt.handlerBody))
			})

			handler := LoggingMiddleware(log)(nextHandler)

			req := httptest.NewRequest(http.MethodGet, "/api/books", nil)
			if tt.incomingID != "" {
				req.Header.Set("X-Request-ID", tt.incomingID)
			}
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.handlerStatus, rr.Code)
			assert.Equal(t, tt.handlerBody, rr.Body.String())

			reqID := rr.Header().Get("X-Request-ID")
			_, err := uuid.Parse(reqID)
			assert.NoError(t, err)
			assert.Equal(t, reqID, seenID)
			if tt.keepsID {
				assert.Equal(t, tt.incomingID, reqID)
			} else {
				assert.NotEqual(t, tt.incomingID, reqID)
			}

			entries := logs.FilterMessage("request").All()
			require.Len(t, entries, 1)
			fields := entries[0].ContextMap()
			assert.Equal(t, reqID, fields["request_id"])
			assert.Equal(t, http.MethodGet, fields["method"])
			assert.Equal(t, "/api/books", fields["uri"])
			assert.EqualValues(t, tt.handlerStatus, fields["status"])
		})
	}
}
