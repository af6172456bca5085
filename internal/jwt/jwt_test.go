package jwt

import (
	"context"
	"net/http"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWT_GenerateAndVerify(t *testing.T) {
	j := New(WithSecretKey("test-secret"), WithExpiration(time.Minute))
	ctx := context.Background()

	token, err := j.Generate(ctx, 42)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	userID, err := j.Verify(ctx, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestJWT_DefaultExpiration(t *testing.T) {
	j := New()
	assert.Equal(t, time.Hour, j.Expiration())
}

func TestJWT_ExpiredToken(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	now := issued
	j := New(WithSecretKey("test-secret"), WithClock(func() time.Time { return now }))
	ctx := context.Background()

	token, err := j.Generate(ctx, 7)
	require.NoError(t, err)

	now = issued.Add(59 * time.Minute)
	_, err = j.Verify(ctx, token)
	assert.NoError(t, err)

	now = issued.Add(time.Hour + time.Second)
	userID, err := j.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrExpired)
	assert.Zero(t, userID)
}

func TestJWT_WrongSecret(t *testing.T) {
	j1 := New(WithSecretKey("secret1"))
	j2 := New(WithSecretKey("secret2"))
	ctx := context.Background()

	token, err := j1.Generate(ctx, 1)
	require.NoError(t, err)

	_, err = j2.Verify(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestJWT_TamperedPayload(t *testing.T) {
	j := New(WithSecretKey("secret"))
	ctx := context.Background()

	token, err := j.Generate(ctx, 1)
	require.NoError(t, err)

	other, err := j.Generate(ctx, 2)
	require.NoError(t, err)

	// Header and payload of one token with the signature of another.
	forged := token[:lastDot(token)] + other[lastDot(other):]
	_, err = j.Verify(ctx, forged)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestJWT_Malformed(t *testing.T) {
	secret := "secret"
	j := New(WithSecretKey(secret))
	ctx := context.Background()

	sign := func(claims gojwt.MapClaims) string {
		s, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte(secret))
		require.NoError(t, err)
		return s
	}
	exp := time.Now().Add(time.Hour).Unix()

	tests := []struct {
		name  string
		token string
	}{
		{"Garbage", "invalid.token.string"},
		{"Empty", ""},
		{"MissingSubject", sign(gojwt.MapClaims{"exp": exp})},
		{"StringSubject", sign(gojwt.MapClaims{"confirm": "abc", "exp": exp})},
		{"FractionalSubject", sign(gojwt.MapClaims{"confirm": 1.5, "exp": exp})},
		{"NegativeSubject", sign(gojwt.MapClaims{"confirm": -3, "exp": exp})},
		{"MissingExpiry", sign(gojwt.MapClaims{"confirm": 1})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userID, err := j.Verify(ctx, tt.token)
			assert.ErrorIs(t, err, ErrMalformed)
			assert.Zero(t, userID)
		})
	}
}

func TestJWT_RejectsOtherAlgorithms(t *testing.T) {
	j := New(WithSecretKey("secret"))
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS512, gojwt.MapClaims{
		"confirm": 1,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	_, err = j.Verify(context.Background(), token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestJWT_GetTokenFromRequest(t *testing.T) {
	j := New()
	ctx := context.Background()

	tests := []struct {
		name          string
		header        string
		expectedToken string
		expectError   bool
	}{
		{"ValidBearer", "Bearer mytoken123", "mytoken123", false},
		{"LowercaseBearer", "bearer mytoken123", "mytoken123", false},
		{"NoHeader", "", "", true},
		{"InvalidFormat", "Token mytoken123", "", true},
		{"TooManyParts", "Bearer a b c", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			token, err := j.GetTokenFromRequest(ctx, req)
			if tt.expectError {
				assert.Error(t, err)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedToken, token)
			}
		})
	}
}

func lastDot(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i] == '.' {
			return i
		}
	}
	return -1
}
