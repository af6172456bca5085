package credentials

import (
	"testing"

	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestStore_SetPassword(t *testing.T) {
	s := New(bcrypt.MinCost)
	user := &models.User{ID: 1, Confirmed: true}

	require.NoError(t, s.SetPassword(user, "p1"))

	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "p1", user.PasswordHash)
	assert.False(t, user.Confirmed, "new password must reset confirmation")

	first := user.PasswordHash
	require.NoError(t, s.SetPassword(user, "p1"))
	assert.NotEqual(t, first, user.PasswordHash, "hash must be salted")
}

func TestStore_SetPassword_Empty(t *testing.T) {
	s := New(bcrypt.MinCost)
	user := &models.User{PasswordHash: "old", Confirmed: true}

	err := s.SetPassword(user, "")
	assert.ErrorIs(t, err, ErrEmptyPassword)
	assert.Equal(t, "old", user.PasswordHash)
	assert.True(t, user.Confirmed)
}

func TestStore_VerifyPassword(t *testing.T) {
	s := New(bcrypt.MinCost)
	user := &models.User{}
	require.NoError(t, s.SetPassword(user, "secret"))

	tests := []struct {
		name     string
		user     *models.User
		password string
		want     bool
	}{
		{name: "match", user: user, password: "secret", want: true},
		{name: "mismatch", user: user, password: "wrong", want: false},
		{name: "empty password", user: user, password: "", want: false},
		{name: "missing hash", user: &models.User{}, password: "secret", want: false},
		{name: "corrupt hash", user: &models.User{PasswordHash: "not-a-hash"}, password: "secret", want: false},
		{name: "nil user", user: nil, password: "secret", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.VerifyPassword(tt.user, tt.password))
		})
	}
}

func TestNew_InvalidCostFallsBack(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, New(0).cost)
	assert.Equal(t, bcrypt.DefaultCost, New(bcrypt.MaxCost+1).cost)
	assert.Equal(t, bcrypt.MinCost, New(bcrypt.MinCost).cost)
}
