// Package credentials hashes and verifies user passwords with bcrypt.
package credentials

import (
	"errors"

	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrEmptyPassword is returned when asked to hash an empty password.
var ErrEmptyPassword = errors.New("password is empty")

// Store computes and checks salted password hashes on user records.
type Store struct {
	cost int
}

// New creates a Store. A cost outside bcrypt's accepted range falls back to
// bcrypt.DefaultCost.
func New(cost int) *Store {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Store{cost: cost}
}

// SetPassword hashes plaintext, overwrites the user's hash and clears the
// confirmed flag: a new password has to go through confirmation again.
func (s *Store) SetPassword(user *models.User, plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.cost)
	if err != nil {
		return err
	}
	user.PasswordHash = string(hash)
	user.Confirmed = false
	return nil
}

// VerifyPassword reports whether plaintext matches the stored hash.
// bcrypt compares in constant time; any failure, including a missing or
// corrupt hash, yields false.
func (s *Store) VerifyPassword(user *models.User, plaintext string) bool {
	if user == nil || user.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plaintext)) == nil
}
