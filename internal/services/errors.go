package services

import (
	"errors"

	"github.com/sbilibin2017/gw-bookstore/internal/repositories"
)

// Error variables
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyConfirmed   = errors.New("account already confirmed")
	ErrInvalidToken       = errors.New("invalid or expired confirmation token")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrBookNotFound       = errors.New("book not found")

	// Duplicate errors come straight from the storage constraints.
	// Both match errors.Is(err, ErrDuplicate).
	ErrDuplicate         = repositories.ErrDuplicate
	ErrDuplicateEmail    = repositories.ErrDuplicateEmail
	ErrDuplicateUsername = repositories.ErrDuplicateUsername
)
