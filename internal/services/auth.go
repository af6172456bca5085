package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"github.com/sbilibin2017/gw-bookstore/internal/repositories"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=services

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	MarkConfirmed(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) (*models.User, error)
}

// PasswordHasher sets and checks password hashes on user records.
type PasswordHasher interface {
	SetPassword(user *models.User, plaintext string) error
	VerifyPassword(user *models.User, plaintext string) bool
}

// Tokener issues and verifies confirmation tokens.
type Tokener interface {
	Generate(ctx context.Context, userID int64) (string, error)
	Verify(ctx context.Context, token string) (int64, error)
	Expiration() time.Duration
}

// UserCache caches public user views.
type UserCache interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	Set(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
}

// ConfirmationPublisher hands confirmation tokens to the mail pipeline.
type ConfirmationPublisher interface {
	PublishConfirmation(ctx context.Context, event models.ConfirmationEvent) error
}

// AuthService handles registration, confirmation and authentication.
type AuthService struct {
	reader           UserReader
	writer           UserWriter
	hasher           PasswordHasher
	tokens           Tokener
	cache            UserCache
	publisher        ConfirmationPublisher
	baseURL          string
	requireConfirmed bool
}

// AuthOpt configures an AuthService.
type AuthOpt func(*AuthService)

// WithUserCache evicts cached users whenever their state changes.
func WithUserCache(cache UserCache) AuthOpt {
	return func(s *AuthService) {
		s.cache = cache
	}
}

// WithConfirmationPublisher publishes an event for every issued
// confirmation token.
func WithConfirmationPublisher(p ConfirmationPublisher) AuthOpt {
	return func(s *AuthService) {
		s.publisher = p
	}
}

// WithBaseURL sets the public URL prefix used for confirmation links.
func WithBaseURL(baseURL string) AuthOpt {
	return func(s *AuthService) {
		s.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRequireConfirmed makes Authenticate reject unconfirmed accounts.
func WithRequireConfirmed(require bool) AuthOpt {
	return func(s *AuthService) {
		s.requireConfirmed = require
	}
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter, hasher PasswordHasher, tokens Tokener, opts ...AuthOpt) *AuthService {
	svc := &AuthService{
		reader: reader,
		writer: writer,
		hasher: hasher,
		tokens: tokens,
	}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

// Register creates an unconfirmed user. Duplicate email or username is
// detected by the storage constraints, not by a prior lookup.
func (svc *AuthService) Register(ctx context.Context, email, username, password string) (*models.User, error) {
	user := &models.User{
		Email:    email,
		Username: username,
	}
	if err := svc.hasher.SetPassword(user, password); err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return nil, err
	}

	if err := svc.writer.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicate) {
			logger.Log.Infow("duplicate registration", "email", email, "username", username, "err", err)
			return nil, err
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return nil, err
	}

	return user, nil
}

// IssueConfirmationToken signs a token for the user and publishes a
// confirmation event. Publishing is best effort.
func (svc *AuthService) IssueConfirmationToken(ctx context.Context, user *models.User) (string, error) {
	token, err := svc.tokens.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "user_id", user.ID, "err", err)
		return "", err
	}

	if svc.publisher != nil {
		event := models.ConfirmationEvent{
			UserID:     user.ID,
			Email:      user.Email,
			Username:   user.Username,
			Token:      token,
			ConfirmURL: svc.ConfirmURL(token),
			IssuedAt:   time.Now().Unix(),
		}
		if err := svc.publisher.PublishConfirmation(ctx, event); err != nil {
			logger.Log.Warnw("failed to publish confirmation event", "user_id", user.ID, "err", err)
		}
	}

	return token, nil
}

// IssueAuthToken signs a token for an already authenticated user.
func (svc *AuthService) IssueAuthToken(ctx context.Context, user *models.User) (string, time.Duration, error) {
	token, err := svc.tokens.Generate(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to generate token", "user_id", user.ID, "err", err)
		return "", 0, err
	}
	return token, svc.tokens.Expiration(), nil
}

// ConfirmURL returns the link a client posts credentials to.
func (svc *AuthService) ConfirmURL(token string) string {
	return svc.baseURL + "/api/confirm/" + url.PathEscape(token)
}

// Confirm moves the account from unconfirmed to confirmed.
//
// Checks run in a fixed order so that a wrong password is reported before a
// bad token: lookup, password, confirmed state, token.
func (svc *AuthService) Confirm(ctx context.Context, email, password, token string) error {
	user, err := svc.checkCredentials(ctx, email, password)
	if err != nil {
		return err
	}

	if user.Confirmed {
		return ErrAlreadyConfirmed
	}

	userID, err := svc.tokens.Verify(ctx, token)
	if err != nil {
		logger.Log.Infow("confirmation token rejected", "user_id", user.ID, "err", err)
		return ErrInvalidToken
	}
	if userID != user.ID {
		logger.Log.Infow("confirmation token subject mismatch", "user_id", user.ID, "token_user_id", userID)
		return ErrInvalidToken
	}

	flipped, err := svc.writer.MarkConfirmed(ctx, user.ID)
	if err != nil {
		logger.Log.Errorw("failed to confirm user", "user_id", user.ID, "err", err)
		return err
	}
	if !flipped {
		// Lost a race with a concurrent confirmation.
		return ErrAlreadyConfirmed
	}

	svc.evict(ctx, user.ID)
	return nil
}

// ResendConfirmation issues a fresh confirmation token for an unconfirmed
// account after checking its credentials.
func (svc *AuthService) ResendConfirmation(ctx context.Context, email, password string) (*models.User, string, error) {
	user, err := svc.checkCredentials(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if user.Confirmed {
		return nil, "", ErrAlreadyConfirmed
	}

	token, err := svc.IssueConfirmationToken(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (svc *AuthService) checkCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, err
	}

	if !svc.hasher.VerifyPassword(user, password) {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// Authenticate resolves a credential pair to a user.
//
// secret is tried as a token first; a valid token authenticates its subject
// whatever identifier says. Otherwise identifier and secret are treated as
// email and password. Every rejection is reported as ErrUnauthorized.
func (svc *AuthService) Authenticate(ctx context.Context, identifier, secret string) (*models.User, error) {
	if secret == "" {
		return nil, ErrUnauthorized
	}

	user, err := svc.authenticateToken(ctx, secret)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user, err = svc.authenticatePassword(ctx, identifier, secret)
		if err != nil {
			return nil, err
		}
	}
	if user == nil {
		return nil, ErrUnauthorized
	}

	if svc.requireConfirmed && !user.Confirmed {
		return nil, ErrUnauthorized
	}
	return user, nil
}

// authenticateToken returns nil, nil when secret is not a usable token.
func (svc *AuthService) authenticateToken(ctx context.Context, secret string) (*models.User, error) {
	userID, err := svc.tokens.Verify(ctx, secret)
	if err != nil {
		return nil, nil
	}

	user, err := svc.reader.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		logger.Log.Errorw("failed to get user", "user_id", userID, "err", err)
		return nil, fmt.Errorf("authenticate: %w", err)
	}
	return user, nil
}

// authenticatePassword returns nil, nil on unknown email or wrong password.
func (svc *AuthService) authenticatePassword(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" {
		return nil, nil
	}

	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, nil
		}
		logger.Log.Errorw("failed to get user", "err", err)
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	if !svc.hasher.VerifyPassword(user, password) {
		return nil, nil
	}
	return user, nil
}

// ChangePassword stores a new password hash, which also resets the
// confirmed flag, and issues a fresh confirmation token.
func (svc *AuthService) ChangePassword(ctx context.Context, user *models.User, newPassword string) (string, error) {
	if err := svc.hasher.SetPassword(user, newPassword); err != nil {
		logger.Log.Errorw("failed to hash password", "user_id", user.ID, "err", err)
		return "", err
	}

	if err := svc.writer.Update(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return "", ErrUserNotFound
		}
		logger.Log.Errorw("failed to update password", "user_id", user.ID, "err", err)
		return "", err
	}
	svc.evict(ctx, user.ID)

	return svc.IssueConfirmationToken(ctx, user)
}

func (svc *AuthService) evict(ctx context.Context, id int64) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Delete(ctx, id); err != nil {
		logger.Log.Warnw("failed to evict cached user", "user_id", id, "err", err)
	}
}
