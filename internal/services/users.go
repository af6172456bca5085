package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
	"github.com/sbilibin2017/gw-bookstore/internal/repositories"
)

//go:generate mockgen -source=users.go -destination=users_mock.go -package=services

// PasswordChanger replaces a user's password.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, user *models.User, newPassword string) (string, error)
}

// UserService serves user reads and self-service updates.
type UserService struct {
	reader    UserReader
	writer    UserWriter
	passwords PasswordChanger
	cache     UserCache
}

// NewUserService creates a new UserService instance. cache may be nil.
func NewUserService(reader UserReader, writer UserWriter, passwords PasswordChanger, cache UserCache) *UserService {
	return &UserService{
		reader:    reader,
		writer:    writer,
		passwords: passwords,
		cache:     cache,
	}
}

// Get returns a user by id, served from the cache when possible.
func (svc *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	if svc.cache != nil {
		cached, err := svc.cache.Get(ctx, id)
		if err != nil {
			logger.Log.Warnw("user cache read failed", "user_id", id, "err", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to get user", "user_id", id, "err", err)
		return nil, err
	}

	if svc.cache != nil {
		if err := svc.cache.Set(ctx, user); err != nil {
			logger.Log.Warnw("user cache write failed", "user_id", id, "err", err)
		}
	}
	return user, nil
}

// List returns all users ordered by id.
func (svc *UserService) List(ctx context.Context) ([]models.User, error) {
	users, err := svc.reader.List(ctx)
	if err != nil {
		logger.Log.Errorw("failed to list users", "err", err)
		return nil, err
	}
	return users, nil
}

// Update applies patch to the user with the given id. Only the user itself
// may do so. When the patch carries a password the returned token is a fresh
// confirmation token, otherwise it is empty.
func (svc *UserService) Update(ctx context.Context, actor *models.User, id int64, patch models.UserPatch) (*models.User, string, error) {
	if actor == nil || actor.ID != id {
		return nil, "", ErrForbidden
	}

	user, err := svc.reader.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, "", ErrUserNotFound
		}
		logger.Log.Errorw("failed to get user", "user_id", id, "err", err)
		return nil, "", err
	}

	if patch.Email != nil || patch.Username != nil {
		if patch.Email != nil {
			user.Email = *patch.Email
		}
		if patch.Username != nil {
			user.Username = *patch.Username
		}
		if err := svc.writer.Update(ctx, user); err != nil {
			return nil, "", svc.mapWriteError(id, err)
		}
		svc.evict(ctx, id)
	}

	var token string
	if patch.Password != nil {
		token, err = svc.passwords.ChangePassword(ctx, user, *patch.Password)
		if err != nil {
			return nil, "", err
		}
	}

	return user, token, nil
}

// Delete removes the user with the given id. Only the user itself may do so.
func (svc *UserService) Delete(ctx context.Context, actor *models.User, id int64) (*models.User, error) {
	if actor == nil || actor.ID != id {
		return nil, ErrForbidden
	}

	user, err := svc.writer.Delete(ctx, id)
	if err != nil {
		return nil, svc.mapWriteError(id, err)
	}
	svc.evict(ctx, id)
	return user, nil
}

func (svc *UserService) mapWriteError(id int64, err error) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, ErrDuplicate):
		return err
	default:
		logger.Log.Errorw("failed to write user", "user_id", id, "err", err)
		return err
	}
}

func (svc *UserService) evict(ctx context.Context, id int64) {
	if svc.cache == nil {
		return
	}
	if err := svc.cache.Delete(ctx, id); err != nil {
		logger.Log.Warnw("failed to evict cached user", "user_id", id, "err", err)
	}
}
