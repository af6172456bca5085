package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-bookstore/internal/logger"
	"github.com/sbilibin2017/gw-bookstore/internal/models"
)

// UserCacheRepository caches public user views in Redis.
// Cached users never carry a password hash and must not be used for
// credential checks.
type UserCacheRepository struct {
	client *redis.Client
	exp    time.Duration
}

// NewUserCacheRepository creates a cache with the given entry TTL.
func NewUserCacheRepository(client *redis.Client, expiration time.Duration) *UserCacheRepository {
	return &UserCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func userKey(id int64) string {
	return fmt.Sprintf("user:%d", id)
}

// Get returns the cached user, or nil on a cache miss.
func (r *UserCacheRepository) Get(ctx context.Context, id int64) (*models.User, error) {
	key := userKey(id)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		logger.Log.Infow(
			"key", key,
			"hit", false,
			"error", err,
		)
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var user models.User
	if err := json.Unmarshal(val, &user); err != nil {
		logger.Log.Infow(
			"key", key,
			"hit", true,
			"error", err,
		)
		return nil, err
	}

	logger.Log.Infow(
		"key", key,
		"hit", true,
		"error", nil,
	)
	return &user, nil
}

// Set stores the user under its id.
func (r *UserCacheRepository) Set(ctx context.Context, user *models.User) error {
	key := userKey(user.ID)

	val, err := json.Marshal(user)
	if err != nil {
		return err
	}
	err = r.client.Set(ctx, key, val, r.exp).Err()

	logger.Log.Infow(
		"key", key,
		"result", "set",
		"error", err,
	)
	return err
}

// Delete evicts the user.
func (r *UserCacheRepository) Delete(ctx context.Context, id int64) error {
	key := userKey(id)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow(
		"key", key,
		"result", "del",
		"error", err,
	)
	return err
}
